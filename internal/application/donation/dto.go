package donation

import (
	"time"

	"github.com/NapatKulnarong/ReMeals/internal/domain/donation"
	"github.com/NapatKulnarong/ReMeals/internal/domain/partner"
	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
)

// =============================================================================
// Donation DTOs
// =============================================================================

// CreateDonationRequest names an existing restaurant or describes one to create
type CreateDonationRequest struct {
	Restaurant              *string `json:"restaurant"`
	Status                  *string `json:"status"`
	ManualRestaurantName    string  `json:"manual_restaurant_name" binding:"max=100"`
	ManualBranchName        string  `json:"manual_branch_name" binding:"max=100"`
	ManualRestaurantAddress string  `json:"manual_restaurant_address" binding:"max=300"`
}

// UpdateDonationRequest carries the mutable donation fields. Key and restaurant
// are accepted only when unchanged.
type UpdateDonationRequest struct {
	DonationID *string `json:"donation_id"`
	Restaurant *string `json:"restaurant"`
	Status     *string `json:"status"`
}

// DonationListFilter represents the donation list query parameters
type DonationListFilter struct {
	RestaurantID string  `form:"restaurant_id"`
	Status       *string `form:"status"`
	DateFrom     string  `form:"date_from"`
	DateTo       string  `form:"date_to"`
}

// DonationResponse represents a donation with its restaurant details
type DonationResponse struct {
	DonationID        string    `json:"donation_id"`
	DonatedAt         time.Time `json:"donated_at"`
	Status            string    `json:"status"`
	Restaurant        string    `json:"restaurant"`
	RestaurantName    string    `json:"restaurant_name"`
	RestaurantBranch  string    `json:"restaurant_branch"`
	RestaurantAddress string    `json:"restaurant_address"`
	CreatedByUserID   *string   `json:"created_by_user_id"`
}

// ToDonationResponse converts a donation and its restaurant. restaurant may be nil.
func ToDonationResponse(d *donation.Donation, restaurant *partner.Restaurant) DonationResponse {
	resp := DonationResponse{
		DonationID:      d.DonationID,
		DonatedAt:       d.DonatedAt,
		Status:          string(d.Status),
		Restaurant:      d.RestaurantID,
		CreatedByUserID: d.CreatedByID,
	}
	if restaurant != nil {
		resp.RestaurantName = restaurant.Name
		resp.RestaurantBranch = restaurant.BranchName
		resp.RestaurantAddress = restaurant.Address
	}
	return resp
}

// =============================================================================
// Food item DTOs
// =============================================================================

// CreateFoodItemRequest represents a request to create a food item
type CreateFoodItemRequest struct {
	FoodID        string       `json:"food_id" binding:"required"`
	Name          *string      `json:"name"`
	Quantity      *int         `json:"quantity"`
	Unit          *string      `json:"unit"`
	ExpireDate    *shared.Date `json:"expire_date"`
	IsExpired     *bool        `json:"is_expired"`
	IsClaimed     *bool        `json:"is_claimed"`
	IsDistributed *bool        `json:"is_distributed"`
	Donation      *string      `json:"donation"`
	ChainID       *string      `json:"chain_id"`
}

// UpdateFoodItemRequest is always applied partially
type UpdateFoodItemRequest struct {
	Name          *string      `json:"name"`
	Quantity      *int         `json:"quantity"`
	Unit          *string      `json:"unit"`
	ExpireDate    *shared.Date `json:"expire_date"`
	IsExpired     *bool        `json:"is_expired"`
	IsClaimed     *bool        `json:"is_claimed"`
	IsDistributed *bool        `json:"is_distributed"`
	Donation      *string      `json:"donation"`
	ChainID       *string      `json:"chain_id"`
}

// FoodItemListFilter represents the food item list query parameters
type FoodItemListFilter struct {
	Donation      string  `form:"donation"`
	IsExpired     *string `form:"is_expired"`
	IsClaimed     *string `form:"is_claimed"`
	IsDistributed *string `form:"is_distributed"`
}

// FoodItemResponse represents a food item. food_id is rendered for display.
type FoodItemResponse struct {
	FoodID        string      `json:"food_id"`
	Name          string      `json:"name"`
	Quantity      int         `json:"quantity"`
	Unit          string      `json:"unit"`
	ExpireDate    shared.Date `json:"expire_date"`
	IsExpired     bool        `json:"is_expired"`
	IsClaimed     bool        `json:"is_claimed"`
	IsDistributed bool        `json:"is_distributed"`
	Donation      string      `json:"donation"`
	ChainID       *string     `json:"chain_id"`
}

// ToFoodItemResponse converts a domain FoodItem to FoodItemResponse
func ToFoodItemResponse(f *donation.FoodItem) FoodItemResponse {
	return FoodItemResponse{
		FoodID:        f.DisplayID(),
		Name:          f.Name,
		Quantity:      f.Quantity,
		Unit:          f.Unit,
		ExpireDate:    f.ExpireDate,
		IsExpired:     f.IsExpired,
		IsClaimed:     f.IsClaimed,
		IsDistributed: f.IsDistributed,
		Donation:      f.DonationID,
		ChainID:       f.ChainID,
	}
}

// ToFoodItemResponses converts a slice of food items
func ToFoodItemResponses(items []donation.FoodItem) []FoodItemResponse {
	out := make([]FoodItemResponse, len(items))
	for i := range items {
		out[i] = ToFoodItemResponse(&items[i])
	}
	return out
}

func (r UpdateFoodItemRequest) changes() donation.FoodItemChanges {
	return donation.FoodItemChanges{
		Name:          r.Name,
		Quantity:      r.Quantity,
		Unit:          r.Unit,
		ExpireDate:    r.ExpireDate,
		IsExpired:     r.IsExpired,
		IsClaimed:     r.IsClaimed,
		IsDistributed: r.IsDistributed,
		DonationID:    r.Donation,
		ChainID:       r.ChainID,
	}
}

// =============================================================================
// Impact DTOs
// =============================================================================

// ImpactRecordResponse represents an impact record
type ImpactRecordResponse struct {
	ImpactID      string      `json:"impact_id"`
	MealsSaved    float64     `json:"meals_saved"`
	WeightSavedKg float64     `json:"weight_saved_kg"`
	CO2ReducedKg  float64     `json:"co2_reduced_kg"`
	ImpactDate    shared.Date `json:"impact_date"`
	Food          string      `json:"food"`
}

// ToImpactRecordResponse converts a domain ImpactRecord
func ToImpactRecordResponse(r *donation.ImpactRecord) ImpactRecordResponse {
	return ImpactRecordResponse{
		ImpactID:      r.ImpactID,
		MealsSaved:    r.MealsSaved,
		WeightSavedKg: r.WeightSavedKg,
		CO2ReducedKg:  r.CO2ReducedKg,
		ImpactDate:    r.ImpactDate,
		Food:          r.FoodID,
	}
}

// ToImpactRecordResponses converts a slice of impact records
func ToImpactRecordResponses(records []donation.ImpactRecord) []ImpactRecordResponse {
	out := make([]ImpactRecordResponse, len(records))
	for i := range records {
		out[i] = ToImpactRecordResponse(&records[i])
	}
	return out
}

// =============================================================================
// Donation request DTOs
// =============================================================================

// DonationRequestPayload carries a request create or update. community_id
// distinguishes an absent key from an explicit null.
type DonationRequestPayload struct {
	Title            *string                 `json:"title" binding:"omitempty,max=120"`
	CommunityName    *string                 `json:"community_name" binding:"omitempty,max=120"`
	RecipientAddress *string                 `json:"recipient_address" binding:"omitempty,max=300"`
	ExpectedDelivery *time.Time              `json:"expected_delivery"`
	PeopleCount      *int                    `json:"people_count"`
	ContactPhone     *string                 `json:"contact_phone" binding:"omitempty,max=30"`
	Notes            *string                 `json:"notes"`
	CommunityID      shared.Optional[string] `json:"community_id"`
	Status           *string                 `json:"status"`
}

// DonationRequestResponse represents a donation request
type DonationRequestResponse struct {
	RequestID        string    `json:"request_id"`
	Title            string    `json:"title"`
	CommunityName    string    `json:"community_name"`
	RecipientAddress string    `json:"recipient_address"`
	ExpectedDelivery time.Time `json:"expected_delivery"`
	PeopleCount      int       `json:"people_count"`
	ContactPhone     string    `json:"contact_phone"`
	Notes            string    `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
	CommunityID      *string   `json:"community_id"`
	CreatedByUserID  *string   `json:"created_by_user_id"`
	Status           string    `json:"status"`
}

// ToDonationRequestResponse converts a domain DonationRequest
func ToDonationRequestResponse(r *donation.DonationRequest) DonationRequestResponse {
	return DonationRequestResponse{
		RequestID:        r.RequestID,
		Title:            r.Title,
		CommunityName:    r.CommunityName,
		RecipientAddress: r.RecipientAddress,
		ExpectedDelivery: r.ExpectedDelivery,
		PeopleCount:      r.PeopleCount,
		ContactPhone:     r.ContactPhone,
		Notes:            r.Notes,
		CreatedAt:        r.CreatedAt,
		CommunityID:      r.CommunityID,
		CreatedByUserID:  r.CreatedByID,
		Status:           string(r.Status),
	}
}

// ToDonationRequestResponses converts a slice of donation requests
func ToDonationRequestResponses(requests []donation.DonationRequest) []DonationRequestResponse {
	out := make([]DonationRequestResponse, len(requests))
	for i := range requests {
		out[i] = ToDonationRequestResponse(&requests[i])
	}
	return out
}

func (p DonationRequestPayload) changes() donation.DonationRequestChanges {
	c := donation.DonationRequestChanges{
		Title:            p.Title,
		CommunityName:    p.CommunityName,
		RecipientAddress: p.RecipientAddress,
		ExpectedDelivery: p.ExpectedDelivery,
		PeopleCount:      p.PeopleCount,
		ContactPhone:     p.ContactPhone,
		Notes:            p.Notes,
	}
	if p.Status != nil {
		status := donation.Status(*p.Status)
		c.Status = &status
	}
	return c
}
