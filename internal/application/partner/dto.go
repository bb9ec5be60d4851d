package partner

import (
	"time"

	appdonation "github.com/NapatKulnarong/ReMeals/internal/application/donation"
	"github.com/NapatKulnarong/ReMeals/internal/domain/partner"
	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
)

// =============================================================================
// Warehouse DTOs
// =============================================================================

// CreateWarehouseRequest represents a request to create a new warehouse
type CreateWarehouseRequest struct {
	WarehouseID string       `json:"warehouse_id" binding:"required,max=10"`
	Address     string       `json:"address" binding:"required,max=100"`
	Capacity    *float64     `json:"capacity" binding:"required"`
	StoredDate  *shared.Date `json:"stored_date" binding:"required"`
	ExpDate     *shared.Date `json:"exp_date" binding:"required"`
}

// UpdateWarehouseRequest represents a full or partial warehouse update
type UpdateWarehouseRequest struct {
	Address    *string      `json:"address" binding:"omitempty,max=100"`
	Capacity   *float64     `json:"capacity"`
	StoredDate *shared.Date `json:"stored_date"`
	ExpDate    *shared.Date `json:"exp_date"`
}

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	WarehouseID string      `json:"warehouse_id"`
	Address     string      `json:"address"`
	Capacity    float64     `json:"capacity"`
	StoredDate  shared.Date `json:"stored_date"`
	ExpDate     shared.Date `json:"exp_date"`
}

// InventoryResponse lists the food held at a warehouse
type InventoryResponse struct {
	WarehouseID      string                         `json:"warehouse_id"`
	WarehouseAddress string                         `json:"warehouse_address"`
	TotalItems       int                            `json:"total_items"`
	Inventory        []appdonation.FoodItemResponse `json:"inventory"`
}

// ToWarehouseResponse converts a domain Warehouse to WarehouseResponse
func ToWarehouseResponse(w *partner.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		WarehouseID: w.WarehouseID,
		Address:     w.Address,
		Capacity:    w.Capacity,
		StoredDate:  w.StoredDate,
		ExpDate:     w.ExpDate,
	}
}

// ToWarehouseResponses converts a slice of warehouses
func ToWarehouseResponses(warehouses []partner.Warehouse) []WarehouseResponse {
	out := make([]WarehouseResponse, len(warehouses))
	for i := range warehouses {
		out[i] = ToWarehouseResponse(&warehouses[i])
	}
	return out
}

// =============================================================================
// Community DTOs
// =============================================================================

// CreateCommunityRequest represents a request to create a community
type CreateCommunityRequest struct {
	CommunityID  string     `json:"community_id" binding:"required,max=10"`
	Name         string     `json:"name" binding:"required,max=100"`
	Address      string     `json:"address" binding:"required,max=300"`
	ReceivedTime *time.Time `json:"received_time" binding:"required"`
	Population   *int       `json:"population" binding:"required"`
	WarehouseID  string     `json:"warehouse_id" binding:"required"`
}

// UpdateCommunityRequest represents a full or partial community update
type UpdateCommunityRequest struct {
	Name         *string    `json:"name" binding:"omitempty,max=100"`
	Address      *string    `json:"address" binding:"omitempty,max=300"`
	ReceivedTime *time.Time `json:"received_time"`
	Population   *int       `json:"population"`
	WarehouseID  *string    `json:"warehouse_id"`
}

// CommunityResponse represents a community in API responses
type CommunityResponse struct {
	CommunityID  string    `json:"community_id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	ReceivedTime time.Time `json:"received_time"`
	Population   int       `json:"population"`
	WarehouseID  string    `json:"warehouse_id"`
}

// CommunityListFilter adds the community specific list filters
type CommunityListFilter struct {
	WarehouseID string `form:"warehouse_id"`
}

// ToCommunityResponse converts a domain Community to CommunityResponse
func ToCommunityResponse(c *partner.Community) CommunityResponse {
	return CommunityResponse{
		CommunityID:  c.CommunityID,
		Name:         c.Name,
		Address:      c.Address,
		ReceivedTime: c.ReceivedTime,
		Population:   c.Population,
		WarehouseID:  c.WarehouseID,
	}
}

// ToCommunityResponses converts a slice of communities
func ToCommunityResponses(communities []partner.Community) []CommunityResponse {
	out := make([]CommunityResponse, len(communities))
	for i := range communities {
		out[i] = ToCommunityResponse(&communities[i])
	}
	return out
}

// =============================================================================
// Restaurant DTOs
// =============================================================================

// CreateRestaurantRequest represents a request to create a restaurant
type CreateRestaurantRequest struct {
	RestaurantID      string  `json:"restaurant_id" binding:"required,max=10"`
	Name              string  `json:"name" binding:"required,max=100"`
	BranchName        string  `json:"branch_name" binding:"max=100"`
	Address           string  `json:"address" binding:"required,max=300"`
	IsChain           bool    `json:"is_chain"`
	ChainID           *string `json:"chain_id"`
	RestaurantChainID *string `json:"restaurant_chain_id"`
}

// UpdateRestaurantRequest represents a full or partial restaurant update.
// Absent chain keys keep their value; an explicit null clears them.
type UpdateRestaurantRequest struct {
	Name              *string                 `json:"name" binding:"omitempty,max=100"`
	BranchName        *string                 `json:"branch_name" binding:"omitempty,max=100"`
	Address           *string                 `json:"address" binding:"omitempty,max=300"`
	IsChain           *bool                   `json:"is_chain"`
	ChainID           shared.Optional[string] `json:"chain_id"`
	RestaurantChainID shared.Optional[string] `json:"restaurant_chain_id"`
}

// RestaurantResponse represents a restaurant in API responses
type RestaurantResponse struct {
	RestaurantID      string  `json:"restaurant_id"`
	Name              string  `json:"name"`
	BranchName        string  `json:"branch_name"`
	Address           string  `json:"address"`
	IsChain           bool    `json:"is_chain"`
	ChainID           *string `json:"chain_id"`
	RestaurantChainID *string `json:"restaurant_chain_id"`
}

// RestaurantListFilter adds the restaurant specific list filters
type RestaurantListFilter struct {
	IsChain string `form:"is_chain"`
}

// ToRestaurantResponse converts a domain Restaurant to RestaurantResponse
func ToRestaurantResponse(r *partner.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		RestaurantID:      r.RestaurantID,
		Name:              r.Name,
		BranchName:        r.BranchName,
		Address:           r.Address,
		IsChain:           r.IsChain,
		ChainID:           r.ChainID,
		RestaurantChainID: r.RestaurantChainID,
	}
}

// ToRestaurantResponses converts a slice of restaurants
func ToRestaurantResponses(restaurants []partner.Restaurant) []RestaurantResponse {
	out := make([]RestaurantResponse, len(restaurants))
	for i := range restaurants {
		out[i] = ToRestaurantResponse(&restaurants[i])
	}
	return out
}

// =============================================================================
// Restaurant chain DTOs
// =============================================================================

// ChainRequest represents a chain create or update
type ChainRequest struct {
	ChainID   string  `json:"chain_id" binding:"max=10"`
	ChainName *string `json:"chain_name" binding:"omitempty,max=100"`
}

// ChainResponse represents a restaurant chain in API responses
type ChainResponse struct {
	ChainID   string `json:"chain_id"`
	ChainName string `json:"chain_name"`
}

// ToChainResponse converts a domain RestaurantChain to ChainResponse
func ToChainResponse(c *partner.RestaurantChain) ChainResponse {
	return ChainResponse{ChainID: c.ChainID, ChainName: c.ChainName}
}

// ToChainResponses converts a slice of chains
func ToChainResponses(chains []partner.RestaurantChain) []ChainResponse {
	out := make([]ChainResponse, len(chains))
	for i := range chains {
		out[i] = ToChainResponse(&chains[i])
	}
	return out
}
