package logistics

import (
	"strings"
	"time"

	"github.com/NapatKulnarong/ReMeals/internal/domain/logistics"
	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
)

// DeliveryPayload carries a delivery create or update. Time fields are parsed
// by the service so dropoff_time may be a bare clock time.
type DeliveryPayload struct {
	DeliveryType        *string                 `json:"delivery_type"`
	PickupTime          *string                 `json:"pickup_time"`
	DropoffTime         *string                 `json:"dropoff_time"`
	PickupLocationType  *string                 `json:"pickup_location_type"`
	DropoffLocationType *string                 `json:"dropoff_location_type"`
	Status              *string                 `json:"status"`
	Notes               *string                 `json:"notes"`
	WarehouseID         shared.Optional[string] `json:"warehouse_id"`
	UserID              shared.Optional[string] `json:"user_id"`
	DonationID          shared.Optional[string] `json:"donation_id"`
	CommunityID         shared.Optional[string] `json:"community_id"`
	FoodItem            shared.Optional[string] `json:"food_item"`
	DeliveryQuantity    shared.Optional[string] `json:"delivery_quantity"`
}

// DeliveryListFilter represents the delivery list query parameters
type DeliveryListFilter struct {
	DeliveryType string `form:"delivery_type"`
}

// DeliveryResponse represents a delivery
type DeliveryResponse struct {
	DeliveryID          string    `json:"delivery_id"`
	DeliveryType        string    `json:"delivery_type"`
	PickupTime          time.Time `json:"pickup_time"`
	DropoffTime         time.Time `json:"dropoff_time"`
	PickupLocationType  string    `json:"pickup_location_type"`
	DropoffLocationType string    `json:"dropoff_location_type"`
	WarehouseID         *string   `json:"warehouse_id"`
	UserID              *string   `json:"user_id"`
	DonationID          *string   `json:"donation_id"`
	CommunityID         *string   `json:"community_id"`
	Status              string    `json:"status"`
	Notes               string    `json:"notes"`
	FoodItem            *string   `json:"food_item"`
	DeliveryQuantity    *string   `json:"delivery_quantity"`
}

// ToDeliveryResponse converts a domain Delivery to DeliveryResponse
func ToDeliveryResponse(d *logistics.Delivery) DeliveryResponse {
	return DeliveryResponse{
		DeliveryID:          d.DeliveryID,
		DeliveryType:        string(d.DeliveryType),
		PickupTime:          d.PickupTime,
		DropoffTime:         d.DropoffTime,
		PickupLocationType:  string(d.PickupLocationType),
		DropoffLocationType: string(d.DropoffLocationType),
		WarehouseID:         d.WarehouseID,
		UserID:              d.UserID,
		DonationID:          d.DonationID,
		CommunityID:         d.CommunityID,
		Status:              string(d.Status),
		Notes:               d.Notes,
		FoodItem:            d.FoodID,
		DeliveryQuantity:    d.DeliveryQuantity,
	}
}

// ToDeliveryResponses converts a slice of deliveries
func ToDeliveryResponses(deliveries []logistics.Delivery) []DeliveryResponse {
	out := make([]DeliveryResponse, len(deliveries))
	for i := range deliveries {
		out[i] = ToDeliveryResponse(&deliveries[i])
	}
	return out
}

// changes converts the payload into domain changes. pickup anchors a bare
// dropoff clock time when the payload carries no pickup_time.
func (p DeliveryPayload) changes(pickup time.Time) (logistics.DeliveryChanges, error) {
	var fe shared.FieldErrors
	c := logistics.DeliveryChanges{
		Notes:       p.Notes,
		WarehouseID: p.WarehouseID,
		UserID:      p.UserID,
		DonationID:  p.DonationID,
		CommunityID: p.CommunityID,
		FoodID:      p.FoodItem,
	}
	c.DeliveryQuantity = p.DeliveryQuantity

	if p.DeliveryType != nil {
		t := logistics.DeliveryType(strings.TrimSpace(*p.DeliveryType))
		c.DeliveryType = &t
	}
	if p.PickupTime != nil {
		t, err := logistics.ParseDateTime(*p.PickupTime)
		if err != nil {
			fe.Add("pickup_time", wrongDateTimeFormat)
		} else {
			c.PickupTime = &t
			pickup = t
		}
	}
	if p.DropoffTime != nil {
		t, err := logistics.ParseDropoffTime(*p.DropoffTime, pickup)
		if err != nil {
			fe.Add("dropoff_time", wrongDateTimeFormat)
		} else {
			c.DropoffTime = &t
		}
	}
	if p.PickupLocationType != nil {
		l := logistics.LocationType(strings.TrimSpace(*p.PickupLocationType))
		c.PickupLocationType = &l
	}
	if p.DropoffLocationType != nil {
		l := logistics.LocationType(strings.TrimSpace(*p.DropoffLocationType))
		c.DropoffLocationType = &l
	}
	if p.Status != nil {
		s := logistics.Status(strings.TrimSpace(*p.Status))
		c.Status = &s
	}
	return c, fe.Err()
}

// statusChanges keeps only the fields a driver may patch
func (p DeliveryPayload) statusChanges() DeliveryPayload {
	return DeliveryPayload{Status: p.Status, Notes: p.Notes, DropoffTime: p.DropoffTime}
}

func (p DeliveryPayload) hasStatusFields() bool {
	return p.Status != nil || p.Notes != nil || p.DropoffTime != nil
}

const wrongDateTimeFormat = "Datetime has wrong format. Use one of these formats instead: YYYY-MM-DDThh:mm[:ss[.uuuuuu]][+HH:MM|-HH:MM|Z]."
