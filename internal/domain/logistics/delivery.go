package logistics

import (
	"strings"
	"time"

	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
)

// DeliveryType distinguishes restaurant pickups from community distributions
type DeliveryType string

const (
	TypeDonation     DeliveryType = "donation"
	TypeDistribution DeliveryType = "distribution"
)

// LocationType names the kind of site at either end of a delivery
type LocationType string

const (
	LocationRestaurant LocationType = "restaurant"
	LocationWarehouse  LocationType = "warehouse"
	LocationCommunity  LocationType = "community"
)

// Status is the progress of a delivery
type Status string

const (
	StatusPending   Status = "pending"
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// MaxQuantityLength bounds the free-text delivery quantity
const MaxQuantityLength = 50

// Delivery is a movement of goods between a restaurant, a warehouse and a community
type Delivery struct {
	DeliveryID          string       `gorm:"column:delivery_id;type:varchar(10);primaryKey"`
	DeliveryType        DeliveryType `gorm:"type:varchar(20);not null"`
	PickupTime          time.Time    `gorm:"not null"`
	DropoffTime         time.Time    `gorm:"not null"`
	PickupLocationType  LocationType `gorm:"type:varchar(20);not null"`
	DropoffLocationType LocationType `gorm:"type:varchar(20);not null"`
	Status              Status       `gorm:"type:varchar(20);not null;default:'pending'"`
	Notes               string       `gorm:"type:text;not null;default:''"`
	WarehouseID         *string      `gorm:"column:warehouse_id;type:varchar(10);index"`
	UserID              *string      `gorm:"column:user_id;type:varchar(10);index"`
	DonationID          *string      `gorm:"column:donation_id;type:varchar(10);index"`
	CommunityID         *string      `gorm:"column:community_id;type:varchar(10);index"`
	FoodID              *string      `gorm:"column:food_id;type:varchar(10);index"`
	DeliveryQuantity    *string      `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (Delivery) TableName() string {
	return "delivery"
}

// DeliveryChanges carries a full or partial write. Absent fields keep their
// stored value; an explicit null clears a reference.
type DeliveryChanges struct {
	DeliveryType        *DeliveryType
	PickupTime          *time.Time
	DropoffTime         *time.Time
	PickupLocationType  *LocationType
	DropoffLocationType *LocationType
	Status              *Status
	Notes               *string
	WarehouseID         shared.Optional[string]
	UserID              shared.Optional[string]
	DonationID          shared.Optional[string]
	CommunityID         shared.Optional[string]
	FoodID              shared.Optional[string]
	DeliveryQuantity    shared.Optional[string]
}

// NewDelivery builds a pending delivery from a create payload. The key is
// assigned by the repository.
func NewDelivery(c DeliveryChanges) (*Delivery, error) {
	var fe shared.FieldErrors
	if c.DeliveryType == nil {
		fe.Add("delivery_type", "This field is required.")
	}
	if c.PickupTime == nil {
		fe.Add("pickup_time", "This field is required.")
	}
	if c.DropoffTime == nil {
		fe.Add("dropoff_time", "This field is required.")
	}
	if c.PickupLocationType == nil {
		fe.Add("pickup_location_type", "This field is required.")
	}
	if c.DropoffLocationType == nil {
		fe.Add("dropoff_location_type", "This field is required.")
	}
	if err := fe.Err(); err != nil {
		return nil, err
	}

	d := &Delivery{Status: StatusPending}
	if err := d.Apply(c); err != nil {
		return nil, err
	}
	return d, nil
}

// Apply validates the change set against the current values and applies it
func (d *Delivery) Apply(c DeliveryChanges) error {
	next := *d
	if c.DeliveryType != nil {
		next.DeliveryType = *c.DeliveryType
	}
	if c.PickupTime != nil {
		next.PickupTime = *c.PickupTime
	}
	if c.DropoffTime != nil {
		next.DropoffTime = *c.DropoffTime
	}
	if c.PickupLocationType != nil {
		next.PickupLocationType = *c.PickupLocationType
	}
	if c.DropoffLocationType != nil {
		next.DropoffLocationType = *c.DropoffLocationType
	}
	if c.Status != nil {
		next.Status = *c.Status
	}
	if c.Notes != nil {
		next.Notes = *c.Notes
	}
	assignRef(&next.WarehouseID, c.WarehouseID)
	assignRef(&next.UserID, c.UserID)
	assignRef(&next.DonationID, c.DonationID)
	assignRef(&next.CommunityID, c.CommunityID)
	assignRef(&next.FoodID, c.FoodID)

	var fe shared.FieldErrors
	if c.DeliveryQuantity.Set {
		if c.DeliveryQuantity.Null {
			next.DeliveryQuantity = nil
		} else {
			q := c.DeliveryQuantity.Value
			switch {
			case strings.TrimSpace(q) == "":
				fe.Add("delivery_quantity", "Delivery quantity cannot be empty")
			case len(q) > MaxQuantityLength:
				fe.Add("delivery_quantity", "Ensure this field has no more than 50 characters.")
			default:
				next.DeliveryQuantity = &q
			}
		}
	}

	if !next.Status.IsValid() {
		fe.Add("status", "Invalid status value")
	}
	switch next.PickupLocationType {
	case LocationRestaurant, LocationWarehouse:
	default:
		fe.Add("pickup_location_type", "\""+string(next.PickupLocationType)+"\" is not a valid choice.")
	}
	switch next.DropoffLocationType {
	case LocationWarehouse, LocationCommunity:
	default:
		fe.Add("dropoff_location_type", "\""+string(next.DropoffLocationType)+"\" is not a valid choice.")
	}
	if err := fe.Err(); err != nil {
		return err
	}
	if err := next.validateAssignment(); err != nil {
		return err
	}

	*d = next
	return nil
}

// validateAssignment enforces the references each delivery type needs
func (d *Delivery) validateAssignment() error {
	var fe shared.FieldErrors
	switch d.DeliveryType {
	case TypeDonation:
		if d.DonationID == nil {
			fe.Add("donation_id", "Donation is required for pickup deliveries.")
		}
		if d.WarehouseID == nil {
			fe.Add("warehouse_id", "Warehouse is required.")
		}
		if d.UserID == nil {
			fe.Add("user_id", "Delivery staff is required.")
		}
	case TypeDistribution:
		if d.CommunityID == nil {
			fe.Add("community_id", "Community is required for distribution deliveries.")
		}
		if d.WarehouseID == nil {
			fe.Add("warehouse_id", "Warehouse is required.")
		}
		if d.UserID == nil {
			fe.Add("user_id", "Delivery staff is required.")
		}
	default:
		fe.Add("delivery_type", "Unknown delivery type.")
	}
	return fe.Err()
}

// AssignedTo reports whether the delivery is assigned to the user
func (d *Delivery) AssignedTo(userID string) bool {
	return userID != "" && d.UserID != nil && *d.UserID == userID
}

// HasStockLine reports whether the delivery moves a food item in a known quantity
func (d *Delivery) HasStockLine() bool {
	return d.FoodID != nil && d.DeliveryQuantity != nil
}

// ParseDropoffTime accepts an RFC3339 timestamp or a bare HH:MM:SS time, which
// is placed on the pickup date. A zero pickup uses today.
func ParseDropoffTime(raw string, pickup time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) == 8 && strings.Count(raw, ":") == 2 {
		clock, err := time.Parse(time.TimeOnly, raw)
		if err == nil {
			base := pickup
			if base.IsZero() {
				base = time.Now()
			}
			y, m, day := base.Date()
			return time.Date(y, m, day, clock.Hour(), clock.Minute(), clock.Second(), 0, base.Location()), nil
		}
	}
	return ParseDateTime(raw)
}

// ParseDateTime accepts RFC3339 with or without a zone, or a space separated
// date and time.
func ParseDateTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	layouts := []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04:05"}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func assignRef(dst **string, o shared.Optional[string]) {
	if !o.Set {
		return
	}
	if o.Null || strings.TrimSpace(o.Value) == "" {
		*dst = nil
		return
	}
	v := strings.TrimSpace(o.Value)
	*dst = &v
}
