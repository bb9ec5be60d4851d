package donation

import (
	"time"

	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
)

// Status is the review state shared by donations and donation requests
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusDeclined Status = "declined"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined:
		return true
	}
	return false
}

// ParseStatusFilter maps a list query value onto a status. Boolean style values
// are accepted for compatibility: true, 1 and completed mean accepted, false and
// 0 mean pending. ok is false for anything else.
func ParseStatusFilter(raw string) (status Status, ok bool) {
	switch raw {
	case "pending", "accepted", "declined":
		return Status(raw), true
	case "true", "1", "completed":
		return StatusAccepted, true
	case "false", "0":
		return StatusPending, true
	}
	return "", false
}

// Donation is a food contribution event from a restaurant
type Donation struct {
	DonationID   string    `gorm:"column:donation_id;type:varchar(10);primaryKey"`
	DonatedAt    time.Time `gorm:"not null"`
	Status       Status    `gorm:"type:varchar(20);not null;default:'pending'"`
	RestaurantID string    `gorm:"column:restaurant_id;type:varchar(10);not null;index"`
	CreatedByID  *string   `gorm:"column:created_by_id;type:varchar(10);index"`
}

// TableName returns the table name for GORM
func (Donation) TableName() string {
	return "donation"
}

// NewDonation creates a pending donation for a restaurant. The key is assigned by
// the repository.
func NewDonation(restaurantID string, createdBy *string) *Donation {
	return &Donation{
		DonatedAt:    time.Now(),
		Status:       StatusPending,
		RestaurantID: restaurantID,
		CreatedByID:  createdBy,
	}
}

// EnsureManageable checks that actor may modify or delete the donation. Only
// pending donations are mutable; after that admins, the creator, and anyone for
// legacy rows without a creator may proceed. userExists tells whether the actor's
// user id refers to a stored user.
func (d *Donation) EnsureManageable(actor shared.Actor, userExists bool) error {
	if d.Status != StatusPending {
		return shared.NewValidationError("Only pending donations can be modified or deleted.")
	}
	if actor.IsAdmin {
		return nil
	}
	if actor.UserID != "" && userExists {
		if d.CreatedByID == nil || *d.CreatedByID == actor.UserID {
			return nil
		}
	}
	return shared.NewForbiddenError("You do not have permission to modify this donation.")
}

// SetStatus changes the review status
func (d *Donation) SetStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewFieldError("status", "\""+string(status)+"\" is not a valid choice.")
	}
	d.Status = status
	return nil
}
