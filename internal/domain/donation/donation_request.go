package donation

import (
	"strings"
	"time"

	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
)

// DonationRequest is a community's ask for food
type DonationRequest struct {
	RequestID        string    `gorm:"column:request_id;type:varchar(10);primaryKey"`
	Title            string    `gorm:"type:varchar(120);not null"`
	CommunityName    string    `gorm:"type:varchar(120);not null;default:''"`
	RecipientAddress string    `gorm:"type:varchar(300);not null"`
	ExpectedDelivery time.Time `gorm:"not null"`
	PeopleCount      int       `gorm:"not null"`
	ContactPhone     string    `gorm:"type:varchar(30);not null;default:''"`
	Notes            string    `gorm:"type:text;not null;default:''"`
	CreatedAt        time.Time `gorm:"not null;autoCreateTime:false"`
	CommunityID      *string   `gorm:"column:community_id;type:varchar(10);index"`
	CreatedByID      *string   `gorm:"column:created_by_id;type:varchar(10);index"`
	Status           Status    `gorm:"type:varchar(20);not null;default:'pending'"`
}

// TableName returns the table name for GORM
func (DonationRequest) TableName() string {
	return "donation_request"
}

// DonationRequestChanges carries a full or partial write. Nil fields are left
// untouched.
type DonationRequestChanges struct {
	Title            *string
	CommunityName    *string
	RecipientAddress *string
	ExpectedDelivery *time.Time
	PeopleCount      *int
	ContactPhone     *string
	Notes            *string
	Status           *Status
}

// NewDonationRequest validates and builds a pending request for a community
func NewDonationRequest(c DonationRequestChanges, communityID string, createdBy *string) (*DonationRequest, error) {
	var fe shared.FieldErrors
	if c.Title == nil {
		fe.Add("title", "This field is required.")
	}
	if c.RecipientAddress == nil {
		fe.Add("recipient_address", "This field is required.")
	}
	if c.ExpectedDelivery == nil {
		fe.Add("expected_delivery", "This field is required.")
	}
	if c.PeopleCount == nil {
		fe.Add("people_count", "This field is required.")
	}
	if err := fe.Err(); err != nil {
		return nil, err
	}

	r := &DonationRequest{
		CreatedAt:   time.Now(),
		CommunityID: &communityID,
		CreatedByID: createdBy,
		Status:      StatusPending,
	}
	if err := r.Apply(c); err != nil {
		return nil, err
	}
	return r, nil
}

// Apply validates the change set against the current values and applies it
func (r *DonationRequest) Apply(c DonationRequestChanges) error {
	next := *r
	if c.Title != nil {
		next.Title = strings.TrimSpace(*c.Title)
	}
	if c.CommunityName != nil {
		next.CommunityName = strings.TrimSpace(*c.CommunityName)
	}
	if c.RecipientAddress != nil {
		next.RecipientAddress = strings.TrimSpace(*c.RecipientAddress)
	}
	if c.ExpectedDelivery != nil {
		next.ExpectedDelivery = *c.ExpectedDelivery
	}
	if c.PeopleCount != nil {
		next.PeopleCount = *c.PeopleCount
	}
	if c.ContactPhone != nil {
		next.ContactPhone = strings.TrimSpace(*c.ContactPhone)
	}
	if c.Notes != nil {
		next.Notes = *c.Notes
	}
	if c.Status != nil {
		next.Status = *c.Status
	}

	var fe shared.FieldErrors
	shared.ValidateText(&fe, "title", next.Title, 120, true)
	shared.ValidateText(&fe, "community_name", next.CommunityName, 120, false)
	shared.ValidateText(&fe, "recipient_address", next.RecipientAddress, 300, true)
	shared.ValidateText(&fe, "contact_phone", next.ContactPhone, 30, false)
	if next.PeopleCount < 0 {
		fe.Add("people_count", "Ensure this value is greater than or equal to 0.")
	}
	if next.ExpectedDelivery.IsZero() {
		fe.Add("expected_delivery", "This field is required.")
	}
	if !next.Status.IsValid() {
		fe.Add("status", "\""+string(next.Status)+"\" is not a valid choice.")
	}
	if err := fe.Err(); err != nil {
		return err
	}

	*r = next
	return nil
}

// RequestOwnership describes how the actor relates to a request
type RequestOwnership struct {
	// LinkedToRecipient is true when the actor's recipient profile points at this request
	LinkedToRecipient bool
	// HasActiveDeliveries is true when its community has in-transit or delivered deliveries
	HasActiveDeliveries bool
	// ActorPhone is the stored phone of the acting user, matched against legacy rows
	ActorPhone string
}

// EnsureManageable checks that actor may modify or delete the request. Accepted
// requests and those with active or completed deliveries are frozen. Otherwise
// admins, the creator and the linked recipient may proceed. Rows without a
// creator are open while pending and otherwise match on the contact phone.
func (r *DonationRequest) EnsureManageable(actor shared.Actor, own RequestOwnership) error {
	if r.Status == StatusAccepted {
		return shared.NewValidationError("Accepted donation requests cannot be modified or deleted.")
	}
	if own.HasActiveDeliveries {
		return shared.NewValidationError("Donation requests with active or completed deliveries cannot be modified or deleted.")
	}
	if actor.IsAdmin {
		return nil
	}
	if r.CreatedByID == nil && r.Status == StatusPending {
		return nil
	}
	if actor.UserID != "" {
		if r.CreatedByID != nil && *r.CreatedByID == actor.UserID {
			return nil
		}
		if own.LinkedToRecipient {
			return nil
		}
		if r.CreatedByID == nil && r.ContactPhone != "" && own.ActorPhone != "" &&
			strings.TrimSpace(own.ActorPhone) == r.ContactPhone {
			return nil
		}
	}
	return shared.NewForbiddenError("You do not have permission to modify this donation request.")
}
