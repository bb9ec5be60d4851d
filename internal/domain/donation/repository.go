package donation

import (
	"context"
	"time"

	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
)

// DonationFilter narrows donation lists
type DonationFilter struct {
	RestaurantID string
	Statuses     []Status
	// Empty is set when the status filter matched nothing, yielding no rows
	Empty    bool
	DateFrom *time.Time
	DateTo   *time.Time
	// RestaurantIDs limits rows to these restaurants when non-nil
	RestaurantIDs []string
}

// DonationRepository defines the interface for donation persistence
type DonationRepository interface {
	FindByID(ctx context.Context, id string) (*Donation, error)
	FindAll(ctx context.Context, filter DonationFilter, page shared.Filter) ([]Donation, error)
	Count(ctx context.Context, filter DonationFilter) (int64, error)
	// Create assigns the next DON key
	Create(ctx context.Context, donation *Donation) error
	Save(ctx context.Context, donation *Donation) error
	// Delete removes the donation with its food items and impact records and
	// detaches its deliveries
	Delete(ctx context.Context, id string) error
}

// FoodItemFilter narrows food item lists. Nil flags are not applied.
type FoodItemFilter struct {
	DonationID    string
	IsExpired     *bool
	IsClaimed     *bool
	IsDistributed *bool
}

// FoodItemRepository defines the interface for food item persistence
type FoodItemRepository interface {
	FindByID(ctx context.Context, id string) (*FoodItem, error)
	FindAll(ctx context.Context, filter FoodItemFilter, page shared.Filter) ([]FoodItem, error)
	Count(ctx context.Context, filter FoodItemFilter) (int64, error)
	// FindByDonationIDs lists the items of the given donations
	FindByDonationIDs(ctx context.Context, donationIDs []string) ([]FoodItem, error)
	// FindDistributedWithoutImpact lists distributed items of a donation that have
	// no impact record yet
	FindDistributedWithoutImpact(ctx context.Context, donationID string) ([]FoodItem, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, item *FoodItem) error
	Save(ctx context.Context, item *FoodItem) error
	// MarkExpired flips is_expired on unexpired items whose expiry is before day,
	// optionally limited to the given donations, and returns the number changed
	MarkExpired(ctx context.Context, day shared.Date, donationIDs []string) (int64, error)
	// Delete fails with ErrProtected while deliveries reference the item
	Delete(ctx context.Context, id string) error
}

// ImpactRecordRepository defines the interface for impact record persistence
type ImpactRecordRepository interface {
	FindByID(ctx context.Context, id string) (*ImpactRecord, error)
	FindAll(ctx context.Context, page shared.Filter) ([]ImpactRecord, error)
	Count(ctx context.Context) (int64, error)
	ExistsForFood(ctx context.Context, foodID string) (bool, error)
	// Create assigns the next IMP key
	Create(ctx context.Context, record *ImpactRecord) error
	Summarize(ctx context.Context) (*ImpactSummary, error)
}

// DonationRequestRepository defines the interface for donation request persistence
type DonationRequestRepository interface {
	FindByID(ctx context.Context, id string) (*DonationRequest, error)
	// FindAll lists requests newest first
	FindAll(ctx context.Context, page shared.Filter) ([]DonationRequest, error)
	Count(ctx context.Context) (int64, error)
	// Create assigns the next REQ key
	Create(ctx context.Context, request *DonationRequest) error
	Save(ctx context.Context, request *DonationRequest) error
	// Delete removes the request and clears recipient links to it
	Delete(ctx context.Context, id string) error
}
