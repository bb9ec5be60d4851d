package logistics

import (
	"context"

	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
)

// DeliveryRepository defines the interface for delivery persistence
type DeliveryRepository interface {
	FindByID(ctx context.Context, id string) (*Delivery, error)
	FindAll(ctx context.Context, filter DeliveryFilter, page shared.Filter) ([]Delivery, error)
	Count(ctx context.Context, filter DeliveryFilter) (int64, error)
	// FindDeliveredToWarehouse lists delivered deliveries dropped off at the warehouse
	FindDeliveredToWarehouse(ctx context.Context, warehouseID string) ([]Delivery, error)
	// ExistsActiveForCommunity reports in-transit or delivered deliveries to the community
	ExistsActiveForCommunity(ctx context.Context, communityID string) (bool, error)
	// Create assigns the next DLV key
	Create(ctx context.Context, delivery *Delivery) error
	Save(ctx context.Context, delivery *Delivery) error
	Delete(ctx context.Context, id string) error
}
