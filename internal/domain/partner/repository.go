package partner

import (
	"context"

	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
)

// WarehouseRepository defines the interface for warehouse persistence
type WarehouseRepository interface {
	// FindByID finds a warehouse by its key
	FindByID(ctx context.Context, id string) (*Warehouse, error)

	// FindFirst returns the warehouse with the lowest key
	FindFirst(ctx context.Context) (*Warehouse, error)

	// FindAll finds all warehouses matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Warehouse, error)

	// Count counts warehouses matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByID checks whether the key is taken
	ExistsByID(ctx context.Context, id string) (bool, error)

	// Create inserts a new warehouse
	Create(ctx context.Context, warehouse *Warehouse) error

	// Save updates an existing warehouse
	Save(ctx context.Context, warehouse *Warehouse) error

	// Delete removes a warehouse, failing with ErrProtected while communities or
	// deliveries reference it
	Delete(ctx context.Context, id string) error
}

// CommunityRepository defines the interface for community persistence
type CommunityRepository interface {
	FindByID(ctx context.Context, id string) (*Community, error)
	// FindByName matches the name case-insensitively
	FindByName(ctx context.Context, name string) (*Community, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Community, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	// ListIDs returns every community key, used to allocate generated keys
	ListIDs(ctx context.Context) ([]string, error)
	Create(ctx context.Context, community *Community) error
	Save(ctx context.Context, community *Community) error
	// Delete fails with ErrProtected while deliveries reference the community
	Delete(ctx context.Context, id string) error
}

// RestaurantRepository defines the interface for restaurant persistence
type RestaurantRepository interface {
	FindByID(ctx context.Context, id string) (*Restaurant, error)
	// FindByNameAndBranch matches both columns case-insensitively
	FindByNameAndBranch(ctx context.Context, name, branch string) (*Restaurant, error)
	// FindAll supports the "search" and "is_chain" filters
	FindAll(ctx context.Context, filter shared.Filter) ([]Restaurant, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// FindBranches lists restaurants whose chain is the given restaurant
	FindBranches(ctx context.Context, id string) ([]Restaurant, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	ListIDs(ctx context.Context) ([]string, error)
	Create(ctx context.Context, restaurant *Restaurant) error
	Save(ctx context.Context, restaurant *Restaurant) error
	// Delete removes the restaurant with its donations, food items and impact
	// records, and detaches its branches
	Delete(ctx context.Context, id string) error
}

// RestaurantChainRepository defines the interface for restaurant chain persistence
type RestaurantChainRepository interface {
	FindByID(ctx context.Context, id string) (*RestaurantChain, error)
	// FindByName matches the chain name case-insensitively
	FindByName(ctx context.Context, name string) (*RestaurantChain, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]RestaurantChain, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	// Create assigns the next CHA key when ChainID is empty
	Create(ctx context.Context, chain *RestaurantChain) error
	Save(ctx context.Context, chain *RestaurantChain) error
	// Delete clears chain references on restaurants and food items
	Delete(ctx context.Context, id string) error
}
