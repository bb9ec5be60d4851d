package shared

import (
	"context"

	"github.com/NapatKulnarong/ReMeals/internal/domain/donation"
	"github.com/NapatKulnarong/ReMeals/internal/domain/identity"
	"github.com/NapatKulnarong/ReMeals/internal/domain/logistics"
	"github.com/NapatKulnarong/ReMeals/internal/domain/partner"
)

// Repositories gives access to every repository, bound either to the plain
// connection or to an open transaction.
type Repositories interface {
	Warehouses() partner.WarehouseRepository
	Communities() partner.CommunityRepository
	Restaurants() partner.RestaurantRepository
	Chains() partner.RestaurantChainRepository
	Donations() donation.DonationRepository
	FoodItems() donation.FoodItemRepository
	ImpactRecords() donation.ImpactRecordRepository
	DonationRequests() donation.DonationRequestRepository
	Deliveries() logistics.DeliveryRepository
	Users() identity.UserRepository
	Roles() identity.RoleRepository
}

// TransactionScope runs a unit of work atomically. If fn returns an error the
// transaction is rolled back, otherwise it is committed.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}
