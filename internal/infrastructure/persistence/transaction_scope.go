package persistence

import (
	"context"

	appshared "github.com/NapatKulnarong/ReMeals/internal/application/shared"
	"github.com/NapatKulnarong/ReMeals/internal/domain/donation"
	"github.com/NapatKulnarong/ReMeals/internal/domain/identity"
	"github.com/NapatKulnarong/ReMeals/internal/domain/logistics"
	"github.com/NapatKulnarong/ReMeals/internal/domain/partner"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// If fn returns an error the transaction is rolled back.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn with repositories bound to one transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appshared.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

// NewRepositories returns every repository bound to db, which may be a transaction
func NewRepositories(db *gorm.DB) appshared.Repositories {
	return &gormRepositories{db: db}
}

type gormRepositories struct {
	db *gorm.DB
}

func (r *gormRepositories) Warehouses() partner.WarehouseRepository {
	return NewGormWarehouseRepository(r.db)
}

func (r *gormRepositories) Communities() partner.CommunityRepository {
	return NewGormCommunityRepository(r.db)
}

func (r *gormRepositories) Restaurants() partner.RestaurantRepository {
	return NewGormRestaurantRepository(r.db)
}

func (r *gormRepositories) Chains() partner.RestaurantChainRepository {
	return NewGormRestaurantChainRepository(r.db)
}

func (r *gormRepositories) Donations() donation.DonationRepository {
	return NewGormDonationRepository(r.db)
}

func (r *gormRepositories) FoodItems() donation.FoodItemRepository {
	return NewGormFoodItemRepository(r.db)
}

func (r *gormRepositories) ImpactRecords() donation.ImpactRecordRepository {
	return NewGormImpactRecordRepository(r.db)
}

func (r *gormRepositories) DonationRequests() donation.DonationRequestRepository {
	return NewGormDonationRequestRepository(r.db)
}

func (r *gormRepositories) Deliveries() logistics.DeliveryRepository {
	return NewGormDeliveryRepository(r.db)
}

func (r *gormRepositories) Users() identity.UserRepository {
	return NewGormUserRepository(r.db)
}

func (r *gormRepositories) Roles() identity.RoleRepository {
	return NewGormRoleRepository(r.db)
}

var (
	_ appshared.TransactionScope = (*GormTransactionScope)(nil)
	_ appshared.Repositories     = (*gormRepositories)(nil)
)
