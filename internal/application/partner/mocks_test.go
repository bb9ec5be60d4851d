package partner

import (
	"context"

	"github.com/NapatKulnarong/ReMeals/internal/domain/donation"
	"github.com/NapatKulnarong/ReMeals/internal/domain/logistics"
	"github.com/NapatKulnarong/ReMeals/internal/domain/partner"
	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockWarehouseRepository is a mock implementation of WarehouseRepository
type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) FindByID(ctx context.Context, id string) (*partner.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindFirst(ctx context.Context) (*partner.Warehouse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Warehouse, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWarehouseRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockWarehouseRepository) Create(ctx context.Context, w *partner.Warehouse) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockWarehouseRepository) Save(ctx context.Context, w *partner.Warehouse) error {
	return m.Called(ctx, w).Error(0)
}

func (m *MockWarehouseRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockRestaurantChainRepository is a mock implementation of RestaurantChainRepository
type MockRestaurantChainRepository struct {
	mock.Mock
}

func (m *MockRestaurantChainRepository) FindByID(ctx context.Context, id string) (*partner.RestaurantChain, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.RestaurantChain), args.Error(1)
}

func (m *MockRestaurantChainRepository) FindByName(ctx context.Context, name string) (*partner.RestaurantChain, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.RestaurantChain), args.Error(1)
}

func (m *MockRestaurantChainRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.RestaurantChain, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.RestaurantChain), args.Error(1)
}

func (m *MockRestaurantChainRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRestaurantChainRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRestaurantChainRepository) Create(ctx context.Context, c *partner.RestaurantChain) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockRestaurantChainRepository) Save(ctx context.Context, c *partner.RestaurantChain) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockRestaurantChainRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockDeliveryRepository is a mock implementation of DeliveryRepository
type MockDeliveryRepository struct {
	mock.Mock
}

func (m *MockDeliveryRepository) FindByID(ctx context.Context, id string) (*logistics.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*logistics.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) FindAll(ctx context.Context, filter logistics.DeliveryFilter, page shared.Filter) ([]logistics.Delivery, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]logistics.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) Count(ctx context.Context, filter logistics.DeliveryFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDeliveryRepository) FindDeliveredToWarehouse(ctx context.Context, warehouseID string) ([]logistics.Delivery, error) {
	args := m.Called(ctx, warehouseID)
	return args.Get(0).([]logistics.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) ExistsActiveForCommunity(ctx context.Context, communityID string) (bool, error) {
	args := m.Called(ctx, communityID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDeliveryRepository) Create(ctx context.Context, d *logistics.Delivery) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDeliveryRepository) Save(ctx context.Context, d *logistics.Delivery) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDeliveryRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockFoodItemRepository is a mock implementation of FoodItemRepository
type MockFoodItemRepository struct {
	mock.Mock
}

func (m *MockFoodItemRepository) FindByID(ctx context.Context, id string) (*donation.FoodItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*donation.FoodItem), args.Error(1)
}

func (m *MockFoodItemRepository) FindAll(ctx context.Context, filter donation.FoodItemFilter, page shared.Filter) ([]donation.FoodItem, error) {
	args := m.Called(ctx, filter, page)
	return args.Get(0).([]donation.FoodItem), args.Error(1)
}

func (m *MockFoodItemRepository) Count(ctx context.Context, filter donation.FoodItemFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFoodItemRepository) FindByDonationIDs(ctx context.Context, donationIDs []string) ([]donation.FoodItem, error) {
	args := m.Called(ctx, donationIDs)
	return args.Get(0).([]donation.FoodItem), args.Error(1)
}

func (m *MockFoodItemRepository) FindDistributedWithoutImpact(ctx context.Context, donationID string) ([]donation.FoodItem, error) {
	args := m.Called(ctx, donationID)
	return args.Get(0).([]donation.FoodItem), args.Error(1)
}

func (m *MockFoodItemRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockFoodItemRepository) Create(ctx context.Context, item *donation.FoodItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockFoodItemRepository) Save(ctx context.Context, item *donation.FoodItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockFoodItemRepository) MarkExpired(ctx context.Context, day shared.Date, donationIDs []string) (int64, error) {
	args := m.Called(ctx, day, donationIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFoodItemRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
