package partner

import (
	"context"

	appdonation "github.com/NapatKulnarong/ReMeals/internal/application/donation"
	"github.com/NapatKulnarong/ReMeals/internal/application/shared"
	"github.com/NapatKulnarong/ReMeals/internal/domain/donation"
	"github.com/NapatKulnarong/ReMeals/internal/domain/logistics"
	"github.com/NapatKulnarong/ReMeals/internal/domain/partner"
	domainshared "github.com/NapatKulnarong/ReMeals/internal/domain/shared"
)

// WarehouseService handles warehouse-related business operations
type WarehouseService struct {
	warehouseRepo partner.WarehouseRepository
	deliveryRepo  logistics.DeliveryRepository
	foodItemRepo  donation.FoodItemRepository
	today         func() domainshared.Date
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(
	warehouseRepo partner.WarehouseRepository,
	deliveryRepo logistics.DeliveryRepository,
	foodItemRepo donation.FoodItemRepository,
) *WarehouseService {
	return &WarehouseService{
		warehouseRepo: warehouseRepo,
		deliveryRepo:  deliveryRepo,
		foodItemRepo:  foodItemRepo,
		today:         domainshared.Today,
	}
}

// Create creates a new warehouse
func (s *WarehouseService) Create(ctx context.Context, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	exists, err := s.warehouseRepo.ExistsByID(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainshared.NewFieldError("warehouse_id", "warehouse with this warehouse id already exists.")
	}

	warehouse, err := partner.NewWarehouse(req.WarehouseID, req.Address, *req.Capacity, *req.StoredDate, *req.ExpDate)
	if err != nil {
		return nil, err
	}
	if err := s.warehouseRepo.Create(ctx, warehouse); err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// GetByID retrieves a warehouse by key
func (s *WarehouseService) GetByID(ctx context.Context, id string) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// List retrieves warehouses with search and pagination
func (s *WarehouseService) List(ctx context.Context, filter domainshared.Filter) ([]WarehouseResponse, int64, error) {
	warehouses, err := s.warehouseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.warehouseRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToWarehouseResponses(warehouses), total, nil
}

// Update applies a full or partial update. A full update needs every field.
func (s *WarehouseService) Update(ctx context.Context, id string, req UpdateWarehouseRequest, partial bool) (*WarehouseResponse, error) {
	if !partial {
		if err := shared.MissingFields(
			shared.F("address", req.Address != nil),
			shared.F("capacity", req.Capacity != nil),
			shared.F("stored_date", req.StoredDate != nil),
			shared.F("exp_date", req.ExpDate != nil),
		); err != nil {
			return nil, err
		}
	}

	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	address, capacity, stored, exp := warehouse.Address, warehouse.Capacity, warehouse.StoredDate, warehouse.ExpDate
	if req.Address != nil {
		address = *req.Address
	}
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	if req.StoredDate != nil {
		stored = *req.StoredDate
	}
	if req.ExpDate != nil {
		exp = *req.ExpDate
	}
	if err := warehouse.Update(address, capacity, stored, exp); err != nil {
		return nil, err
	}

	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}
	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// Delete removes a warehouse
func (s *WarehouseService) Delete(ctx context.Context, id string) error {
	return s.warehouseRepo.Delete(ctx, id)
}

// Inventory lists the food items of donations delivered to the warehouse,
// flagging items that expired before today.
func (s *WarehouseService) Inventory(ctx context.Context, id string) (*InventoryResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	deliveries, err := s.deliveryRepo.FindDeliveredToWarehouse(ctx, warehouse.WarehouseID)
	if err != nil {
		return nil, err
	}
	donationIDs := make([]string, 0, len(deliveries))
	seen := make(map[string]bool)
	for _, d := range deliveries {
		if d.DonationID != nil && !seen[*d.DonationID] {
			seen[*d.DonationID] = true
			donationIDs = append(donationIDs, *d.DonationID)
		}
	}

	if _, err := s.foodItemRepo.MarkExpired(ctx, s.today(), donationIDs); err != nil {
		return nil, err
	}
	items, err := s.foodItemRepo.FindByDonationIDs(ctx, donationIDs)
	if err != nil {
		return nil, err
	}

	return &InventoryResponse{
		WarehouseID:      warehouse.WarehouseID,
		WarehouseAddress: warehouse.Address,
		TotalItems:       len(items),
		Inventory:        appdonation.ToFoodItemResponses(items),
	}, nil
}
