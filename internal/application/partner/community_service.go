package partner

import (
	"context"
	"fmt"

	"github.com/NapatKulnarong/ReMeals/internal/application/shared"
	"github.com/NapatKulnarong/ReMeals/internal/domain/partner"
	domainshared "github.com/NapatKulnarong/ReMeals/internal/domain/shared"
)

// CommunityService handles community operations
type CommunityService struct {
	communityRepo partner.CommunityRepository
	warehouseRepo partner.WarehouseRepository
}

// NewCommunityService creates a new CommunityService
func NewCommunityService(communityRepo partner.CommunityRepository, warehouseRepo partner.WarehouseRepository) *CommunityService {
	return &CommunityService{communityRepo: communityRepo, warehouseRepo: warehouseRepo}
}

// Create creates a community served by an existing warehouse
func (s *CommunityService) Create(ctx context.Context, req CreateCommunityRequest) (*CommunityResponse, error) {
	exists, err := s.communityRepo.ExistsByID(ctx, req.CommunityID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainshared.NewFieldError("community_id", "community with this community id already exists.")
	}
	if err := s.checkWarehouse(ctx, req.WarehouseID); err != nil {
		return nil, err
	}

	community, err := partner.NewCommunity(req.CommunityID, req.Name, req.Address, *req.ReceivedTime, *req.Population, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	if err := s.communityRepo.Create(ctx, community); err != nil {
		return nil, err
	}
	response := ToCommunityResponse(community)
	return &response, nil
}

// GetByID retrieves a community by key
func (s *CommunityService) GetByID(ctx context.Context, id string) (*CommunityResponse, error) {
	community, err := s.communityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCommunityResponse(community)
	return &response, nil
}

// List retrieves communities, optionally narrowed to one warehouse
func (s *CommunityService) List(ctx context.Context, filter domainshared.Filter, extra CommunityListFilter) ([]CommunityResponse, int64, error) {
	if extra.WarehouseID != "" {
		filter = filter.With("warehouse_id", extra.WarehouseID)
	}
	communities, err := s.communityRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.communityRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToCommunityResponses(communities), total, nil
}

// Update applies a full or partial update
func (s *CommunityService) Update(ctx context.Context, id string, req UpdateCommunityRequest, partial bool) (*CommunityResponse, error) {
	if !partial {
		if err := shared.MissingFields(
			shared.F("name", req.Name != nil),
			shared.F("address", req.Address != nil),
			shared.F("received_time", req.ReceivedTime != nil),
			shared.F("population", req.Population != nil),
			shared.F("warehouse_id", req.WarehouseID != nil),
		); err != nil {
			return nil, err
		}
	}

	community, err := s.communityRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, address, received, population, warehouseID := community.Name, community.Address,
		community.ReceivedTime, community.Population, community.WarehouseID
	if req.Name != nil {
		name = *req.Name
	}
	if req.Address != nil {
		address = *req.Address
	}
	if req.ReceivedTime != nil {
		received = *req.ReceivedTime
	}
	if req.Population != nil {
		population = *req.Population
	}
	if req.WarehouseID != nil && *req.WarehouseID != community.WarehouseID {
		if err := s.checkWarehouse(ctx, *req.WarehouseID); err != nil {
			return nil, err
		}
		warehouseID = *req.WarehouseID
	}
	if err := community.Update(name, address, received, population, warehouseID); err != nil {
		return nil, err
	}

	if err := s.communityRepo.Save(ctx, community); err != nil {
		return nil, err
	}
	response := ToCommunityResponse(community)
	return &response, nil
}

// Delete removes a community
func (s *CommunityService) Delete(ctx context.Context, id string) error {
	return s.communityRepo.Delete(ctx, id)
}

func (s *CommunityService) checkWarehouse(ctx context.Context, id string) error {
	exists, err := s.warehouseRepo.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domainshared.NewFieldError("warehouse_id", fmt.Sprintf("Object with warehouse_id=%s does not exist.", id))
	}
	return nil
}
