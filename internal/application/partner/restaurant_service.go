package partner

import (
	"context"
	"fmt"

	"github.com/NapatKulnarong/ReMeals/internal/application/shared"
	"github.com/NapatKulnarong/ReMeals/internal/domain/partner"
	domainshared "github.com/NapatKulnarong/ReMeals/internal/domain/shared"
)

// RestaurantService handles restaurant operations
type RestaurantService struct {
	restaurantRepo partner.RestaurantRepository
	chainRepo      partner.RestaurantChainRepository
}

// NewRestaurantService creates a new RestaurantService
func NewRestaurantService(restaurantRepo partner.RestaurantRepository, chainRepo partner.RestaurantChainRepository) *RestaurantService {
	return &RestaurantService{restaurantRepo: restaurantRepo, chainRepo: chainRepo}
}

// Create creates a restaurant, optionally as a branch of another
func (s *RestaurantService) Create(ctx context.Context, req CreateRestaurantRequest) (*RestaurantResponse, error) {
	exists, err := s.restaurantRepo.ExistsByID(ctx, req.RestaurantID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainshared.NewFieldError("restaurant_id", "restaurant with this restaurant id already exists.")
	}

	restaurant, err := partner.NewRestaurant(req.RestaurantID, partner.RestaurantFields{
		Name:       req.Name,
		BranchName: req.BranchName,
		Address:    req.Address,
		IsChain:    req.IsChain,
		ChainID:    req.ChainID,
	})
	if err != nil {
		return nil, err
	}
	if err := s.checkHead(ctx, restaurant.ChainID); err != nil {
		return nil, err
	}
	if err := s.setChainRecord(ctx, restaurant, req.RestaurantChainID); err != nil {
		return nil, err
	}

	if err := s.restaurantRepo.Create(ctx, restaurant); err != nil {
		return nil, err
	}
	response := ToRestaurantResponse(restaurant)
	return &response, nil
}

// GetByID retrieves a restaurant by key
func (s *RestaurantService) GetByID(ctx context.Context, id string) (*RestaurantResponse, error) {
	restaurant, err := s.restaurantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToRestaurantResponse(restaurant)
	return &response, nil
}

// List retrieves restaurants. search matches name or branch.
func (s *RestaurantService) List(ctx context.Context, filter domainshared.Filter, extra RestaurantListFilter) ([]RestaurantResponse, int64, error) {
	if extra.IsChain != "" {
		filter = filter.With("is_chain", shared.ParseBool(extra.IsChain))
	}
	restaurants, err := s.restaurantRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.restaurantRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToRestaurantResponses(restaurants), total, nil
}

// Branches lists the restaurants whose chain is the given restaurant
func (s *RestaurantService) Branches(ctx context.Context, id string) ([]RestaurantResponse, error) {
	exists, err := s.restaurantRepo.ExistsByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domainshared.ErrNotFound
	}
	branches, err := s.restaurantRepo.FindBranches(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToRestaurantResponses(branches), nil
}

// Update applies a full or partial update
func (s *RestaurantService) Update(ctx context.Context, id string, req UpdateRestaurantRequest, partial bool) (*RestaurantResponse, error) {
	if !partial {
		if err := shared.MissingFields(
			shared.F("name", req.Name != nil),
			shared.F("address", req.Address != nil),
		); err != nil {
			return nil, err
		}
	}

	restaurant, err := s.restaurantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := partner.RestaurantFields{
		Name:       restaurant.Name,
		BranchName: restaurant.BranchName,
		Address:    restaurant.Address,
		IsChain:    restaurant.IsChain,
		ChainID:    restaurant.ChainID,
	}
	if req.Name != nil {
		fields.Name = *req.Name
	}
	if req.BranchName != nil {
		fields.BranchName = *req.BranchName
	}
	if req.Address != nil {
		fields.Address = *req.Address
	}
	if req.IsChain != nil {
		fields.IsChain = *req.IsChain
	}
	if req.ChainID.Set {
		fields.ChainID = req.ChainID.Ptr()
	}
	if err := restaurant.Update(fields); err != nil {
		return nil, err
	}
	if req.ChainID.Present() {
		if err := s.checkHead(ctx, restaurant.ChainID); err != nil {
			return nil, err
		}
	}
	if req.RestaurantChainID.Set {
		if err := s.setChainRecord(ctx, restaurant, req.RestaurantChainID.Ptr()); err != nil {
			return nil, err
		}
	}

	if err := s.restaurantRepo.Save(ctx, restaurant); err != nil {
		return nil, err
	}
	response := ToRestaurantResponse(restaurant)
	return &response, nil
}

// Delete removes a restaurant with its donations
func (s *RestaurantService) Delete(ctx context.Context, id string) error {
	return s.restaurantRepo.Delete(ctx, id)
}

// checkHead verifies that the head restaurant of a branch exists
func (s *RestaurantService) checkHead(ctx context.Context, chainID *string) error {
	if chainID == nil {
		return nil
	}
	exists, err := s.restaurantRepo.ExistsByID(ctx, *chainID)
	if err != nil {
		return err
	}
	if !exists {
		return domainshared.NewFieldError("chain_id", fmt.Sprintf("Invalid pk \"%s\" - object does not exist.", *chainID))
	}
	return nil
}

func (s *RestaurantService) setChainRecord(ctx context.Context, restaurant *partner.Restaurant, chainID *string) error {
	if chainID == nil || *chainID == "" {
		restaurant.RestaurantChainID = nil
		return nil
	}
	exists, err := s.chainRepo.ExistsByID(ctx, *chainID)
	if err != nil {
		return err
	}
	if !exists {
		return domainshared.NewFieldError("restaurant_chain_id", fmt.Sprintf("Invalid pk \"%s\" - object does not exist.", *chainID))
	}
	id := *chainID
	restaurant.RestaurantChainID = &id
	return nil
}
