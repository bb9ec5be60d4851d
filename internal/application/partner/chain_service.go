package partner

import (
	"context"

	"github.com/NapatKulnarong/ReMeals/internal/application/shared"
	"github.com/NapatKulnarong/ReMeals/internal/domain/partner"
	domainshared "github.com/NapatKulnarong/ReMeals/internal/domain/shared"
)

// ChainService handles restaurant chain operations
type ChainService struct {
	chainRepo partner.RestaurantChainRepository
}

// NewChainService creates a new ChainService
func NewChainService(chainRepo partner.RestaurantChainRepository) *ChainService {
	return &ChainService{chainRepo: chainRepo}
}

// Create creates a chain. An empty chain_id is assigned from the CHA sequence.
func (s *ChainService) Create(ctx context.Context, req ChainRequest) (*ChainResponse, error) {
	if err := shared.MissingFields(shared.F("chain_name", req.ChainName != nil)); err != nil {
		return nil, err
	}
	if req.ChainID != "" {
		exists, err := s.chainRepo.ExistsByID(ctx, req.ChainID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domainshared.NewFieldError("chain_id", "restaurant chain with this chain id already exists.")
		}
	}

	chain, err := partner.NewRestaurantChain(req.ChainID, *req.ChainName)
	if err != nil {
		return nil, err
	}
	if err := s.chainRepo.Create(ctx, chain); err != nil {
		return nil, err
	}
	response := ToChainResponse(chain)
	return &response, nil
}

// GetByID retrieves a chain by key
func (s *ChainService) GetByID(ctx context.Context, id string) (*ChainResponse, error) {
	chain, err := s.chainRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToChainResponse(chain)
	return &response, nil
}

// List retrieves chains
func (s *ChainService) List(ctx context.Context, filter domainshared.Filter) ([]ChainResponse, int64, error) {
	chains, err := s.chainRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.chainRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToChainResponses(chains), total, nil
}

// Update renames a chain. The key cannot change.
func (s *ChainService) Update(ctx context.Context, id string, req ChainRequest, partial bool) (*ChainResponse, error) {
	if !partial {
		if err := shared.MissingFields(shared.F("chain_name", req.ChainName != nil)); err != nil {
			return nil, err
		}
	}
	chain, err := s.chainRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.ChainID != "" && req.ChainID != chain.ChainID {
		return nil, domainshared.NewFieldError("chain_id", "Cannot change chain_id.")
	}
	if req.ChainName != nil {
		if err := chain.Rename(*req.ChainName); err != nil {
			return nil, err
		}
	}
	if err := s.chainRepo.Save(ctx, chain); err != nil {
		return nil, err
	}
	response := ToChainResponse(chain)
	return &response, nil
}

// Delete removes a chain and clears references to it
func (s *ChainService) Delete(ctx context.Context, id string) error {
	return s.chainRepo.Delete(ctx, id)
}
