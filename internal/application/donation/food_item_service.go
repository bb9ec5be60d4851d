package donation

import (
	"context"
	"fmt"
	"strings"

	"github.com/NapatKulnarong/ReMeals/internal/application/shared"
	"github.com/NapatKulnarong/ReMeals/internal/domain/donation"
	domainshared "github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"go.uber.org/zap"
)

// FoodItemService handles food item operations
type FoodItemService struct {
	repos   shared.Repositories
	txScope shared.TransactionScope
	impact  *ImpactService
	logger  *zap.Logger
	today   func() domainshared.Date
}

// NewFoodItemService creates a new FoodItemService
func NewFoodItemService(repos shared.Repositories, txScope shared.TransactionScope, impact *ImpactService, logger *zap.Logger) *FoodItemService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FoodItemService{
		repos:   repos,
		txScope: txScope,
		impact:  impact,
		logger:  logger,
		today:   domainshared.Today,
	}
}

// Create adds a food item to a donation. Without a chain_id the item inherits
// the chain of the donating restaurant.
func (s *FoodItemService) Create(ctx context.Context, req CreateFoodItemRequest) (*FoodItemResponse, error) {
	item, err := donation.NewFoodItem(req.FoodID, donation.FoodItemChanges{
		Name:          req.Name,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		ExpireDate:    req.ExpireDate,
		IsExpired:     req.IsExpired,
		IsClaimed:     req.IsClaimed,
		IsDistributed: req.IsDistributed,
		DonationID:    req.Donation,
		ChainID:       req.ChainID,
	}, s.today())
	if err != nil {
		return nil, err
	}

	exists, err := s.repos.FoodItems().ExistsByID(ctx, item.FoodID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainshared.NewFieldError("food_id", "food item with this food id already exists.")
	}

	d, err := s.checkDonation(ctx, item.DonationID)
	if err != nil {
		return nil, err
	}
	if item.ChainID != nil {
		if err := s.checkChain(ctx, *item.ChainID); err != nil {
			return nil, err
		}
	} else if req.ChainID == nil {
		restaurant, err := s.repos.Restaurants().FindByID(ctx, d.RestaurantID)
		if err != nil && !domainshared.IsNotFound(err) {
			return nil, err
		}
		if restaurant != nil {
			item.ChainID = restaurant.RestaurantChainID
		}
	}

	if err := s.repos.FoodItems().Create(ctx, item); err != nil {
		return nil, err
	}
	response := ToFoodItemResponse(item)
	return &response, nil
}

// GetByID retrieves a food item by its stored key
func (s *FoodItemService) GetByID(ctx context.Context, id string) (*FoodItemResponse, error) {
	item, err := s.repos.FoodItems().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToFoodItemResponse(item)
	return &response, nil
}

// List retrieves food items matching the query filters
func (s *FoodItemService) List(ctx context.Context, page domainshared.Filter, extra FoodItemListFilter) ([]FoodItemResponse, int64, error) {
	filter := donation.FoodItemFilter{
		DonationID:    strings.TrimSpace(extra.Donation),
		IsExpired:     boolParam(extra.IsExpired),
		IsClaimed:     boolParam(extra.IsClaimed),
		IsDistributed: boolParam(extra.IsDistributed),
	}
	items, err := s.repos.FoodItems().FindAll(ctx, filter, page)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repos.FoodItems().Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToFoodItemResponses(items), total, nil
}

func boolParam(raw *string) *bool {
	if raw == nil {
		return nil
	}
	v := shared.ParseBool(*raw)
	return &v
}

// Update applies a partial update. Distributing an item claims it when the
// request does not mention the claim, and the first distribution records its
// impact in the same transaction.
func (s *FoodItemService) Update(ctx context.Context, id string, req UpdateFoodItemRequest) (*FoodItemResponse, error) {
	var (
		item     *donation.FoodItem
		recorded int
	)
	err := s.txScope.Execute(ctx, func(repos shared.Repositories) error {
		var err error
		item, err = repos.FoodItems().FindByID(ctx, id)
		if err != nil {
			return err
		}

		changes := req.changes()
		item.AutoClaim(&changes)
		becameDistributed, err := item.Apply(changes, s.today())
		if err != nil {
			return err
		}
		if req.Donation != nil {
			if _, err := repos.Donations().FindByID(ctx, item.DonationID); err != nil {
				if domainshared.IsNotFound(err) {
					return invalidPK("donation", item.DonationID)
				}
				return err
			}
		}
		if req.ChainID != nil && item.ChainID != nil {
			exists, err := repos.Chains().ExistsByID(ctx, *item.ChainID)
			if err != nil {
				return err
			}
			if !exists {
				return invalidPK("chain_id", *item.ChainID)
			}
		}
		if err := repos.FoodItems().Save(ctx, item); err != nil {
			return err
		}

		if becameDistributed && s.impact != nil {
			recorded, err = s.impact.Record(ctx, repos, *item)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.impact != nil {
		s.impact.Recorded(ctx, recorded)
	}

	response := ToFoodItemResponse(item)
	return &response, nil
}

// Delete removes a food item that no delivery references
func (s *FoodItemService) Delete(ctx context.Context, id string) error {
	return s.repos.FoodItems().Delete(ctx, id)
}

// SweepExpired flags every unexpired item whose expiry date has passed
func (s *FoodItemService) SweepExpired(ctx context.Context) (int64, error) {
	n, err := s.repos.FoodItems().MarkExpired(ctx, s.today(), nil)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("expired food items flagged", zap.Int64("count", n))
	}
	return n, nil
}

func (s *FoodItemService) checkDonation(ctx context.Context, id string) (*donation.Donation, error) {
	d, err := s.repos.Donations().FindByID(ctx, id)
	if err != nil {
		if domainshared.IsNotFound(err) {
			return nil, invalidPK("donation", id)
		}
		return nil, err
	}
	return d, nil
}

func (s *FoodItemService) checkChain(ctx context.Context, id string) error {
	exists, err := s.repos.Chains().ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return invalidPK("chain_id", id)
	}
	return nil
}

func invalidPK(field, id string) error {
	return domainshared.NewFieldError(field, fmt.Sprintf("Invalid pk \"%s\" - object does not exist.", id))
}
