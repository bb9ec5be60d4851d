package donation

import (
	"context"
	"strings"
	"time"

	"github.com/NapatKulnarong/ReMeals/internal/application/shared"
	"github.com/NapatKulnarong/ReMeals/internal/domain/donation"
	"github.com/NapatKulnarong/ReMeals/internal/domain/partner"
	domainshared "github.com/NapatKulnarong/ReMeals/internal/domain/shared"
)

// DonationService handles donation operations
type DonationService struct {
	repos   shared.Repositories
	txScope shared.TransactionScope
}

// NewDonationService creates a new DonationService
func NewDonationService(repos shared.Repositories, txScope shared.TransactionScope) *DonationService {
	return &DonationService{repos: repos, txScope: txScope}
}

// Create records a donation. The restaurant is either referenced by key or
// resolved from the manual fields, creating the chain and restaurant as needed.
func (s *DonationService) Create(ctx context.Context, actor domainshared.Actor, req CreateDonationRequest) (*DonationResponse, error) {
	restaurantID := ""
	if req.Restaurant != nil {
		restaurantID = strings.TrimSpace(*req.Restaurant)
	}
	manualName := strings.TrimSpace(req.ManualRestaurantName)
	if restaurantID == "" && manualName == "" {
		return nil, domainshared.NewValidationError("Provide either an existing restaurant ID or a manual restaurant name.")
	}

	createdBy, err := s.existingUser(ctx, actor)
	if err != nil {
		return nil, err
	}

	var (
		created    *donation.Donation
		restaurant *partner.Restaurant
	)
	err = s.txScope.Execute(ctx, func(repos shared.Repositories) error {
		var findErr error
		if restaurantID != "" {
			restaurant, findErr = repos.Restaurants().FindByID(ctx, restaurantID)
			if domainshared.IsNotFound(findErr) {
				return invalidPK("restaurant", restaurantID)
			}
		} else {
			restaurant, findErr = resolveManualRestaurant(ctx, repos, req)
		}
		if findErr != nil {
			return findErr
		}

		created = donation.NewDonation(restaurant.RestaurantID, createdBy)
		if req.Status != nil {
			if err := created.SetStatus(donation.Status(*req.Status)); err != nil {
				return err
			}
		}
		return repos.Donations().Create(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	response := ToDonationResponse(created, restaurant)
	return &response, nil
}

// resolveManualRestaurant finds or creates the chain named by the donor, then
// finds or creates the restaurant for that name and branch.
func resolveManualRestaurant(ctx context.Context, repos shared.Repositories, req CreateDonationRequest) (*partner.Restaurant, error) {
	name := strings.TrimSpace(req.ManualRestaurantName)

	chain, err := repos.Chains().FindByName(ctx, name)
	if err != nil && !domainshared.IsNotFound(err) {
		return nil, err
	}
	if chain == nil {
		chain, err = partner.NewRestaurantChain("", name)
		if err != nil {
			return nil, err
		}
		if err := repos.Chains().Create(ctx, chain); err != nil {
			return nil, err
		}
	}

	branch := strings.TrimSpace(req.ManualBranchName)
	if branch == "" {
		branch = partner.DefaultBranchName
	}
	restaurant, err := repos.Restaurants().FindByNameAndBranch(ctx, name, branch)
	if err == nil {
		return restaurant, nil
	}
	if !domainshared.IsNotFound(err) {
		return nil, err
	}

	ids, err := repos.Restaurants().ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	id := domainshared.NextPrefixedID(domainshared.PrefixRestaurant, domainshared.ShortIDPadding, ids)
	restaurant = partner.NewManualRestaurant(id, name, req.ManualBranchName, req.ManualRestaurantAddress, &chain.ChainID)
	if err := repos.Restaurants().Create(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// GetByID retrieves a donation with its restaurant details
func (s *DonationService) GetByID(ctx context.Context, id string) (*DonationResponse, error) {
	d, err := s.repos.Donations().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	restaurant, err := s.restaurantOf(ctx, d.RestaurantID)
	if err != nil {
		return nil, err
	}
	response := ToDonationResponse(d, restaurant)
	return &response, nil
}

// List retrieves donations matching the query filters
func (s *DonationService) List(ctx context.Context, page domainshared.Filter, extra DonationListFilter) ([]DonationResponse, int64, error) {
	filter := BuildDonationFilter(extra)

	donations, err := s.repos.Donations().FindAll(ctx, filter, page)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repos.Donations().Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	restaurants := make(map[string]*partner.Restaurant)
	responses := make([]DonationResponse, 0, len(donations))
	for i := range donations {
		rid := donations[i].RestaurantID
		restaurant, seen := restaurants[rid]
		if !seen {
			restaurant, err = s.restaurantOf(ctx, rid)
			if err != nil {
				return nil, 0, err
			}
			restaurants[rid] = restaurant
		}
		responses = append(responses, ToDonationResponse(&donations[i], restaurant))
	}
	return responses, total, nil
}

// BuildDonationFilter maps list query parameters onto a repository filter.
// An unrecognised status yields an empty result.
func BuildDonationFilter(extra DonationListFilter) donation.DonationFilter {
	filter := donation.DonationFilter{RestaurantID: strings.TrimSpace(extra.RestaurantID)}
	if extra.Status != nil {
		status, ok := donation.ParseStatusFilter(strings.ToLower(strings.TrimSpace(*extra.Status)))
		if ok {
			filter.Statuses = []donation.Status{status}
		} else {
			filter.Empty = true
		}
	}
	filter.DateFrom = parseDateTimeParam(extra.DateFrom)
	filter.DateTo = parseDateTimeParam(extra.DateTo)
	return filter
}

// parseDateTimeParam accepts RFC3339 or a bare date, which means midnight UTC.
// Unparsable values are ignored.
func parseDateTimeParam(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// Update changes the status of a pending donation. The key and restaurant may
// be echoed back but not changed.
func (s *DonationService) Update(ctx context.Context, actor domainshared.Actor, id string, req UpdateDonationRequest, partial bool) (*DonationResponse, error) {
	d, err := s.repos.Donations().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureManageable(ctx, actor, d); err != nil {
		return nil, err
	}
	if req.Restaurant != nil && *req.Restaurant != d.RestaurantID {
		return nil, domainshared.NewValidationError("Cannot change restaurant of donation.")
	}
	if req.DonationID != nil && *req.DonationID != d.DonationID {
		return nil, domainshared.NewValidationError("Cannot change donation_id.")
	}
	if !partial {
		if err := shared.MissingFields(shared.F("restaurant", req.Restaurant != nil)); err != nil {
			return nil, err
		}
	}

	if req.Status != nil {
		if err := d.SetStatus(donation.Status(*req.Status)); err != nil {
			return nil, err
		}
	}
	if err := s.repos.Donations().Save(ctx, d); err != nil {
		return nil, err
	}

	restaurant, err := s.restaurantOf(ctx, d.RestaurantID)
	if err != nil {
		return nil, err
	}
	response := ToDonationResponse(d, restaurant)
	return &response, nil
}

// Delete removes a pending donation along with its food items
func (s *DonationService) Delete(ctx context.Context, actor domainshared.Actor, id string) error {
	d, err := s.repos.Donations().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ensureManageable(ctx, actor, d); err != nil {
		return err
	}
	return s.repos.Donations().Delete(ctx, id)
}

func (s *DonationService) ensureManageable(ctx context.Context, actor domainshared.Actor, d *donation.Donation) error {
	userExists, err := s.repos.Users().ExistsByID(ctx, actor.UserID)
	if err != nil {
		return err
	}
	return d.EnsureManageable(actor, userExists)
}

// existingUser returns the actor's id when it names a stored user
func (s *DonationService) existingUser(ctx context.Context, actor domainshared.Actor) (*string, error) {
	if actor.Anonymous() {
		return nil, nil
	}
	exists, err := s.repos.Users().ExistsByID(ctx, actor.UserID)
	if err != nil || !exists {
		return nil, err
	}
	id := actor.UserID
	return &id, nil
}

func (s *DonationService) restaurantOf(ctx context.Context, id string) (*partner.Restaurant, error) {
	restaurant, err := s.repos.Restaurants().FindByID(ctx, id)
	if err != nil {
		if domainshared.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return restaurant, nil
}
