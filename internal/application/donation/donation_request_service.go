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

// DonationRequestService handles donation request operations
type DonationRequestService struct {
	repos   shared.Repositories
	txScope shared.TransactionScope
	today   func() domainshared.Date
}

// NewDonationRequestService creates a new DonationRequestService
func NewDonationRequestService(repos shared.Repositories, txScope shared.TransactionScope) *DonationRequestService {
	return &DonationRequestService{repos: repos, txScope: txScope, today: domainshared.Today}
}

// Create records a request for an existing community
func (s *DonationRequestService) Create(ctx context.Context, actor domainshared.Actor, req DonationRequestPayload) (*DonationRequestResponse, error) {
	if !req.CommunityID.Present() || strings.TrimSpace(req.CommunityID.Value) == "" {
		return nil, domainshared.NewFieldError("community_id", shared.RequiredMessage)
	}
	communityID := strings.TrimSpace(req.CommunityID.Value)
	if err := s.checkCommunity(ctx, s.repos, communityID); err != nil {
		return nil, err
	}

	var createdBy *string
	if !actor.Anonymous() {
		exists, err := s.repos.Users().ExistsByID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		if exists {
			id := actor.UserID
			createdBy = &id
		}
	}

	request, err := donation.NewDonationRequest(req.changes(), communityID, createdBy)
	if err != nil {
		return nil, err
	}
	if err := s.repos.DonationRequests().Create(ctx, request); err != nil {
		return nil, err
	}
	response := ToDonationRequestResponse(request)
	return &response, nil
}

// GetByID retrieves a donation request
func (s *DonationRequestService) GetByID(ctx context.Context, id string) (*DonationRequestResponse, error) {
	request, err := s.repos.DonationRequests().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToDonationRequestResponse(request)
	return &response, nil
}

// List retrieves donation requests, newest first
func (s *DonationRequestService) List(ctx context.Context, page domainshared.Filter) ([]DonationRequestResponse, int64, error) {
	requests, err := s.repos.DonationRequests().FindAll(ctx, page)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repos.DonationRequests().Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return ToDonationRequestResponses(requests), total, nil
}

// Update applies a full or partial update. A community_name without a
// community_id is resolved to a community by name, creating it when missing.
func (s *DonationRequestService) Update(ctx context.Context, actor domainshared.Actor, id string, req DonationRequestPayload, partial bool) (*DonationRequestResponse, error) {
	if req.CommunityID.Set && (req.CommunityID.Null || strings.TrimSpace(req.CommunityID.Value) == "") {
		return nil, domainshared.NewFieldError("community_id", shared.RequiredMessage)
	}
	if !partial {
		if err := shared.MissingFields(
			shared.F("title", req.Title != nil),
			shared.F("recipient_address", req.RecipientAddress != nil),
			shared.F("expected_delivery", req.ExpectedDelivery != nil),
			shared.F("people_count", req.PeopleCount != nil),
		); err != nil {
			return nil, err
		}
	}

	var request *donation.DonationRequest
	err := s.txScope.Execute(ctx, func(repos shared.Repositories) error {
		var err error
		request, err = repos.DonationRequests().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.ensureManageable(ctx, repos, actor, request); err != nil {
			return err
		}
		if err := request.Apply(req.changes()); err != nil {
			return err
		}

		communityName := ""
		if req.CommunityName != nil {
			communityName = strings.TrimSpace(*req.CommunityName)
		}
		switch {
		case req.CommunityID.Present():
			communityID := strings.TrimSpace(req.CommunityID.Value)
			if err := s.checkCommunity(ctx, repos, communityID); err != nil {
				return err
			}
			request.CommunityID = &communityID
		case communityName != "":
			community, err := s.resolveCommunity(ctx, repos, communityName, request)
			if err != nil {
				return err
			}
			request.CommunityID = &community.CommunityID
		}

		return repos.DonationRequests().Save(ctx, request)
	})
	if err != nil {
		return nil, err
	}

	response := ToDonationRequestResponse(request)
	return &response, nil
}

// Delete removes a request and clears recipient links to it
func (s *DonationRequestService) Delete(ctx context.Context, actor domainshared.Actor, id string) error {
	return s.txScope.Execute(ctx, func(repos shared.Repositories) error {
		request, err := repos.DonationRequests().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.ensureManageable(ctx, repos, actor, request); err != nil {
			return err
		}
		return repos.DonationRequests().Delete(ctx, id)
	})
}

func (s *DonationRequestService) ensureManageable(ctx context.Context, repos shared.Repositories, actor domainshared.Actor, request *donation.DonationRequest) error {
	var own donation.RequestOwnership
	if request.CommunityID != nil {
		active, err := repos.Deliveries().ExistsActiveForCommunity(ctx, *request.CommunityID)
		if err != nil {
			return err
		}
		own.HasActiveDeliveries = active
	}

	if !actor.Anonymous() {
		user, err := repos.Users().FindByID(ctx, actor.UserID)
		switch {
		case err == nil:
			own.ActorPhone = user.Phone
		case !domainshared.IsNotFound(err):
			return err
		}
		recipient, err := repos.Roles().FindRecipient(ctx, actor.UserID)
		if err != nil {
			return err
		}
		if recipient != nil && recipient.DonationRequestID != nil && *recipient.DonationRequestID == request.RequestID {
			own.LinkedToRecipient = true
		}
	}
	return request.EnsureManageable(actor, own)
}

// resolveCommunity finds a community by name or creates one served by the first
// warehouse, creating the default warehouse when none exists.
func (s *DonationRequestService) resolveCommunity(ctx context.Context, repos shared.Repositories, name string, request *donation.DonationRequest) (*partner.Community, error) {
	community, err := repos.Communities().FindByName(ctx, name)
	if err == nil {
		return community, nil
	}
	if !domainshared.IsNotFound(err) {
		return nil, err
	}

	warehouse, err := repos.Warehouses().FindFirst(ctx)
	if err != nil {
		if !domainshared.IsNotFound(err) {
			return nil, err
		}
		warehouse = partner.NewDefaultWarehouse(s.today())
		if err := repos.Warehouses().Create(ctx, warehouse); err != nil {
			return nil, err
		}
	}

	ids, err := repos.Communities().ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	id := domainshared.NextPrefixedID(domainshared.PrefixCommunity, domainshared.ShortIDPadding, ids)
	community, err = partner.NewCommunity(id, name, request.RecipientAddress, time.Now(), request.PeopleCount, warehouse.WarehouseID)
	if err != nil {
		return nil, err
	}
	if err := repos.Communities().Create(ctx, community); err != nil {
		return nil, err
	}
	return community, nil
}

func (s *DonationRequestService) checkCommunity(ctx context.Context, repos shared.Repositories, id string) error {
	exists, err := repos.Communities().ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return invalidPK("community_id", id)
	}
	return nil
}
