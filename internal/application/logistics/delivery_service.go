package logistics

import (
	"context"
	"fmt"
	"slices"
	"time"

	appdonation "github.com/NapatKulnarong/ReMeals/internal/application/donation"
	"github.com/NapatKulnarong/ReMeals/internal/application/shared"
	"github.com/NapatKulnarong/ReMeals/internal/domain/logistics"
	domainshared "github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"go.uber.org/zap"
)

// Permission messages for delivery writes
const (
	MsgAdminRequired = "Admin privileges required."
	MsgNotPermitted  = "Not permitted."
	MsgNoFields      = "No updatable fields provided."
)

// DeliveryEvents receives delivery lifecycle notifications
type DeliveryEvents interface {
	DeliveryCreated(deliveryType string)
	DeliveryStatusChanged(status string)
}

// DeliveryService handles deliveries and the stock they move
type DeliveryService struct {
	repos   shared.Repositories
	txScope shared.TransactionScope
	impact  *appdonation.ImpactService
	events  DeliveryEvents
	logger  *zap.Logger
}

// NewDeliveryService creates a new DeliveryService
func NewDeliveryService(repos shared.Repositories, txScope shared.TransactionScope, impact *appdonation.ImpactService, logger *zap.Logger) *DeliveryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeliveryService{repos: repos, txScope: txScope, impact: impact, logger: logger}
}

// Observe registers the receiver of delivery lifecycle events
func (s *DeliveryService) Observe(events DeliveryEvents) {
	s.events = events
}

// List returns the deliveries visible to actor
func (s *DeliveryService) List(ctx context.Context, actor domainshared.Actor, page domainshared.Filter, extra DeliveryListFilter) ([]DeliveryResponse, int64, error) {
	scope, err := s.scopeFor(ctx, actor)
	if err != nil {
		return nil, 0, err
	}
	filter := logistics.DeliveryFilter{DeliveryType: extra.DeliveryType, Scope: scope}

	deliveries, err := s.repos.Deliveries().FindAll(ctx, filter, page)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repos.Deliveries().Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToDeliveryResponses(deliveries), total, nil
}

// GetByID returns a delivery when it is visible to actor
func (s *DeliveryService) GetByID(ctx context.Context, actor domainshared.Actor, id string) (*DeliveryResponse, error) {
	d, err := s.repos.Deliveries().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	scope, err := s.scopeFor(ctx, actor)
	if err != nil {
		return nil, err
	}
	visible, err := s.visible(ctx, scope, d)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, domainshared.ErrNotFound
	}
	response := ToDeliveryResponse(d)
	return &response, nil
}

func (s *DeliveryService) scopeFor(ctx context.Context, actor domainshared.Actor) (logistics.Scope, error) {
	if actor.IsAdmin || actor.IsDriver || actor.Anonymous() {
		return logistics.ScopeFor(actor, nil, nil), nil
	}
	restaurants, err := s.repos.Roles().DonorRestaurantIDs(ctx, actor.UserID)
	if err != nil {
		return logistics.Scope{}, err
	}
	communities, err := s.repos.Roles().RequestedCommunityIDs(ctx, actor.UserID)
	if err != nil {
		return logistics.Scope{}, err
	}
	return logistics.ScopeFor(actor, restaurants, communities), nil
}

func (s *DeliveryService) visible(ctx context.Context, scope logistics.Scope, d *logistics.Delivery) (bool, error) {
	switch {
	case scope.All:
		return true, nil
	case scope.None:
		return false, nil
	case scope.AssignedTo != "":
		return d.AssignedTo(scope.AssignedTo), nil
	}
	switch d.DeliveryType {
	case logistics.TypeDonation:
		if d.DonationID == nil || len(scope.DonorRestaurantIDs) == 0 {
			return false, nil
		}
		donation, err := s.repos.Donations().FindByID(ctx, *d.DonationID)
		if err != nil {
			if domainshared.IsNotFound(err) {
				return false, nil
			}
			return false, err
		}
		return slices.Contains(scope.DonorRestaurantIDs, donation.RestaurantID), nil
	case logistics.TypeDistribution:
		return d.CommunityID != nil && slices.Contains(scope.CommunityIDs, *d.CommunityID), nil
	}
	return false, nil
}

// Create schedules a delivery and takes its quantity from the food item
func (s *DeliveryService) Create(ctx context.Context, actor domainshared.Actor, req DeliveryPayload) (*DeliveryResponse, error) {
	if !actor.IsAdmin {
		return nil, domainshared.NewForbiddenError(MsgAdminRequired)
	}
	changes, err := req.changes(time.Time{})
	if err != nil {
		return nil, err
	}
	d, err := logistics.NewDelivery(changes)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos shared.Repositories) error {
		if err := checkReferences(ctx, repos, d); err != nil {
			return err
		}
		moves, err := logistics.Reconcile(nil, d)
		if err != nil {
			return err
		}
		if err := applyStockMoves(ctx, repos, moves); err != nil {
			return err
		}
		return repos.Deliveries().Create(ctx, d)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("delivery created",
		zap.String("delivery_id", d.DeliveryID),
		zap.String("delivery_type", string(d.DeliveryType)),
	)
	if s.events != nil {
		s.events.DeliveryCreated(string(d.DeliveryType))
	}
	response := ToDeliveryResponse(d)
	return &response, nil
}

// Update replaces a delivery. Stock is reconciled against the stored quantity
// and food item in the same transaction.
func (s *DeliveryService) Update(ctx context.Context, actor domainshared.Actor, id string, req DeliveryPayload, partial bool) (*DeliveryResponse, error) {
	if !actor.IsAdmin {
		return nil, domainshared.NewForbiddenError(MsgAdminRequired)
	}
	if !partial {
		if err := shared.MissingFields(
			shared.F("delivery_type", req.DeliveryType != nil),
			shared.F("pickup_time", req.PickupTime != nil),
			shared.F("dropoff_time", req.DropoffTime != nil),
			shared.F("pickup_location_type", req.PickupLocationType != nil),
			shared.F("dropoff_location_type", req.DropoffLocationType != nil),
		); err != nil {
			return nil, err
		}
	}

	var (
		d        *logistics.Delivery
		recorded int
	)
	err := s.txScope.Execute(ctx, func(repos shared.Repositories) error {
		var err error
		d, err = repos.Deliveries().FindByID(ctx, id)
		if err != nil {
			return err
		}
		before := *d

		changes, err := req.changes(d.PickupTime)
		if err != nil {
			return err
		}
		if err := d.Apply(changes); err != nil {
			return err
		}
		if err := checkReferences(ctx, repos, d); err != nil {
			return err
		}
		moves, err := logistics.Reconcile(&before, d)
		if err != nil {
			return err
		}
		if err := applyStockMoves(ctx, repos, moves); err != nil {
			return err
		}
		if err := repos.Deliveries().Save(ctx, d); err != nil {
			return err
		}
		recorded, err = s.recordDelivered(ctx, repos, d)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.afterRecorded(ctx, recorded)

	response := ToDeliveryResponse(d)
	return &response, nil
}

// UpdateStatus lets an admin or the assigned driver change status, notes and
// dropoff time. Other fields in the payload are ignored.
func (s *DeliveryService) UpdateStatus(ctx context.Context, actor domainshared.Actor, id string, req DeliveryPayload) (*DeliveryResponse, error) {
	var (
		d        *logistics.Delivery
		previous logistics.Status
		recorded int
	)
	err := s.txScope.Execute(ctx, func(repos shared.Repositories) error {
		var err error
		d, err = repos.Deliveries().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !actor.IsAdmin && !(actor.IsDriver && d.AssignedTo(actor.UserID)) {
			return domainshared.NewForbiddenError(MsgNotPermitted)
		}
		if !req.hasStatusFields() {
			return domainshared.NewValidationError(MsgNoFields)
		}

		changes, err := req.statusChanges().changes(d.PickupTime)
		if err != nil {
			return err
		}
		previous = d.Status
		if err := d.Apply(changes); err != nil {
			return err
		}
		if err := repos.Deliveries().Save(ctx, d); err != nil {
			return err
		}
		if previous != d.Status {
			s.logger.Info("delivery status changed",
				zap.String("delivery_id", d.DeliveryID),
				zap.String("from", string(previous)),
				zap.String("to", string(d.Status)),
			)
		}
		recorded, err = s.recordDelivered(ctx, repos, d)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.afterRecorded(ctx, recorded)
	if s.events != nil && previous != d.Status {
		s.events.DeliveryStatusChanged(string(d.Status))
	}

	response := ToDeliveryResponse(d)
	return &response, nil
}

// Delete removes a delivery. Stock taken by it is not returned.
func (s *DeliveryService) Delete(ctx context.Context, actor domainshared.Actor, id string) error {
	if !actor.IsAdmin {
		return domainshared.NewForbiddenError(MsgAdminRequired)
	}
	return s.repos.Deliveries().Delete(ctx, id)
}

// recordDelivered creates impact records for the distributed items of a
// delivered donation that have none yet
func (s *DeliveryService) recordDelivered(ctx context.Context, repos shared.Repositories, d *logistics.Delivery) (int, error) {
	if s.impact == nil || d.Status != logistics.StatusDelivered || d.DonationID == nil {
		return 0, nil
	}
	items, err := repos.FoodItems().FindDistributedWithoutImpact(ctx, *d.DonationID)
	if err != nil {
		return 0, err
	}
	return s.impact.Record(ctx, repos, items...)
}

func (s *DeliveryService) afterRecorded(ctx context.Context, n int) {
	if s.impact != nil {
		s.impact.Recorded(ctx, n)
	}
}

// applyStockMoves returns and takes food item quantities, rejecting requests
// larger than the stock available to them
func applyStockMoves(ctx context.Context, repos shared.Repositories, moves []logistics.StockMove) error {
	for _, move := range moves {
		item, err := repos.FoodItems().FindByID(ctx, move.FoodID)
		if err != nil {
			if domainshared.IsNotFound(err) {
				return missingObject("food_item", "food_id", move.FoodID)
			}
			return err
		}
		available := item.Quantity + move.Returned
		if move.Requested > available {
			return logistics.ExceedsError(move.Requested, available, item.Name)
		}
		item.Restore(move.Returned)
		item.Deduct(move.Requested)
		if err := repos.FoodItems().Save(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// checkReferences verifies that every referenced row exists
func checkReferences(ctx context.Context, repos shared.Repositories, d *logistics.Delivery) error {
	type check struct {
		field  string
		id     *string
		exists func(context.Context, string) (bool, error)
	}
	donationExists := func(ctx context.Context, id string) (bool, error) {
		_, err := repos.Donations().FindByID(ctx, id)
		if domainshared.IsNotFound(err) {
			return false, nil
		}
		return err == nil, err
	}
	checks := []check{
		{"warehouse_id", d.WarehouseID, repos.Warehouses().ExistsByID},
		{"user_id", d.UserID, repos.Users().ExistsByID},
		{"donation_id", d.DonationID, donationExists},
		{"community_id", d.CommunityID, repos.Communities().ExistsByID},
		{"food_item", d.FoodID, repos.FoodItems().ExistsByID},
	}
	for _, c := range checks {
		if c.id == nil {
			continue
		}
		ok, err := c.exists(ctx, *c.id)
		if err != nil {
			return err
		}
		if !ok {
			slug := c.field
			if slug == "food_item" {
				slug = "food_id"
			}
			return missingObject(c.field, slug, *c.id)
		}
	}
	return nil
}

func missingObject(field, slug, id string) error {
	return domainshared.NewFieldError(field, fmt.Sprintf("Object with %s=%s does not exist.", slug, id))
}
