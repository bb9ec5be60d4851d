package donation

import (
	"context"

	"github.com/NapatKulnarong/ReMeals/internal/application/shared"
	"github.com/NapatKulnarong/ReMeals/internal/domain/donation"
	domainshared "github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"go.uber.org/zap"
)

// SummaryCache stores the aggregated impact totals. Get returns nil on a miss.
type SummaryCache interface {
	Get(ctx context.Context) (*donation.ImpactSummary, error)
	Set(ctx context.Context, summary *donation.ImpactSummary) error
	Invalidate(ctx context.Context) error
}

// ImpactService exposes impact records and records new ones when food is distributed
type ImpactService struct {
	repos      shared.Repositories
	cache      SummaryCache
	logger     *zap.Logger
	onRecorded func(n int)
	onLookup   func(hit bool)
	today      func() domainshared.Date
}

// NewImpactService creates a new ImpactService. cache may be nil.
func NewImpactService(repos shared.Repositories, cache SummaryCache, logger *zap.Logger) *ImpactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImpactService{
		repos:  repos,
		cache:  cache,
		logger: logger,
		today:  domainshared.Today,
	}
}

// OnRecorded registers a callback invoked with the number of records created
func (s *ImpactService) OnRecorded(fn func(n int)) {
	s.onRecorded = fn
}

// OnSummaryLookup registers a callback invoked after each summary cache read
func (s *ImpactService) OnSummaryLookup(fn func(hit bool)) {
	s.onLookup = fn
}

// GetByID retrieves an impact record
func (s *ImpactService) GetByID(ctx context.Context, id string) (*ImpactRecordResponse, error) {
	record, err := s.repos.ImpactRecords().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToImpactRecordResponse(record)
	return &response, nil
}

// List retrieves impact records by key
func (s *ImpactService) List(ctx context.Context, page domainshared.Filter) ([]ImpactRecordResponse, int64, error) {
	records, err := s.repos.ImpactRecords().FindAll(ctx, page)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repos.ImpactRecords().Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return ToImpactRecordResponses(records), total, nil
}

// Summary returns the impact totals, served from the cache when possible.
// Cache failures fall through to the database.
func (s *ImpactService) Summary(ctx context.Context) (*donation.ImpactSummary, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("impact summary cache read failed", zap.Error(err))
		} else {
			if s.onLookup != nil {
				s.onLookup(cached != nil)
			}
			if cached != nil {
				return cached, nil
			}
		}
	}

	summary, err := s.repos.ImpactRecords().Summarize(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, summary); err != nil {
			s.logger.Warn("impact summary cache write failed", zap.Error(err))
		}
	}
	return summary, nil
}

// Record creates the impact record for each distributed item that lacks one,
// using repos so callers can run it inside their transaction. It returns the
// number of records created.
func (s *ImpactService) Record(ctx context.Context, repos shared.Repositories, items ...donation.FoodItem) (int, error) {
	created := 0
	for i := range items {
		item := &items[i]
		if !item.IsDistributed {
			continue
		}
		exists, err := repos.ImpactRecords().ExistsForFood(ctx, item.FoodID)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}
		if err := repos.ImpactRecords().Create(ctx, donation.NewImpactRecord(item, s.today())); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// Recorded must be called after the transaction that created n records commits
func (s *ImpactService) Recorded(ctx context.Context, n int) {
	if n == 0 {
		return
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("impact summary cache invalidation failed", zap.Error(err))
		}
	}
	if s.onRecorded != nil {
		s.onRecorded(n)
	}
	s.logger.Info("impact records created", zap.Int("count", n))
}
