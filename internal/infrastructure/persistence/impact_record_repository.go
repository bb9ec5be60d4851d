package persistence

import (
	"context"

	"github.com/NapatKulnarong/ReMeals/internal/domain/donation"
	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"gorm.io/gorm"
)

// GormImpactRecordRepository implements ImpactRecordRepository using GORM
type GormImpactRecordRepository struct {
	db *gorm.DB
}

// NewGormImpactRecordRepository creates a new GormImpactRecordRepository
func NewGormImpactRecordRepository(db *gorm.DB) *GormImpactRecordRepository {
	return &GormImpactRecordRepository{db: db}
}

func (r *GormImpactRecordRepository) FindByID(ctx context.Context, id string) (*donation.ImpactRecord, error) {
	var rec donation.ImpactRecord
	if err := r.db.WithContext(ctx).First(&rec, "impact_id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &rec, nil
}

func (r *GormImpactRecordRepository) FindAll(ctx context.Context, page shared.Filter) ([]donation.ImpactRecord, error) {
	records := []donation.ImpactRecord{}
	if err := paginate(r.db.WithContext(ctx).Model(&donation.ImpactRecord{}), page, ImpactSortFields, "impact_id").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *GormImpactRecordRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&donation.ImpactRecord{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormImpactRecordRepository) ExistsForFood(ctx context.Context, foodID string) (bool, error) {
	return exists(r.db.WithContext(ctx), "impact_record", "food_id = ?", foodID)
}

// Create assigns the next IMP key
func (r *GormImpactRecordRepository) Create(ctx context.Context, rec *donation.ImpactRecord) error {
	db := r.db.WithContext(ctx)
	id, err := nextKey(db, "impact_record", "impact_id", shared.PrefixImpact, shared.ShortIDPadding)
	if err != nil {
		return err
	}
	rec.ImpactID = id
	return db.Create(rec).Error
}

type impactTotals struct {
	Records       int64   `gorm:"column:records"`
	MealsSaved    float64 `gorm:"column:meals_saved"`
	WeightSavedKg float64 `gorm:"column:weight_saved_kg"`
	CO2ReducedKg  float64 `gorm:"column:co2_reduced_kg"`
}

func (r *GormImpactRecordRepository) Summarize(ctx context.Context) (*donation.ImpactSummary, error) {
	var totals impactTotals
	err := r.db.WithContext(ctx).Model(&donation.ImpactRecord{}).
		Select("COUNT(*) AS records, " +
			"COALESCE(SUM(meals_saved), 0) AS meals_saved, " +
			"COALESCE(SUM(weight_saved_kg), 0) AS weight_saved_kg, " +
			"COALESCE(SUM(co2_reduced_kg), 0) AS co2_reduced_kg").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &donation.ImpactSummary{
		Records:       totals.Records,
		MealsSaved:    totals.MealsSaved,
		WeightSavedKg: totals.WeightSavedKg,
		CO2ReducedKg:  totals.CO2ReducedKg,
	}, nil
}

var _ donation.ImpactRecordRepository = (*GormImpactRecordRepository)(nil)
