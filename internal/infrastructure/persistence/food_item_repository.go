package persistence

import (
	"context"

	"github.com/NapatKulnarong/ReMeals/internal/domain/donation"
	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"gorm.io/gorm"
)

// GormFoodItemRepository implements FoodItemRepository using GORM
type GormFoodItemRepository struct {
	db *gorm.DB
}

// NewGormFoodItemRepository creates a new GormFoodItemRepository
func NewGormFoodItemRepository(db *gorm.DB) *GormFoodItemRepository {
	return &GormFoodItemRepository{db: db}
}

func (r *GormFoodItemRepository) FindByID(ctx context.Context, id string) (*donation.FoodItem, error) {
	var item donation.FoodItem
	if err := r.db.WithContext(ctx).First(&item, "food_id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (r *GormFoodItemRepository) FindAll(ctx context.Context, filter donation.FoodItemFilter, page shared.Filter) ([]donation.FoodItem, error) {
	items := []donation.FoodItem{}
	query := paginate(r.applyFilter(r.db.WithContext(ctx).Model(&donation.FoodItem{}), filter), page, FoodItemSortFields, "food_id")
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormFoodItemRepository) Count(ctx context.Context, filter donation.FoodItemFilter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&donation.FoodItem{}), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormFoodItemRepository) FindByDonationIDs(ctx context.Context, donationIDs []string) ([]donation.FoodItem, error) {
	items := []donation.FoodItem{}
	if len(donationIDs) == 0 {
		return items, nil
	}
	if err := r.db.WithContext(ctx).Where("donation_id IN ?", donationIDs).Order("food_id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormFoodItemRepository) FindDistributedWithoutImpact(ctx context.Context, donationID string) ([]donation.FoodItem, error) {
	var items []donation.FoodItem
	err := r.db.WithContext(ctx).
		Where("donation_id = ? AND is_distributed = ?", donationID, true).
		Where("food_id NOT IN (SELECT food_id FROM impact_record)").
		Order("food_id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormFoodItemRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	return exists(r.db.WithContext(ctx), "fooditem", "food_id = ?", id)
}

func (r *GormFoodItemRepository) Create(ctx context.Context, item *donation.FoodItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *GormFoodItemRepository) Save(ctx context.Context, item *donation.FoodItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *GormFoodItemRepository) MarkExpired(ctx context.Context, day shared.Date, donationIDs []string) (int64, error) {
	query := r.db.WithContext(ctx).Model(&donation.FoodItem{}).
		Where("is_expired = ? AND expire_date < ?", false, day)
	if donationIDs != nil {
		if len(donationIDs) == 0 {
			return 0, nil
		}
		query = query.Where("donation_id IN ?", donationIDs)
	}
	result := query.Update("is_expired", true)
	return result.RowsAffected, result.Error
}

// Delete removes the item and its impact record unless a delivery carries it
func (r *GormFoodItemRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		carried, err := exists(tx, "delivery", "food_id = ?", id)
		if err != nil {
			return err
		}
		if carried {
			return shared.NewProtectedError("Cannot delete food item because it is referenced by delivery records.")
		}
		if err := tx.Exec("DELETE FROM impact_record WHERE food_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&donation.FoodItem{}, "food_id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormFoodItemRepository) applyFilter(query *gorm.DB, filter donation.FoodItemFilter) *gorm.DB {
	if filter.DonationID != "" {
		query = query.Where("donation_id = ?", filter.DonationID)
	}
	if filter.IsExpired != nil {
		query = query.Where("is_expired = ?", *filter.IsExpired)
	}
	if filter.IsClaimed != nil {
		query = query.Where("is_claimed = ?", *filter.IsClaimed)
	}
	if filter.IsDistributed != nil {
		query = query.Where("is_distributed = ?", *filter.IsDistributed)
	}
	return query
}

var _ donation.FoodItemRepository = (*GormFoodItemRepository)(nil)
