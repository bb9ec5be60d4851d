package persistence

import (
	"context"

	"github.com/NapatKulnarong/ReMeals/internal/domain/partner"
	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"gorm.io/gorm"
)

// GormRestaurantRepository implements RestaurantRepository using GORM
type GormRestaurantRepository struct {
	db *gorm.DB
}

// NewGormRestaurantRepository creates a new GormRestaurantRepository
func NewGormRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

func (r *GormRestaurantRepository) FindByID(ctx context.Context, id string) (*partner.Restaurant, error) {
	var rest partner.Restaurant
	if err := r.db.WithContext(ctx).First(&rest, "restaurant_id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &rest, nil
}

func (r *GormRestaurantRepository) FindByNameAndBranch(ctx context.Context, name, branch string) (*partner.Restaurant, error) {
	var rest partner.Restaurant
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ? AND LOWER(branch_name) = ?", normalizeName(name), normalizeName(branch)).
		Order("restaurant_id ASC").
		First(&rest).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &rest, nil
}

func (r *GormRestaurantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Restaurant, error) {
	var restaurants []partner.Restaurant
	query := paginate(r.applyFilter(r.db.WithContext(ctx).Model(&partner.Restaurant{}), filter), filter, RestaurantSortFields, "restaurant_id")
	if err := query.Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *GormRestaurantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&partner.Restaurant{}), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormRestaurantRepository) FindBranches(ctx context.Context, id string) ([]partner.Restaurant, error) {
	var branches []partner.Restaurant
	if err := r.db.WithContext(ctx).Where("chain_id = ?", id).Order("restaurant_id ASC").Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

func (r *GormRestaurantRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	return exists(r.db.WithContext(ctx), "restaurant", "restaurant_id = ?", id)
}

func (r *GormRestaurantRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(&partner.Restaurant{}).Pluck("restaurant_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *GormRestaurantRepository) Create(ctx context.Context, rest *partner.Restaurant) error {
	return r.db.WithContext(ctx).Create(rest).Error
}

func (r *GormRestaurantRepository) Save(ctx context.Context, rest *partner.Restaurant) error {
	return r.db.WithContext(ctx).Save(rest).Error
}

// Delete removes the restaurant together with its donations and donor links.
// Branches pointing at it are detached.
func (r *GormRestaurantRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var donationIDs []string
		if err := tx.Table("donation").Where("restaurant_id = ?", id).Pluck("donation_id", &donationIDs).Error; err != nil {
			return err
		}
		if err := deleteDonations(tx, donationIDs); err != nil {
			return err
		}
		if err := tx.Table("restaurant").Where("chain_id = ?", id).Update("chain_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM donor WHERE restaurant_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&partner.Restaurant{}, "restaurant_id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormRestaurantRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where("LOWER(name) LIKE ?"+likeEscape+" OR LOWER(branch_name) LIKE ?"+likeEscape, p, p)
	}
	if isChain, ok := filter.Filters["is_chain"].(bool); ok {
		query = query.Where("is_chain = ?", isChain)
	}
	return query
}

var _ partner.RestaurantRepository = (*GormRestaurantRepository)(nil)
