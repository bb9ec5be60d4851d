package persistence

import (
	"context"

	"github.com/NapatKulnarong/ReMeals/internal/domain/partner"
	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"gorm.io/gorm"
)

// GormRestaurantChainRepository implements RestaurantChainRepository using GORM
type GormRestaurantChainRepository struct {
	db *gorm.DB
}

// NewGormRestaurantChainRepository creates a new GormRestaurantChainRepository
func NewGormRestaurantChainRepository(db *gorm.DB) *GormRestaurantChainRepository {
	return &GormRestaurantChainRepository{db: db}
}

func (r *GormRestaurantChainRepository) FindByID(ctx context.Context, id string) (*partner.RestaurantChain, error) {
	var c partner.RestaurantChain
	if err := r.db.WithContext(ctx).First(&c, "chain_id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *GormRestaurantChainRepository) FindByName(ctx context.Context, name string) (*partner.RestaurantChain, error) {
	var c partner.RestaurantChain
	err := r.db.WithContext(ctx).
		Where("LOWER(chain_name) = ?", normalizeName(name)).
		Order("chain_id ASC").
		First(&c).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *GormRestaurantChainRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.RestaurantChain, error) {
	var chains []partner.RestaurantChain
	query := paginate(r.applyFilter(r.db.WithContext(ctx).Model(&partner.RestaurantChain{}), filter), filter, ChainSortFields, "chain_id")
	if err := query.Find(&chains).Error; err != nil {
		return nil, err
	}
	return chains, nil
}

func (r *GormRestaurantChainRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&partner.RestaurantChain{}), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormRestaurantChainRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	return exists(r.db.WithContext(ctx), "restaurant_chain", "chain_id = ?", id)
}

// Create assigns the next CHA key when none was supplied
func (r *GormRestaurantChainRepository) Create(ctx context.Context, c *partner.RestaurantChain) error {
	db := r.db.WithContext(ctx)
	if c.ChainID == "" {
		id, err := nextKey(db, "restaurant_chain", "chain_id", shared.PrefixChain, shared.ShortIDPadding)
		if err != nil {
			return err
		}
		c.ChainID = id
	}
	return db.Create(c).Error
}

func (r *GormRestaurantChainRepository) Save(ctx context.Context, c *partner.RestaurantChain) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Delete removes the chain and clears references from restaurants and food items
func (r *GormRestaurantChainRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("restaurant").Where("restaurant_chain_id = ?", id).Update("restaurant_chain_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Table("fooditem").Where("chain_id = ?", id).Update("chain_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&partner.RestaurantChain{}, "chain_id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormRestaurantChainRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("LOWER(chain_name) LIKE ?"+likeEscape, likePattern(filter.Search))
	}
	return query
}

var _ partner.RestaurantChainRepository = (*GormRestaurantChainRepository)(nil)
