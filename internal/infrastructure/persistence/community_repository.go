package persistence

import (
	"context"

	"github.com/NapatKulnarong/ReMeals/internal/domain/partner"
	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCommunityRepository implements CommunityRepository using GORM
type GormCommunityRepository struct {
	db *gorm.DB
}

// NewGormCommunityRepository creates a new GormCommunityRepository
func NewGormCommunityRepository(db *gorm.DB) *GormCommunityRepository {
	return &GormCommunityRepository{db: db}
}

func (r *GormCommunityRepository) FindByID(ctx context.Context, id string) (*partner.Community, error) {
	var c partner.Community
	if err := r.db.WithContext(ctx).First(&c, "community_id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *GormCommunityRepository) FindByName(ctx context.Context, name string) (*partner.Community, error) {
	var c partner.Community
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", normalizeName(name)).
		Order("community_id ASC").
		First(&c).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *GormCommunityRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Community, error) {
	var communities []partner.Community
	query := paginate(r.applyFilter(r.db.WithContext(ctx).Model(&partner.Community{}), filter), filter, CommunitySortFields, "community_id")
	if err := query.Find(&communities).Error; err != nil {
		return nil, err
	}
	return communities, nil
}

func (r *GormCommunityRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&partner.Community{}), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormCommunityRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	return exists(r.db.WithContext(ctx), "community", "community_id = ?", id)
}

func (r *GormCommunityRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(&partner.Community{}).Pluck("community_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *GormCommunityRepository) Create(ctx context.Context, c *partner.Community) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *GormCommunityRepository) Save(ctx context.Context, c *partner.Community) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Delete removes a community unless deliveries point at it. Requests and
// recipient profiles that reference it are detached.
func (r *GormCommunityRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		referenced, err := exists(tx, "delivery", "community_id = ?", id)
		if err != nil {
			return err
		}
		if referenced {
			return shared.NewProtectedError("Cannot delete community because it is referenced by delivery records.")
		}
		if err := tx.Table("donation_request").Where("community_id = ?", id).Update("community_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Table("recipient").Where("community_id = ?", id).Update("community_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&partner.Community{}, "community_id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormCommunityRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?"+likeEscape, likePattern(filter.Search))
	}
	if wh, ok := filter.Filters["warehouse_id"].(string); ok && wh != "" {
		query = query.Where("warehouse_id = ?", wh)
	}
	return query
}

var _ partner.CommunityRepository = (*GormCommunityRepository)(nil)
