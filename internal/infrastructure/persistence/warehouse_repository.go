package persistence

import (
	"context"

	"github.com/NapatKulnarong/ReMeals/internal/domain/partner"
	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"gorm.io/gorm"
)

// GormWarehouseRepository implements WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// FindByID finds a warehouse by its key
func (r *GormWarehouseRepository) FindByID(ctx context.Context, id string) (*partner.Warehouse, error) {
	var w partner.Warehouse
	if err := r.db.WithContext(ctx).First(&w, "warehouse_id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &w, nil
}

// FindFirst returns the warehouse with the lowest key
func (r *GormWarehouseRepository) FindFirst(ctx context.Context) (*partner.Warehouse, error) {
	var w partner.Warehouse
	if err := r.db.WithContext(ctx).Order("warehouse_id ASC").First(&w).Error; err != nil {
		return nil, notFound(err)
	}
	return &w, nil
}

// FindAll finds all warehouses matching the filter
func (r *GormWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Warehouse, error) {
	var warehouses []partner.Warehouse
	query := paginate(r.applyFilter(r.db.WithContext(ctx).Model(&partner.Warehouse{}), filter), filter, WarehouseSortFields, "warehouse_id")
	if err := query.Find(&warehouses).Error; err != nil {
		return nil, err
	}
	return warehouses, nil
}

// Count counts warehouses matching the filter
func (r *GormWarehouseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&partner.Warehouse{}), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByID checks whether the key is taken
func (r *GormWarehouseRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	return exists(r.db.WithContext(ctx), "warehouse", "warehouse_id = ?", id)
}

// Create inserts a new warehouse
func (r *GormWarehouseRepository) Create(ctx context.Context, w *partner.Warehouse) error {
	return r.db.WithContext(ctx).Create(w).Error
}

// Save updates an existing warehouse
func (r *GormWarehouseRepository) Save(ctx context.Context, w *partner.Warehouse) error {
	return r.db.WithContext(ctx).Save(w).Error
}

// Delete removes a warehouse unless communities or deliveries still point at it
func (r *GormWarehouseRepository) Delete(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)
	for _, table := range []string{"community", "delivery"} {
		referenced, err := exists(db, table, "warehouse_id = ?", id)
		if err != nil {
			return err
		}
		if referenced {
			return shared.NewProtectedError("Cannot delete warehouse because it is referenced by " + table + " records.")
		}
	}
	result := db.Delete(&partner.Warehouse{}, "warehouse_id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormWarehouseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("LOWER(address) LIKE ?"+likeEscape, likePattern(filter.Search))
	}
	return query
}

var _ partner.WarehouseRepository = (*GormWarehouseRepository)(nil)
