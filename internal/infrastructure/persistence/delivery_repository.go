package persistence

import (
	"context"
	"strings"

	"github.com/NapatKulnarong/ReMeals/internal/domain/logistics"
	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRepository creates a new GormDeliveryRepository
func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

func (r *GormDeliveryRepository) FindByID(ctx context.Context, id string) (*logistics.Delivery, error) {
	var d logistics.Delivery
	if err := r.db.WithContext(ctx).First(&d, "delivery_id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &d, nil
}

func (r *GormDeliveryRepository) FindAll(ctx context.Context, filter logistics.DeliveryFilter, page shared.Filter) ([]logistics.Delivery, error) {
	deliveries := []logistics.Delivery{}
	if filter.Scope.None {
		return deliveries, nil
	}
	query := paginate(r.applyFilter(r.db.WithContext(ctx).Model(&logistics.Delivery{}), filter), page, DeliverySortFields, "delivery_id")
	if err := query.Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

func (r *GormDeliveryRepository) Count(ctx context.Context, filter logistics.DeliveryFilter) (int64, error) {
	if filter.Scope.None {
		return 0, nil
	}
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&logistics.Delivery{}), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormDeliveryRepository) FindDeliveredToWarehouse(ctx context.Context, warehouseID string) ([]logistics.Delivery, error) {
	var deliveries []logistics.Delivery
	err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND status = ? AND dropoff_location_type = ?",
			warehouseID, logistics.StatusDelivered, logistics.LocationWarehouse).
		Order("delivery_id ASC").
		Find(&deliveries).Error
	if err != nil {
		return nil, err
	}
	return deliveries, nil
}

func (r *GormDeliveryRepository) ExistsActiveForCommunity(ctx context.Context, communityID string) (bool, error) {
	return exists(r.db.WithContext(ctx), "delivery", "community_id = ? AND status IN ?",
		communityID, []logistics.Status{logistics.StatusInTransit, logistics.StatusDelivered})
}

// Create assigns the next DLV key
func (r *GormDeliveryRepository) Create(ctx context.Context, d *logistics.Delivery) error {
	db := r.db.WithContext(ctx)
	id, err := nextKey(db, "delivery", "delivery_id", shared.PrefixDelivery, shared.LongIDPadding)
	if err != nil {
		return err
	}
	d.DeliveryID = id
	return db.Create(d).Error
}

func (r *GormDeliveryRepository) Save(ctx context.Context, d *logistics.Delivery) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *GormDeliveryRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&logistics.Delivery{}, "delivery_id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormDeliveryRepository) applyFilter(query *gorm.DB, filter logistics.DeliveryFilter) *gorm.DB {
	if filter.DeliveryType != "" {
		query = query.Where("delivery_type = ?", filter.DeliveryType)
	}
	scope := filter.Scope
	switch {
	case scope.All:
	case scope.AssignedTo != "":
		query = query.Where("user_id = ?", scope.AssignedTo)
	default:
		var conds []string
		var args []any
		if len(scope.DonorRestaurantIDs) > 0 {
			conds = append(conds, "(delivery_type = ? AND donation_id IN (SELECT donation_id FROM donation WHERE restaurant_id IN ?))")
			args = append(args, logistics.TypeDonation, scope.DonorRestaurantIDs)
		}
		if len(scope.CommunityIDs) > 0 {
			conds = append(conds, "(delivery_type = ? AND community_id IN ?)")
			args = append(args, logistics.TypeDistribution, scope.CommunityIDs)
		}
		if len(conds) == 0 {
			return query.Where("1 = 0")
		}
		query = query.Where(strings.Join(conds, " OR "), args...)
	}
	return query
}

var _ logistics.DeliveryRepository = (*GormDeliveryRepository)(nil)
