package persistence

import (
	"context"

	"github.com/NapatKulnarong/ReMeals/internal/domain/donation"
	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDonationRepository implements DonationRepository using GORM
type GormDonationRepository struct {
	db *gorm.DB
}

// NewGormDonationRepository creates a new GormDonationRepository
func NewGormDonationRepository(db *gorm.DB) *GormDonationRepository {
	return &GormDonationRepository{db: db}
}

func (r *GormDonationRepository) FindByID(ctx context.Context, id string) (*donation.Donation, error) {
	var d donation.Donation
	if err := r.db.WithContext(ctx).First(&d, "donation_id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &d, nil
}

func (r *GormDonationRepository) FindAll(ctx context.Context, filter donation.DonationFilter, page shared.Filter) ([]donation.Donation, error) {
	donations := []donation.Donation{}
	if filter.Empty {
		return donations, nil
	}
	query := paginate(r.applyFilter(r.db.WithContext(ctx).Model(&donation.Donation{}), filter), page, DonationSortFields, "donation_id")
	if err := query.Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *GormDonationRepository) Count(ctx context.Context, filter donation.DonationFilter) (int64, error) {
	if filter.Empty {
		return 0, nil
	}
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&donation.Donation{}), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create assigns the next DON key
func (r *GormDonationRepository) Create(ctx context.Context, d *donation.Donation) error {
	db := r.db.WithContext(ctx)
	id, err := nextKey(db, "donation", "donation_id", shared.PrefixDonation, shared.ShortIDPadding)
	if err != nil {
		return err
	}
	d.DonationID = id
	return db.Create(d).Error
}

func (r *GormDonationRepository) Save(ctx context.Context, d *donation.Donation) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *GormDonationRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := exists(tx, "donation", "donation_id = ?", id)
		if err != nil {
			return err
		}
		if !found {
			return shared.ErrNotFound
		}
		return deleteDonations(tx, []string{id})
	})
}

func (r *GormDonationRepository) applyFilter(query *gorm.DB, filter donation.DonationFilter) *gorm.DB {
	if filter.RestaurantID != "" {
		query = query.Where("restaurant_id = ?", filter.RestaurantID)
	}
	if filter.RestaurantIDs != nil {
		query = query.Where("restaurant_id IN ?", nonEmpty(filter.RestaurantIDs))
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.DateFrom != nil {
		query = query.Where("donated_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("donated_at <= ?", *filter.DateTo)
	}
	return query
}

// deleteDonations removes donations with their food items and impact records,
// and detaches deliveries. Items still carried by a delivery block the delete.
func deleteDonations(tx *gorm.DB, donationIDs []string) error {
	if len(donationIDs) == 0 {
		return nil
	}
	var foodIDs []string
	if err := tx.Table("fooditem").Where("donation_id IN ?", donationIDs).Pluck("food_id", &foodIDs).Error; err != nil {
		return err
	}
	if len(foodIDs) > 0 {
		carried, err := exists(tx, "delivery", "food_id IN ?", foodIDs)
		if err != nil {
			return err
		}
		if carried {
			return shared.NewProtectedError("Cannot delete donation because its food items are referenced by delivery records.")
		}
		if err := tx.Exec("DELETE FROM impact_record WHERE food_id IN ?", foodIDs).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM fooditem WHERE donation_id IN ?", donationIDs).Error; err != nil {
			return err
		}
	}
	if err := tx.Table("delivery").Where("donation_id IN ?", donationIDs).Update("donation_id", nil).Error; err != nil {
		return err
	}
	return tx.Exec("DELETE FROM donation WHERE donation_id IN ?", donationIDs).Error
}

// nonEmpty keeps IN clauses valid for empty lists
func nonEmpty(ids []string) []string {
	if len(ids) == 0 {
		return []string{""}
	}
	return ids
}

var _ donation.DonationRepository = (*GormDonationRepository)(nil)
