package persistence

import (
	"context"

	"github.com/NapatKulnarong/ReMeals/internal/domain/donation"
	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"gorm.io/gorm"
)

// GormDonationRequestRepository implements DonationRequestRepository using GORM
type GormDonationRequestRepository struct {
	db *gorm.DB
}

// NewGormDonationRequestRepository creates a new GormDonationRequestRepository
func NewGormDonationRequestRepository(db *gorm.DB) *GormDonationRequestRepository {
	return &GormDonationRequestRepository{db: db}
}

func (r *GormDonationRequestRepository) FindByID(ctx context.Context, id string) (*donation.DonationRequest, error) {
	var req donation.DonationRequest
	if err := r.db.WithContext(ctx).First(&req, "request_id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &req, nil
}

// FindAll lists requests newest first
func (r *GormDonationRequestRepository) FindAll(ctx context.Context, page shared.Filter) ([]donation.DonationRequest, error) {
	requests := []donation.DonationRequest{}
	query := r.db.WithContext(ctx).Order("created_at DESC").Order("request_id DESC")
	if page.PageSize > 0 {
		query = query.Offset(page.Offset()).Limit(page.PageSize)
	}
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *GormDonationRequestRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&donation.DonationRequest{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create assigns the next REQ key
func (r *GormDonationRequestRepository) Create(ctx context.Context, req *donation.DonationRequest) error {
	db := r.db.WithContext(ctx)
	id, err := nextKey(db, "donation_request", "request_id", shared.PrefixDonationRequest, shared.LongIDPadding)
	if err != nil {
		return err
	}
	req.RequestID = id
	return db.Create(req).Error
}

func (r *GormDonationRequestRepository) Save(ctx context.Context, req *donation.DonationRequest) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *GormDonationRequestRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("recipient").Where("donation_request_id = ?", id).Update("donation_request_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&donation.DonationRequest{}, "request_id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

var _ donation.DonationRequestRepository = (*GormDonationRequestRepository)(nil)
