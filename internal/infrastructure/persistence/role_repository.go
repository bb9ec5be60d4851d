package persistence

import (
	"context"

	"github.com/NapatKulnarong/ReMeals/internal/domain/identity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRoleRepository implements RoleRepository using GORM
type GormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository creates a new GormRoleRepository
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

func (r *GormRoleRepository) DonorRestaurantIDs(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	if userID == "" {
		return ids, nil
	}
	if err := r.db.WithContext(ctx).Model(&identity.Donor{}).Where("user_id = ?", userID).Pluck("restaurant_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// RequestedCommunityIDs collects the community of the linked request and the
// recipient's own community
func (r *GormRoleRepository) RequestedCommunityIDs(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	rec, err := r.FindRecipient(ctx, userID)
	if err != nil || rec == nil {
		return ids, err
	}
	seen := map[string]bool{}
	add := func(id *string) {
		if id != nil && *id != "" && !seen[*id] {
			seen[*id] = true
			ids = append(ids, *id)
		}
	}
	if rec.DonationRequestID != nil {
		var linked []string
		err := r.db.WithContext(ctx).Table("donation_request").
			Where("request_id = ? AND community_id IS NOT NULL", *rec.DonationRequestID).
			Pluck("community_id", &linked).Error
		if err != nil {
			return nil, err
		}
		for i := range linked {
			add(&linked[i])
		}
	}
	add(rec.CommunityID)
	return ids, nil
}

// FindRecipient returns nil without error when the user has no recipient profile
func (r *GormRoleRepository) FindRecipient(ctx context.Context, userID string) (*identity.Recipient, error) {
	if userID == "" {
		return nil, nil
	}
	var recipients []identity.Recipient
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Limit(1).Find(&recipients).Error; err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, nil
	}
	return &recipients[0], nil
}

func (r *GormRoleRepository) ListDeliveryStaff(ctx context.Context, onlyAvailable bool) ([]identity.StaffMember, error) {
	staff := []identity.StaffMember{}
	query := r.db.WithContext(ctx).Table("delivery_staff AS s").
		Select("u.user_id, u.username, u.fname, u.lname, u.phone, s.assigned_area, s.is_available").
		Joins("JOIN users AS u ON u.user_id = s.user_id").
		Order("u.username ASC")
	if onlyAvailable {
		query = query.Where("s.is_available = ?", true)
	}
	if err := query.Scan(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *GormRoleRepository) SaveDonor(ctx context.Context, donor *identity.Donor) error {
	return r.upsert(ctx, donor, "restaurant_id")
}

func (r *GormRoleRepository) SaveRecipient(ctx context.Context, recipient *identity.Recipient) error {
	return r.upsert(ctx, recipient, "address", "community_id", "donation_request_id")
}

func (r *GormRoleRepository) SaveDeliveryStaff(ctx context.Context, staff *identity.DeliveryStaff) error {
	return r.upsert(ctx, staff, "assigned_area", "is_available")
}

func (r *GormRoleRepository) SaveAdmin(ctx context.Context, admin *identity.Admin) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(admin).Error
}

// upsert keys role rows on user_id, which is unique per table
func (r *GormRoleRepository) upsert(ctx context.Context, row any, columns ...string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(columns),
		}).
		Create(row).Error
}

var _ identity.RoleRepository = (*GormRoleRepository)(nil)
