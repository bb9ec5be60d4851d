package persistence

import (
	"context"

	"github.com/NapatKulnarong/ReMeals/internal/domain/identity"
	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID finds a user by key
func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*identity.User, error) {
	return r.findOne(ctx, "user_id = ?", id)
}

// FindByEmail finds a user by exact email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByUsername finds a user by exact username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *GormUserRepository) findOne(ctx context.Context, cond string, arg any) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// ExistsByID checks whether a user key exists
func (r *GormUserRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, nil
	}
	return exists(r.db.WithContext(ctx), "users", "user_id = ?", id)
}

// ExistsByUsername checks for a taken username, ignoring excludeID
func (r *GormUserRepository) ExistsByUsername(ctx context.Context, username, excludeID string) (bool, error) {
	return exists(r.db.WithContext(ctx), "users", "username = ? AND user_id <> ?", username, excludeID)
}

// ExistsByEmail checks for a taken email, ignoring excludeID
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	return exists(r.db.WithContext(ctx), "users", "email = ? AND user_id <> ?", email, excludeID)
}

// Create inserts a new user
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Save updates an existing user
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
