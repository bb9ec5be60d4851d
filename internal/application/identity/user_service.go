package identity

import (
	"context"
	"strings"

	appshared "github.com/NapatKulnarong/ReMeals/internal/application/shared"
	"github.com/NapatKulnarong/ReMeals/internal/domain/identity"
	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"go.uber.org/zap"
)

// MsgNotAuthenticated is returned when a profile call carries no identity
const MsgNotAuthenticated = "Authentication credentials were not provided."

// UserService serves the caller's profile and the driver directory
type UserService struct {
	userRepo identity.UserRepository
	roleRepo identity.RoleRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo identity.UserRepository,
	roleRepo identity.RoleRepository,
	logger *zap.Logger,
) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		logger:   logger,
	}
}

// Profile returns the caller's account
func (s *UserService) Profile(ctx context.Context, actor shared.Actor) (*ProfileResponse, error) {
	user, err := s.current(ctx, actor)
	if err != nil {
		return nil, err
	}
	resp := ToProfileResponse(user)
	return &resp, nil
}

// UpdateProfile changes the caller's account. A full update requires the
// mandatory account fields; a partial one changes only what is supplied.
func (s *UserService) UpdateProfile(ctx context.Context, actor shared.Actor, req ProfileRequest, partial bool) (*ProfileResponse, error) {
	user, err := s.current(ctx, actor)
	if err != nil {
		return nil, err
	}

	if !partial {
		if err := appshared.MissingFields(
			appshared.F("username", req.Username != nil),
			appshared.F("fname", req.Fname != nil),
			appshared.F("lname", req.Lname != nil),
			appshared.F("phone", req.Phone != nil),
			appshared.F("email", req.Email != nil),
		); err != nil {
			return nil, err
		}
	}
	if req.empty() {
		return nil, shared.NewValidationError("No updatable fields provided.")
	}

	if err := s.checkUnique(ctx, user.UserID, req); err != nil {
		return nil, err
	}
	if err := user.ApplyProfile(req.changes()); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to update profile", zap.String("user_id", user.UserID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Profile updated", zap.String("user_id", user.UserID))
	resp := ToProfileResponse(user)
	return &resp, nil
}

// ListDeliveryStaff lists drivers with their username and availability
func (s *UserService) ListDeliveryStaff(ctx context.Context, filter StaffListFilter) ([]identity.StaffMember, error) {
	return s.roleRepo.ListDeliveryStaff(ctx, appshared.ParseBool(filter.Available))
}

func (s *UserService) current(ctx context.Context, actor shared.Actor) (*identity.User, error) {
	if actor.Anonymous() {
		return nil, shared.NewForbiddenError(MsgNotAuthenticated)
	}
	user, err := s.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewNotFoundError(MsgUserNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) checkUnique(ctx context.Context, userID string, req ProfileRequest) error {
	if req.Username != nil {
		taken, err := s.userRepo.ExistsByUsername(ctx, strings.TrimSpace(*req.Username), userID)
		if err != nil {
			return err
		}
		if taken {
			return shared.NewFieldError("username", "Username already exists")
		}
	}
	if req.Email != nil {
		taken, err := s.userRepo.ExistsByEmail(ctx, strings.TrimSpace(*req.Email), userID)
		if err != nil {
			return err
		}
		if taken {
			return shared.NewFieldError("email", "Email already exists")
		}
	}
	return nil
}
