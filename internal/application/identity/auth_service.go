package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/NapatKulnarong/ReMeals/internal/domain/identity"
	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// Messages returned by the account endpoints
const (
	MsgSignupSuccessful = "Signup successful"
	MsgLoginSuccess     = "Login success"
	MsgLogoutSuccess    = "Logout successful"
	MsgUserNotFound     = "User not found"
	MsgInvalidPassword  = "Invalid password"
)

// AuthService handles registration and login
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service. blacklist may be nil,
// in which case logout is a no-op.
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Signup registers a new account
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*MessageResponse, error) {
	fields := req.fields()
	if err := fields.CheckRequired(); err != nil {
		return nil, err
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, fields.Username, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewFieldError("username", "Username already exists")
	}
	taken, err = s.userRepo.ExistsByEmail(ctx, fields.Email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewFieldError("email", "Email already exists")
	}

	user, err := identity.NewUser(fields)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.String("username", user.Username), zap.Error(err))
		return nil, err
	}

	s.logger.Info("User signed up",
		zap.String("user_id", user.UserID),
		zap.String("username", user.Username))
	return &MessageResponse{Message: MsgSignupSuccessful}, nil
}

// Login verifies credentials and issues a bearer token. The identifier is
// matched against email first, then username.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	identifier := strings.TrimSpace(req.Identifier)
	s.logger.Info("Login attempt", zap.String("identifier", identifier))

	user, err := s.lookup(ctx, identifier)
	if err != nil {
		if shared.IsNotFound(err) {
			s.logger.Warn("User not found during login", zap.String("identifier", identifier))
			return nil, shared.NewNotFoundError(MsgUserNotFound)
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.UserID))
		return nil, shared.NewValidationError(MsgInvalidPassword)
	}

	token, err := s.jwtService.Issue(auth.Subject{
		UserID:          user.UserID,
		Username:        user.Username,
		IsAdmin:         user.IsAdmin,
		IsDeliveryStaff: user.IsDeliveryStaff,
	})
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err))
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info("User logged in successfully",
		zap.String("username", user.Username),
		zap.String("user_id", user.UserID))

	return &LoginResponse{
		Message:         MsgLoginSuccess,
		Username:        user.Username,
		Email:           user.Email,
		UserID:          user.UserID,
		IsAdmin:         user.IsAdmin,
		IsDeliveryStaff: user.IsDeliveryStaff,
		Token:           token,
	}, nil
}

func (s *AuthService) lookup(ctx context.Context, identifier string) (*identity.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, identifier)
	if err == nil || !shared.IsNotFound(err) {
		return user, err
	}
	return s.userRepo.FindByUsername(ctx, identifier)
}

// Logout revokes the presented token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, token string) (*MessageResponse, error) {
	claims, err := s.jwtService.Validate(token)
	if err != nil {
		return nil, shared.NewDomainError(shared.CodeUnauthorized, "Invalid or expired token.")
	}
	if s.blacklist != nil {
		if err := s.blacklist.Revoke(ctx, claims.ID, claims.RemainingTTL()); err != nil {
			s.logger.Error("Failed to revoke token", zap.String("user_id", claims.UserID), zap.Error(err))
			return nil, err
		}
	}
	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return &MessageResponse{Message: MsgLogoutSuccess}, nil
}
