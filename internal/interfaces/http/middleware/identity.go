package middleware

import (
	"errors"
	"net/http"
	"strings"

	appshared "github.com/NapatKulnarong/ReMeals/internal/application/shared"
	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/auth"
	"github.com/NapatKulnarong/ReMeals/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Identity headers
const (
	HeaderUserID         = "X-USER-ID"
	HeaderUserIsAdmin    = "X-USER-IS-ADMIN"
	HeaderUserIsDelivery = "X-USER-IS-DELIVERY"
	AuthHeaderKey        = "Authorization"
	BearerPrefix         = "Bearer "
)

// Gin context keys set by Identity
const (
	ActorKey     = "actor"
	JWTClaimsKey = "jwt_claims"
)

// IdentityConfig holds configuration for the identity middleware
type IdentityConfig struct {
	// JWTService validates bearer tokens. Without it only headers are read.
	JWTService *auth.JWTService
	// TokenBlacklist rejects tokens revoked by logout. Optional.
	TokenBlacklist auth.TokenBlacklist
	Logger         *zap.Logger
}

// Identity resolves the caller for every request. The identity headers are
// read first; a valid bearer token then takes precedence. A bearer token that
// fails validation is rejected with 401. Requests without either continue as
// anonymous.
func Identity(cfg IdentityConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		actor := actorFromHeaders(c)

		if token := BearerToken(c); token != "" && cfg.JWTService != nil {
			claims, err := cfg.JWTService.Validate(token)
			if err != nil {
				abortUnauthorized(c, log, err)
				return
			}
			if cfg.TokenBlacklist != nil && claims.ID != "" {
				revoked, err := cfg.TokenBlacklist.IsRevoked(c.Request.Context(), claims.ID)
				if err != nil {
					// fail open when the blacklist store is unreachable
					log.Error("Failed to check token blacklist",
						zap.String("jti", claims.ID),
						zap.Error(err))
				} else if revoked {
					abortUnauthorized(c, log, auth.ErrTokenRevoked)
					return
				}
			}
			actor = claims.Actor()
			c.Set(JWTClaimsKey, claims)
		}

		c.Set(ActorKey, actor)
		c.Request = c.Request.WithContext(shared.WithActor(c.Request.Context(), actor))
		c.Next()
	}
}

func actorFromHeaders(c *gin.Context) shared.Actor {
	return shared.Actor{
		UserID:   strings.TrimSpace(c.GetHeader(HeaderUserID)),
		IsAdmin:  appshared.ParseBool(c.GetHeader(HeaderUserIsAdmin)),
		IsDriver: appshared.ParseBool(c.GetHeader(HeaderUserIsDelivery)),
	}
}

// BearerToken returns the token from the Authorization header, or ""
func BearerToken(c *gin.Context) string {
	header := c.GetHeader(AuthHeaderKey)
	if len(header) <= len(BearerPrefix) || !strings.EqualFold(header[:len(BearerPrefix)], BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(BearerPrefix):])
}

// GetActor returns the caller resolved by Identity, or an anonymous actor
func GetActor(c *gin.Context) shared.Actor {
	if v, ok := c.Get(ActorKey); ok {
		if actor, ok := v.(shared.Actor); ok {
			return actor
		}
	}
	return shared.ActorFromContext(c.Request.Context())
}

// GetClaims returns the validated token claims, if a bearer token was sent
func GetClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(JWTClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}

func abortUnauthorized(c *gin.Context, log *zap.Logger, err error) {
	code := dto.ErrCodeTokenInvalid
	message := "Invalid token"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code = dto.ErrCodeTokenExpired
		message = "Token has expired"
	case errors.Is(err, auth.ErrTokenRevoked):
		message = "Token has been revoked"
	}

	log.Warn("Bearer authentication failed",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path))
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}
