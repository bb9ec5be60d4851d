package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/auth"
	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityRouter(t *testing.T, cfg IdentityConfig) (*gin.Engine, *shared.Actor) {
	var seen shared.Actor
	router := gin.New()
	router.Use(Identity(cfg))
	router.GET("/whoami", func(c *gin.Context) {
		seen = GetActor(c)
		// services read the actor from the request context
		assert.Equal(t, seen, shared.ActorFromContext(c.Request.Context()))
		c.Status(http.StatusOK)
	})
	return router, &seen
}

func testJWT() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "identity-test-secret-identity-test",
		Issuer:                "remeals-test",
		AccessTokenExpiration: time.Hour,
	})
}

func TestIdentity_Headers(t *testing.T) {
	router, seen := identityRouter(t, IdentityConfig{})

	tests := []struct {
		name    string
		headers map[string]string
		want    shared.Actor
	}{
		{"anonymous", nil, shared.Actor{}},
		{"trimmed user", map[string]string{HeaderUserID: "  U1 "}, shared.Actor{UserID: "U1"}},
		{"admin yes", map[string]string{HeaderUserID: "U1", HeaderUserIsAdmin: "YES"}, shared.Actor{UserID: "U1", IsAdmin: true}},
		{"driver 1", map[string]string{HeaderUserID: "D1", HeaderUserIsDelivery: "1"}, shared.Actor{UserID: "D1", IsDriver: true}},
		{"false-ish", map[string]string{HeaderUserID: "U1", HeaderUserIsAdmin: "no", HeaderUserIsDelivery: "0"}, shared.Actor{UserID: "U1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, *seen)
		})
	}
}

func TestIdentity_Bearer(t *testing.T) {
	jwtService := testJWT()
	blacklist := auth.NewInMemoryTokenBlacklist()
	router, seen := identityRouter(t, IdentityConfig{JWTService: jwtService, TokenBlacklist: blacklist})

	token, err := jwtService.Issue(auth.Subject{UserID: "ABC123", Username: "driver", IsDeliveryStaff: true})
	require.NoError(t, err)

	t.Run("token overrides headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(AuthHeaderKey, "Bearer "+token)
		req.Header.Set(HeaderUserID, "SOMEONE")
		req.Header.Set(HeaderUserIsAdmin, "true")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, shared.Actor{UserID: "ABC123", IsDriver: true}, *seen)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(AuthHeaderKey, "Bearer not-a-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_INVALID")
	})

	t.Run("revoked token", func(t *testing.T) {
		claims, err := jwtService.Validate(token)
		require.NoError(t, err)
		require.NoError(t, blacklist.Revoke(context.Background(), claims.ID, time.Hour))

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(AuthHeaderKey, "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "revoked")
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer ", ""},
		{"Basic abc", ""},
		{"Bearer abc.def", "abc.def"},
		{"bearer abc.def", "abc.def"},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			c.Request.Header.Set(AuthHeaderKey, tt.header)
		}
		assert.Equal(t, tt.want, BearerToken(c), tt.header)
	}
}
