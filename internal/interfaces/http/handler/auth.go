package handler

import (
	"net/http"

	identityapp "github.com/NapatKulnarong/ReMeals/internal/application/identity"
	"github.com/NapatKulnarong/ReMeals/internal/interfaces/http/dto"
	"github.com/NapatKulnarong/ReMeals/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles signup, login and logout
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup handles POST /users/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req identityapp.SignupRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Login handles POST /users/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Logout handles POST /users/logout. The bearer token is revoked until it expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.BearerToken(c)
	if token == "" {
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication credentials were not provided.")
		return
	}
	resp, err := h.authService.Logout(c.Request.Context(), token)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
