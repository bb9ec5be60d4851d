package handler

import (
	identityapp "github.com/NapatKulnarong/ReMeals/internal/application/identity"
	"github.com/NapatKulnarong/ReMeals/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// UserHandler handles the profile and delivery staff endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Profile handles GET /users/profile
func (h *UserHandler) Profile(c *gin.Context) {
	profile, err := h.userService.Profile(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// UpdateProfile handles PUT and PATCH /users/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req identityapp.ProfileRequest
	if !h.bindJSON(c, &req) {
		return
	}
	profile, err := h.userService.UpdateProfile(c.Request.Context(), middleware.GetActor(c), req, isPartial(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// DeliveryStaff handles GET /users/delivery-staff
func (h *UserHandler) DeliveryStaff(c *gin.Context) {
	var filter identityapp.StaffListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	staff, err := h.userService.ListDeliveryStaff(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, staff)
}
