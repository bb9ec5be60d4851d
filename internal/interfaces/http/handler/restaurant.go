package handler

import (
	partnerapp "github.com/NapatKulnarong/ReMeals/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// RestaurantHandler handles restaurant and restaurant chain endpoints
type RestaurantHandler struct {
	BaseHandler
	restaurantService *partnerapp.RestaurantService
	chainService      *partnerapp.ChainService
}

// NewRestaurantHandler creates a new RestaurantHandler
func NewRestaurantHandler(restaurantService *partnerapp.RestaurantService, chainService *partnerapp.ChainService) *RestaurantHandler {
	return &RestaurantHandler{restaurantService: restaurantService, chainService: chainService}
}

// List handles GET /restaurants. ?search matches name or branch.
func (h *RestaurantHandler) List(c *gin.Context) {
	page, ok := h.page(c)
	if !ok {
		return
	}
	var extra partnerapp.RestaurantListFilter
	if !h.bindQuery(c, &extra) {
		return
	}
	restaurants, total, err := h.restaurantService.List(c.Request.Context(), page, extra)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, restaurants, total, page)
}

// GetByID handles GET /restaurants/:id
func (h *RestaurantHandler) GetByID(c *gin.Context) {
	restaurant, err := h.restaurantService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, restaurant)
}

// Branches handles GET /restaurants/:id/branches
func (h *RestaurantHandler) Branches(c *gin.Context) {
	branches, err := h.restaurantService.Branches(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, branches)
}

// Create handles POST /restaurants
func (h *RestaurantHandler) Create(c *gin.Context) {
	var req partnerapp.CreateRestaurantRequest
	if !h.bindJSON(c, &req) {
		return
	}
	restaurant, err := h.restaurantService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, restaurant)
}

// Update handles PUT and PATCH /restaurants/:id
func (h *RestaurantHandler) Update(c *gin.Context) {
	var req partnerapp.UpdateRestaurantRequest
	if !h.bindJSON(c, &req) {
		return
	}
	restaurant, err := h.restaurantService.Update(c.Request.Context(), c.Param("id"), req, isPartial(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, restaurant)
}

// Delete handles DELETE /restaurants/:id
func (h *RestaurantHandler) Delete(c *gin.Context) {
	if err := h.restaurantService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListChains handles GET /restaurant-chains
func (h *RestaurantHandler) ListChains(c *gin.Context) {
	page, ok := h.page(c)
	if !ok {
		return
	}
	chains, total, err := h.chainService.List(c.Request.Context(), page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, chains, total, page)
}

// GetChain handles GET /restaurant-chains/:id
func (h *RestaurantHandler) GetChain(c *gin.Context) {
	chain, err := h.chainService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, chain)
}

// CreateChain handles POST /restaurant-chains
func (h *RestaurantHandler) CreateChain(c *gin.Context) {
	var req partnerapp.ChainRequest
	if !h.bindJSON(c, &req) {
		return
	}
	chain, err := h.chainService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, chain)
}

// UpdateChain handles PUT and PATCH /restaurant-chains/:id
func (h *RestaurantHandler) UpdateChain(c *gin.Context) {
	var req partnerapp.ChainRequest
	if !h.bindJSON(c, &req) {
		return
	}
	chain, err := h.chainService.Update(c.Request.Context(), c.Param("id"), req, isPartial(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, chain)
}

// DeleteChain handles DELETE /restaurant-chains/:id
func (h *RestaurantHandler) DeleteChain(c *gin.Context) {
	if err := h.chainService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
