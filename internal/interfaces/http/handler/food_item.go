package handler

import (
	donationapp "github.com/NapatKulnarong/ReMeals/internal/application/donation"
	"github.com/gin-gonic/gin"
)

// FoodItemHandler handles food item endpoints
type FoodItemHandler struct {
	BaseHandler
	foodItemService *donationapp.FoodItemService
}

// NewFoodItemHandler creates a new FoodItemHandler
func NewFoodItemHandler(foodItemService *donationapp.FoodItemService) *FoodItemHandler {
	return &FoodItemHandler{foodItemService: foodItemService}
}

// List handles GET /fooditems
func (h *FoodItemHandler) List(c *gin.Context) {
	page, ok := h.page(c)
	if !ok {
		return
	}
	var extra donationapp.FoodItemListFilter
	if !h.bindQuery(c, &extra) {
		return
	}
	items, total, err := h.foodItemService.List(c.Request.Context(), page, extra)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, page)
}

// GetByID handles GET /fooditems/:id
func (h *FoodItemHandler) GetByID(c *gin.Context) {
	item, err := h.foodItemService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Create handles POST /fooditems
func (h *FoodItemHandler) Create(c *gin.Context) {
	var req donationapp.CreateFoodItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	item, err := h.foodItemService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// Update handles PUT and PATCH /fooditems/:id. Both apply partially.
func (h *FoodItemHandler) Update(c *gin.Context) {
	var req donationapp.UpdateFoodItemRequest
	if !h.bindJSON(c, &req) {
		return
	}
	item, err := h.foodItemService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete handles DELETE /fooditems/:id
func (h *FoodItemHandler) Delete(c *gin.Context) {
	if err := h.foodItemService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
