package handler

import (
	partnerapp "github.com/NapatKulnarong/ReMeals/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// WarehouseHandler handles warehouse endpoints
type WarehouseHandler struct {
	BaseHandler
	warehouseService *partnerapp.WarehouseService
}

// NewWarehouseHandler creates a new WarehouseHandler
func NewWarehouseHandler(warehouseService *partnerapp.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{warehouseService: warehouseService}
}

// List handles GET /warehouses
func (h *WarehouseHandler) List(c *gin.Context) {
	page, ok := h.page(c)
	if !ok {
		return
	}
	warehouses, total, err := h.warehouseService.List(c.Request.Context(), page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, warehouses, total, page)
}

// GetByID handles GET /warehouses/:id
func (h *WarehouseHandler) GetByID(c *gin.Context) {
	warehouse, err := h.warehouseService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, warehouse)
}

// Create handles POST /warehouses
func (h *WarehouseHandler) Create(c *gin.Context) {
	var req partnerapp.CreateWarehouseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	warehouse, err := h.warehouseService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, warehouse)
}

// Update handles PUT and PATCH /warehouses/:id
func (h *WarehouseHandler) Update(c *gin.Context) {
	var req partnerapp.UpdateWarehouseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	warehouse, err := h.warehouseService.Update(c.Request.Context(), c.Param("id"), req, isPartial(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, warehouse)
}

// Delete handles DELETE /warehouses/:id
func (h *WarehouseHandler) Delete(c *gin.Context) {
	if err := h.warehouseService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Inventory handles GET /warehouses/:id/inventory
func (h *WarehouseHandler) Inventory(c *gin.Context) {
	inventory, err := h.warehouseService.Inventory(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, inventory)
}
