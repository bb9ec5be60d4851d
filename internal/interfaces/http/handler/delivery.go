package handler

import (
	logisticsapp "github.com/NapatKulnarong/ReMeals/internal/application/logistics"
	"github.com/NapatKulnarong/ReMeals/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// DeliveryHandler handles delivery endpoints. Writes are admin only except
// PATCH, which assigned drivers may use for status updates.
type DeliveryHandler struct {
	BaseHandler
	deliveryService *logisticsapp.DeliveryService
}

// NewDeliveryHandler creates a new DeliveryHandler
func NewDeliveryHandler(deliveryService *logisticsapp.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveryService: deliveryService}
}

// List handles GET /deliveries, filtered by the caller's role
func (h *DeliveryHandler) List(c *gin.Context) {
	page, ok := h.page(c)
	if !ok {
		return
	}
	var extra logisticsapp.DeliveryListFilter
	if !h.bindQuery(c, &extra) {
		return
	}
	deliveries, total, err := h.deliveryService.List(c.Request.Context(), middleware.GetActor(c), page, extra)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, deliveries, total, page)
}

// GetByID handles GET /deliveries/:id
func (h *DeliveryHandler) GetByID(c *gin.Context) {
	delivery, err := h.deliveryService.GetByID(c.Request.Context(), middleware.GetActor(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, delivery)
}

// Create handles POST /deliveries
func (h *DeliveryHandler) Create(c *gin.Context) {
	var req logisticsapp.DeliveryPayload
	if !h.bindJSON(c, &req) {
		return
	}
	delivery, err := h.deliveryService.Create(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, delivery)
}

// Update handles PUT /deliveries/:id
func (h *DeliveryHandler) Update(c *gin.Context) {
	var req logisticsapp.DeliveryPayload
	if !h.bindJSON(c, &req) {
		return
	}
	delivery, err := h.deliveryService.Update(c.Request.Context(), middleware.GetActor(c), c.Param("id"), req, false)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, delivery)
}

// UpdateStatus handles PATCH /deliveries/:id
func (h *DeliveryHandler) UpdateStatus(c *gin.Context) {
	var req logisticsapp.DeliveryPayload
	if !h.bindJSON(c, &req) {
		return
	}
	delivery, err := h.deliveryService.UpdateStatus(c.Request.Context(), middleware.GetActor(c), c.Param("id"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, delivery)
}

// Delete handles DELETE /deliveries/:id
func (h *DeliveryHandler) Delete(c *gin.Context) {
	if err := h.deliveryService.Delete(c.Request.Context(), middleware.GetActor(c), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
