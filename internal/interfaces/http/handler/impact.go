package handler

import (
	donationapp "github.com/NapatKulnarong/ReMeals/internal/application/donation"
	"github.com/gin-gonic/gin"
)

// ImpactHandler serves the read-only impact record endpoints
type ImpactHandler struct {
	BaseHandler
	impactService *donationapp.ImpactService
}

// NewImpactHandler creates a new ImpactHandler
func NewImpactHandler(impactService *donationapp.ImpactService) *ImpactHandler {
	return &ImpactHandler{impactService: impactService}
}

// List handles GET /impact
func (h *ImpactHandler) List(c *gin.Context) {
	page, ok := h.page(c)
	if !ok {
		return
	}
	records, total, err := h.impactService.List(c.Request.Context(), page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, records, total, page)
}

// GetByID handles GET /impact/:id
func (h *ImpactHandler) GetByID(c *gin.Context) {
	record, err := h.impactService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// Summary handles GET /impact/summary
func (h *ImpactHandler) Summary(c *gin.Context) {
	summary, err := h.impactService.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// ReadOnly answers every write verb with 405
func (h *ImpactHandler) ReadOnly(c *gin.Context) {
	h.MethodNotAllowed(c)
}
