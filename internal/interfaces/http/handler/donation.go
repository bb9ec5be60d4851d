package handler

import (
	donationapp "github.com/NapatKulnarong/ReMeals/internal/application/donation"
	"github.com/NapatKulnarong/ReMeals/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// DonationHandler handles donation endpoints
type DonationHandler struct {
	BaseHandler
	donationService *donationapp.DonationService
}

// NewDonationHandler creates a new DonationHandler
func NewDonationHandler(donationService *donationapp.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// List handles GET /donations
func (h *DonationHandler) List(c *gin.Context) {
	page, ok := h.page(c)
	if !ok {
		return
	}
	var extra donationapp.DonationListFilter
	if !h.bindQuery(c, &extra) {
		return
	}
	donations, total, err := h.donationService.List(c.Request.Context(), page, extra)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, donations, total, page)
}

// GetByID handles GET /donations/:id
func (h *DonationHandler) GetByID(c *gin.Context) {
	donation, err := h.donationService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, donation)
}

// Create handles POST /donations
func (h *DonationHandler) Create(c *gin.Context) {
	var req donationapp.CreateDonationRequest
	if !h.bindJSON(c, &req) {
		return
	}
	donation, err := h.donationService.Create(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, donation)
}

// Update handles PUT and PATCH /donations/:id
func (h *DonationHandler) Update(c *gin.Context) {
	var req donationapp.UpdateDonationRequest
	if !h.bindJSON(c, &req) {
		return
	}
	donation, err := h.donationService.Update(c.Request.Context(), middleware.GetActor(c), c.Param("id"), req, isPartial(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, donation)
}

// Delete handles DELETE /donations/:id
func (h *DonationHandler) Delete(c *gin.Context) {
	if err := h.donationService.Delete(c.Request.Context(), middleware.GetActor(c), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
