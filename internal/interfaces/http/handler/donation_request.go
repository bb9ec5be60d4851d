package handler

import (
	donationapp "github.com/NapatKulnarong/ReMeals/internal/application/donation"
	"github.com/NapatKulnarong/ReMeals/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// DonationRequestHandler handles community donation request endpoints
type DonationRequestHandler struct {
	BaseHandler
	requestService *donationapp.DonationRequestService
}

// NewDonationRequestHandler creates a new DonationRequestHandler
func NewDonationRequestHandler(requestService *donationapp.DonationRequestService) *DonationRequestHandler {
	return &DonationRequestHandler{requestService: requestService}
}

// List handles GET /donation-requests, newest first
func (h *DonationRequestHandler) List(c *gin.Context) {
	page, ok := h.page(c)
	if !ok {
		return
	}
	requests, total, err := h.requestService.List(c.Request.Context(), page)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, requests, total, page)
}

// GetByID handles GET /donation-requests/:id
func (h *DonationRequestHandler) GetByID(c *gin.Context) {
	request, err := h.requestService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, request)
}

// Create handles POST /donation-requests
func (h *DonationRequestHandler) Create(c *gin.Context) {
	var req donationapp.DonationRequestPayload
	if !h.bindJSON(c, &req) {
		return
	}
	request, err := h.requestService.Create(c.Request.Context(), middleware.GetActor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, request)
}

// Update handles PUT and PATCH /donation-requests/:id
func (h *DonationRequestHandler) Update(c *gin.Context) {
	var req donationapp.DonationRequestPayload
	if !h.bindJSON(c, &req) {
		return
	}
	request, err := h.requestService.Update(c.Request.Context(), middleware.GetActor(c), c.Param("id"), req, isPartial(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, request)
}

// Delete handles DELETE /donation-requests/:id
func (h *DonationRequestHandler) Delete(c *gin.Context) {
	if err := h.requestService.Delete(c.Request.Context(), middleware.GetActor(c), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
