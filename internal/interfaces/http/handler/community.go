package handler

import (
	partnerapp "github.com/NapatKulnarong/ReMeals/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// CommunityHandler handles community endpoints
type CommunityHandler struct {
	BaseHandler
	communityService *partnerapp.CommunityService
}

// NewCommunityHandler creates a new CommunityHandler
func NewCommunityHandler(communityService *partnerapp.CommunityService) *CommunityHandler {
	return &CommunityHandler{communityService: communityService}
}

// List handles GET /communities
func (h *CommunityHandler) List(c *gin.Context) {
	page, ok := h.page(c)
	if !ok {
		return
	}
	var extra partnerapp.CommunityListFilter
	if !h.bindQuery(c, &extra) {
		return
	}
	communities, total, err := h.communityService.List(c.Request.Context(), page, extra)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, communities, total, page)
}

// GetByID handles GET /communities/:id
func (h *CommunityHandler) GetByID(c *gin.Context) {
	community, err := h.communityService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, community)
}

// Create handles POST /communities
func (h *CommunityHandler) Create(c *gin.Context) {
	var req partnerapp.CreateCommunityRequest
	if !h.bindJSON(c, &req) {
		return
	}
	community, err := h.communityService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, community)
}

// Update handles PUT and PATCH /communities/:id
func (h *CommunityHandler) Update(c *gin.Context) {
	var req partnerapp.UpdateCommunityRequest
	if !h.bindJSON(c, &req) {
		return
	}
	community, err := h.communityService.Update(c.Request.Context(), c.Param("id"), req, isPartial(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, community)
}

// Delete handles DELETE /communities/:id
func (h *CommunityHandler) Delete(c *gin.Context) {
	if err := h.communityService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
