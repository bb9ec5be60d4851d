// Package handler holds the gin handlers of the ReMeals API.
package handler

import (
	"errors"
	"net/http"

	appshared "github.com/NapatKulnarong/ReMeals/internal/application/shared"
	"github.com/NapatKulnarong/ReMeals/internal/domain/shared"
	"github.com/NapatKulnarong/ReMeals/internal/infrastructure/logger"
	"github.com/NapatKulnarong/ReMeals/internal/interfaces/http/dto"
	"github.com/NapatKulnarong/ReMeals/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a list response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page shared.Filter) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page.Page, page.PageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// MethodNotAllowed sends a 405 response for verbs a resource does not support
func (h *BaseHandler) MethodNotAllowed(c *gin.Context) {
	h.Error(c, http.StatusMethodNotAllowed, dto.ErrCodeMethodNotAllowed,
		`Method "`+c.Request.Method+`" not allowed.`)
}

// HandleError converts an error to an HTTP response. Domain errors keep their
// message and field details; anything else is logged and reported as 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID := middleware.GetRequestID(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		resp := dto.NewErrorResponseWithRequestID(code, domainErr.Message, requestID)
		for _, v := range domainErr.Details {
			resp.Error.Details = append(resp.Error.Details, dto.ValidationDetail{Field: v.Field, Message: v.Message})
		}
		c.JSON(dto.GetHTTPStatus(code), resp)
		return
	}

	logger.GetGinLogger(c).Error("Unhandled error", zap.Error(err))
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeInternal,
		"An unexpected error occurred",
		requestID,
	))
}

// bindJSON decodes the body into dst, writing the 400 response on failure
func (h *BaseHandler) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// bindQuery decodes query parameters into dst, writing the 400 response on failure
func (h *BaseHandler) bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		middleware.HandleValidationError(c, err)
		return false
	}
	return true
}

// page reads the common paging parameters
func (h *BaseHandler) page(c *gin.Context) (shared.Filter, bool) {
	var q appshared.ListQuery
	if !h.bindQuery(c, &q) {
		return shared.Filter{}, false
	}
	return q.ToFilter(), true
}

// isPartial reports whether the request is a PATCH
func isPartial(c *gin.Context) bool {
	return c.Request.Method == http.MethodPatch
}
