package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/veredas/veredas-backend/internal/common"
	"github.com/veredas/veredas-backend/internal/domain"
	"github.com/veredas/veredas-backend/internal/middleware"
	"github.com/veredas/veredas-backend/internal/service"
)

type OccurrenceHandler struct {
	service service.OccurrenceService
}

func NewOccurrenceHandler(service service.OccurrenceService) *OccurrenceHandler {
	return &OccurrenceHandler{service: service}
}

// List handles GET /api/v1/occurrences?unidentified=
func (h *OccurrenceHandler) List(c *gin.Context) {
	page, limit := pagination(c)

	var (
		rows  []*domain.Occurrence
		total int64
		err   error
	)
	if c.Query("unidentified") == "true" {
		rows, total, err = h.service.ListUnidentified(page, limit)
	} else {
		rows, total, err = h.service.List(page, limit)
	}
	if err != nil {
		common.FailResponse(c, err)
		return
	}

	common.SuccessResponse(c, rows, &common.Meta{Page: page, Limit: limit, Total: total})
}

// ByIdentity handles GET /api/v1/life/:uid/occurrences
func (h *OccurrenceHandler) ByIdentity(c *gin.Context) {
	rows, err := h.service.ByIdentity(c.Param("uid"))
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, rows, nil)
}

// Get handles GET /api/v1/occurrences/:uid
func (h *OccurrenceHandler) Get(c *gin.Context) {
	occ, err := h.service.Get(c.Request.Context(), c.Param("uid"))
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, occ, nil)
}

// Create handles POST /api/v1/occurrences
func (h *OccurrenceHandler) Create(c *gin.Context) {
	var req domain.OccurrenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	occ, err := h.service.Create(c.Request.Context(), &req, middleware.BuildRequester(c))
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.CreatedResponse(c, occ)
}

// Edit handles PUT /api/v1/occurrences/:uid
func (h *OccurrenceHandler) Edit(c *gin.Context) {
	var req domain.OccurrenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	occ, err := h.service.Edit(c.Request.Context(), c.Param("uid"), &req, middleware.BuildRequester(c))
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, occ, nil)
}

// Delete handles DELETE /api/v1/occurrences/:uid
func (h *OccurrenceHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("uid"), middleware.BuildRequester(c)); err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}

// Suggestions handles GET /api/v1/occurrences/:uid/suggestions
func (h *OccurrenceHandler) Suggestions(c *gin.Context) {
	occ, err := h.service.Get(c.Request.Context(), c.Param("uid"))
	if err != nil {
		common.FailResponse(c, err)
		return
	}

	suggestions, err := h.service.Suggestions(occ.DocumentID)
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, suggestions, nil)
}

// Suggest handles POST /api/v1/occurrences/:uid/suggestions
func (h *OccurrenceHandler) Suggest(c *gin.Context) {
	var req domain.SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	suggestion, err := h.service.Suggest(c.Request.Context(), c.Param("uid"), &req, middleware.BuildRequester(c))
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.CreatedResponse(c, suggestion)
}
