package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/veredas/veredas-backend/internal/common"
	"github.com/veredas/veredas-backend/internal/domain"
	"github.com/veredas/veredas-backend/internal/middleware"
	"github.com/veredas/veredas-backend/internal/service"
)

type CommentHandler struct {
	service service.CommentService
}

func NewCommentHandler(service service.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// ListByParent handles GET /api/v1/documents/:uid/comments
func (h *CommentHandler) ListByParent(c *gin.Context) {
	comments, err := h.service.ListByParent(c.Param("uid"))
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, comments, nil)
}

// Create handles POST /api/v1/documents/:uid/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req domain.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	comment, err := h.service.Create(c.Request.Context(), c.Param("uid"), &req, middleware.BuildRequester(c))
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.CreatedResponse(c, comment)
}

// Edit handles PUT /api/v1/comments/:uid
func (h *CommentHandler) Edit(c *gin.Context) {
	var req domain.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	comment, err := h.service.Edit(c.Request.Context(), c.Param("uid"), &req, middleware.BuildRequester(c))
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, comment, nil)
}

// Delete handles DELETE /api/v1/comments/:uid
func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("uid"), middleware.BuildRequester(c)); err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
