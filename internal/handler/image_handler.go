package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/veredas/veredas-backend/internal/common"
	"github.com/veredas/veredas-backend/internal/domain"
	"github.com/veredas/veredas-backend/internal/middleware"
	"github.com/veredas/veredas-backend/internal/service"
)

type ImageHandler struct {
	service service.ImageService
}

func NewImageHandler(service service.ImageService) *ImageHandler {
	return &ImageHandler{service: service}
}

// ListBySubject handles GET /api/v1/documents/:uid/images
func (h *ImageHandler) ListBySubject(c *gin.Context) {
	images, err := h.service.ListBySubject(c.Param("uid"))
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, images, nil)
}

// Create handles POST /api/v1/images
func (h *ImageHandler) Create(c *gin.Context) {
	var req domain.ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	image, err := h.service.Create(c.Request.Context(), &req, middleware.BuildRequester(c))
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.CreatedResponse(c, image)
}

// UpdateCaption handles PUT /api/v1/images/:uid
func (h *ImageHandler) UpdateCaption(c *gin.Context) {
	var req struct {
		Caption string `json:"caption" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	image, err := h.service.UpdateCaption(c.Request.Context(), c.Param("uid"), req.Caption, middleware.BuildRequester(c))
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, image, nil)
}

// Delete handles DELETE /api/v1/images/:uid
func (h *ImageHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("uid"), middleware.BuildRequester(c)); err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
