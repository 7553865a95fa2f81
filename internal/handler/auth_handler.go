package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/veredas/veredas-backend/internal/common"
	"github.com/veredas/veredas-backend/internal/domain"
	"github.com/veredas/veredas-backend/internal/middleware"
	"github.com/veredas/veredas-backend/internal/service"
)

type AuthHandler struct {
	members service.MemberService
}

func NewAuthHandler(members service.MemberService) *AuthHandler {
	return &AuthHandler{members: members}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	member, err := h.members.Register(c.Request.Context(), &req, middleware.BuildRequester(c))
	if err != nil {
		common.FailResponse(c, err)
		return
	}

	common.CreatedResponse(c, member.ToResponse())
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	tokens, err := h.members.Login(c.Request.Context(), &req)
	if err != nil {
		common.FailResponse(c, err)
		return
	}

	common.SuccessResponse(c, tokens, nil)
}

// Refresh handles POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	tokens, err := h.members.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		common.FailResponse(c, err)
		return
	}

	common.SuccessResponse(c, tokens, nil)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	member := middleware.GetMember(c)
	if member == nil {
		common.ErrorResponse(c, 401, "unauthorized", common.ErrUnauthorized)
		return
	}
	common.SuccessResponse(c, member.ToResponse(), nil)
}

// UpdateProfile handles PUT /api/v1/auth/me
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	member := middleware.GetMember(c)
	if member == nil {
		common.ErrorResponse(c, 401, "unauthorized", common.ErrUnauthorized)
		return
	}

	var req struct {
		DisplayName string `json:"display_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	if err := h.members.UpdateProfile(c.Request.Context(), member, req.DisplayName, middleware.BuildRequester(c)); err != nil {
		common.FailResponse(c, err)
		return
	}

	common.SuccessResponse(c, member.ToResponse(), nil)
}
