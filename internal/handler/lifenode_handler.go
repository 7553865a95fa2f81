package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/veredas/veredas-backend/internal/common"
	"github.com/veredas/veredas-backend/internal/domain"
	"github.com/veredas/veredas-backend/internal/middleware"
	"github.com/veredas/veredas-backend/internal/service"
)

type LifeNodeHandler struct {
	service service.LifeNodeService
}

func NewLifeNodeHandler(service service.LifeNodeService) *LifeNodeHandler {
	return &LifeNodeHandler{service: service}
}

// Search handles GET /api/v1/life?q=&rank=&page=&limit=. A rank filter
// browses one level of the taxonomy; otherwise titles are matched against q.
func (h *LifeNodeHandler) Search(c *gin.Context) {
	page, limit := pagination(c)

	var (
		nodes []*domain.LifeNode
		total int64
		err   error
	)
	if rank := c.Query("rank"); rank != "" {
		nodes, total, err = h.service.ByRank(rank, page, limit)
	} else {
		nodes, total, err = h.service.Search(c.Query("q"), page, limit)
	}
	if err != nil {
		common.FailResponse(c, err)
		return
	}

	common.SuccessResponse(c, nodes, &common.Meta{Page: page, Limit: limit, Total: total})
}

// Get handles GET /api/v1/life/:uid
func (h *LifeNodeHandler) Get(c *gin.Context) {
	node, err := h.service.Get(c.Request.Context(), c.Param("uid"))
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, node, nil)
}

// Children handles GET /api/v1/life/:uid/children
func (h *LifeNodeHandler) Children(c *gin.Context) {
	node, err := h.service.Get(c.Request.Context(), c.Param("uid"))
	if err != nil {
		common.FailResponse(c, err)
		return
	}

	children, err := h.service.Children(node.DocumentID)
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, children, nil)
}

// CommonNames handles GET /api/v1/life/:uid/common-names
func (h *LifeNodeHandler) CommonNames(c *gin.Context) {
	node, err := h.service.Get(c.Request.Context(), c.Param("uid"))
	if err != nil {
		common.FailResponse(c, err)
		return
	}

	names, err := h.service.CommonNames(node.DocumentID)
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, names, nil)
}

// Create handles POST /api/v1/life
func (h *LifeNodeHandler) Create(c *gin.Context) {
	var req domain.LifeNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	node, err := h.service.Create(c.Request.Context(), &req, middleware.BuildRequester(c))
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.CreatedResponse(c, node)
}

// CreateSpecies handles POST /api/v1/life/species
func (h *LifeNodeHandler) CreateSpecies(c *gin.Context) {
	var req domain.SpeciesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	species, err := h.service.CreateSpecies(c.Request.Context(), &req, middleware.BuildRequester(c))
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.CreatedResponse(c, species)
}

// Edit handles PUT /api/v1/life/:uid
func (h *LifeNodeHandler) Edit(c *gin.Context) {
	var req domain.LifeNodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, 400, "Invalid request body", err)
		return
	}

	node, err := h.service.Edit(c.Request.Context(), c.Param("uid"), &req, middleware.BuildRequester(c))
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, node, nil)
}

// Delete handles DELETE /api/v1/life/:uid
func (h *LifeNodeHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("uid"), middleware.BuildRequester(c)); err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}

// pagination reads page/limit query params with sane defaults.
func pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
