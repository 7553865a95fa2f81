package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/veredas/veredas-backend/internal/common"
	"github.com/veredas/veredas-backend/internal/service"
)

// DocumentHandler serves the identity-level read contract: revision chains,
// per-kind history and provenance.
type DocumentHandler struct {
	service service.DocumentService
}

func NewDocumentHandler(service service.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// Get handles GET /api/v1/documents/:uid
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.service.Resolve(c.Param("uid"))
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, doc, nil)
}

// Chain handles GET /api/v1/documents/:uid/revisions
func (h *DocumentHandler) Chain(c *gin.Context) {
	doc, err := h.service.Resolve(c.Param("uid"))
	if err != nil {
		common.FailResponse(c, err)
		return
	}

	revisions, err := h.service.Chain(doc.ID)
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, revisions, nil)
}

// RevisionAt handles GET /api/v1/documents/:uid/revisions/:index
func (h *DocumentHandler) RevisionAt(c *gin.Context) {
	doc, err := h.service.Resolve(c.Param("uid"))
	if err != nil {
		common.FailResponse(c, err)
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 1 {
		common.ErrorResponse(c, 400, "Invalid revision index", err)
		return
	}

	revision, err := h.service.RevisionAt(doc.ID, index)
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, revision, nil)
}

// History handles GET /api/v1/documents/:uid/history: every content row of
// the document in chain order, deleted rows included.
func (h *DocumentHandler) History(c *gin.Context) {
	doc, err := h.service.Resolve(c.Param("uid"))
	if err != nil {
		common.FailResponse(c, err)
		return
	}

	rows, err := h.service.History(c.Request.Context(), doc)
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, rows, nil)
}

// CreatedBy handles GET /api/v1/documents/:uid/created-by
func (h *DocumentHandler) CreatedBy(c *gin.Context) {
	doc, err := h.service.Resolve(c.Param("uid"))
	if err != nil {
		common.FailResponse(c, err)
		return
	}

	authorDocumentID, err := h.service.CreatedBy(doc.ID)
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"author_document_id": authorDocumentID}, nil)
}

// Owner handles GET /api/v1/documents/:uid/owner
func (h *DocumentHandler) Owner(c *gin.Context) {
	doc, err := h.service.Resolve(c.Param("uid"))
	if err != nil {
		common.FailResponse(c, err)
		return
	}

	ownerDocumentID, err := h.service.OwnerOf(doc.ID)
	if err != nil {
		common.FailResponse(c, err)
		return
	}
	common.SuccessResponse(c, gin.H{"owner_document_id": ownerDocumentID}, nil)
}
