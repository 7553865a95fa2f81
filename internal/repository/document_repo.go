package repository

import (
	"errors"
	"time"

	"github.com/veredas/veredas-backend/internal/common"
	"github.com/veredas/veredas-backend/internal/domain"
	"gorm.io/gorm"
)

// DocumentRepository is the identity registry: one row per logical entity,
// tracking the tip pointer, the creation pointer and the revision counter.
//
// The mutating methods take a *gorm.DB so the versioned store can run them
// inside its save transaction; passing the repository's own handle works for
// standalone use.
type DocumentRepository interface {
	// Ensure creates a fresh identity with zero revisions.
	Ensure(tx *gorm.DB, kind domain.ContentKind) (*domain.Document, error)

	// AdvanceTip moves the tip pointer to rev and bumps the revision counter.
	// On the first revision it also pins created_revision_id and, when an
	// author is present, adopts it as owner.
	AdvanceTip(tx *gorm.DB, doc *domain.Document, rev *domain.Revision, isCreate bool, authorDocumentID *uint64) error

	// MarkDeleted soft-deletes the identity. The earliest timestamp wins;
	// calling it on an already-deleted document is a no-op.
	MarkDeleted(tx *gorm.DB, doc *domain.Document, at time.Time) error

	FindByID(id uint64) (*domain.Document, error)
	FindByUID(uid string) (*domain.Document, error)
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Ensure(tx *gorm.DB, kind domain.ContentKind) (*domain.Document, error) {
	doc := domain.NewDocument(kind)
	if err := tx.Create(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *documentRepository) AdvanceTip(tx *gorm.DB, doc *domain.Document, rev *domain.Revision, isCreate bool, authorDocumentID *uint64) error {
	updates := map[string]interface{}{
		"tip_revision_id": rev.ID,
		"revisions_count": gorm.Expr("revisions_count + 1"),
		"updated_at":      time.Now(),
	}
	if doc.CreatedRevisionID == nil {
		updates["created_revision_id"] = rev.ID
		if isCreate && authorDocumentID != nil {
			updates["owner_id"] = *authorDocumentID
		}
	}

	if err := tx.Model(&domain.Document{}).Where("id = ?", doc.ID).
		Updates(updates).Error; err != nil {
		return err
	}

	// keep the in-memory row in step with what was just persisted
	tip := rev.ID
	doc.TipRevisionID = &tip
	if doc.CreatedRevisionID == nil {
		created := rev.ID
		doc.CreatedRevisionID = &created
		if isCreate && authorDocumentID != nil {
			doc.OwnerID = authorDocumentID
		}
	}
	doc.RevisionsCount++
	return nil
}

func (r *documentRepository) MarkDeleted(tx *gorm.DB, doc *domain.Document, at time.Time) error {
	if doc.DeletedAt != nil {
		return nil
	}
	if err := tx.Model(&domain.Document{}).
		Where("id = ? AND deleted_at IS NULL", doc.ID).
		Update("deleted_at", at).Error; err != nil {
		return err
	}
	doc.DeletedAt = &at
	return nil
}

func (r *documentRepository) FindByID(id uint64) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.Where("id = ?", id).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) FindByUID(uid string) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.Where("uid = ?", uid).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
