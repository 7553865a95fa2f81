package repository

import (
	"errors"

	"github.com/veredas/veredas-backend/internal/common"
	"github.com/veredas/veredas-backend/internal/domain"
	"gorm.io/gorm"
)

// RevisionRepository is the append-only revision chain. Append must run
// inside the caller's save transaction; the reads use the repository's own
// handle.
type RevisionRepository interface {
	// Append writes the next revision for doc. The index is computed as
	// count+1 inside the transaction; the (document_id, idx) unique index
	// turns a concurrent duplicate into ErrConcurrencyConflict.
	Append(tx *gorm.DB, doc *domain.Document, kind domain.RevisionKind, parentID uint64, req *domain.Requester, message string) (*domain.Revision, error)

	// Chain returns every revision of a document, index ascending.
	Chain(documentID uint64) ([]domain.Revision, error)

	// At returns the revision with the given 1-based index.
	At(documentID uint64, index int) (*domain.Revision, error)

	FindByID(id uint64) (*domain.Revision, error)
}

type revisionRepository struct {
	db *gorm.DB
}

func NewRevisionRepository(db *gorm.DB) RevisionRepository {
	return &revisionRepository{db: db}
}

func (r *revisionRepository) Append(tx *gorm.DB, doc *domain.Document, kind domain.RevisionKind, parentID uint64, req *domain.Requester, message string) (*domain.Revision, error) {
	if kind == domain.RevisionCreate && doc.TipRevisionID != nil {
		return nil, common.ErrAlreadyCreated
	}
	if kind != domain.RevisionCreate && parentID == 0 {
		return nil, common.ErrValidation
	}

	var count int64
	if err := tx.Model(&domain.Revision{}).
		Where("document_id = ?", doc.ID).
		Count(&count).Error; err != nil {
		return nil, err
	}

	rev := &domain.Revision{
		Kind:       kind,
		Index:      int(count) + 1,
		DocumentID: doc.ID,
	}
	if parentID != 0 {
		rev.ParentID = &parentID
	}
	if req != nil {
		rev.AuthorID = req.AuthorDocumentID()
		rev.AuthorIP = req.IP
		rev.AuthorUserAgent = req.UserAgent
		if message == "" {
			message = req.Message
		}
	}
	rev.Message = message

	if err := tx.Create(rev).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			tipID := uint64(0)
			if doc.TipRevisionID != nil {
				tipID = *doc.TipRevisionID
			}
			return nil, &common.ConflictError{
				DocumentID:     doc.ID,
				AttemptedIndex: rev.Index,
				TipRevisionID:  tipID,
				Err:            common.ErrConcurrencyConflict,
			}
		}
		return nil, err
	}
	return rev, nil
}

func (r *revisionRepository) Chain(documentID uint64) ([]domain.Revision, error) {
	var revs []domain.Revision
	err := r.db.Where("document_id = ?", documentID).
		Order("idx ASC").
		Find(&revs).Error
	if err != nil {
		return nil, err
	}
	return revs, nil
}

func (r *revisionRepository) At(documentID uint64, index int) (*domain.Revision, error) {
	var rev domain.Revision
	err := r.db.Where("document_id = ? AND idx = ?", documentID, index).
		First(&rev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *revisionRepository) FindByID(id uint64) (*domain.Revision, error) {
	var rev domain.Revision
	err := r.db.Where("id = ?", id).First(&rev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rev, nil
}
