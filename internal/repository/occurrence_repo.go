package repository

import (
	"github.com/veredas/veredas-backend/internal/domain"
	"gorm.io/gorm"
)

// OccurrenceRepository reads current occurrence and suggestion rows.
type OccurrenceRepository interface {
	List(page, limit int) ([]*domain.Occurrence, int64, error)
	ListUnidentified(page, limit int) ([]*domain.Occurrence, int64, error)
	ListByIdentity(identityDocumentID uint64) ([]*domain.Occurrence, error)
	ListSuggestions(occurrenceDocumentID uint64) ([]*domain.Suggestion, error)
}

type occurrenceRepository struct {
	db *gorm.DB
}

func NewOccurrenceRepository(db *gorm.DB) OccurrenceRepository {
	return &occurrenceRepository{db: db}
}

func (r *occurrenceRepository) List(page, limit int) ([]*domain.Occurrence, int64, error) {
	var total int64
	if err := tipRows(r.db, "occurrences").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*domain.Occurrence
	err := tipRows(r.db, "occurrences").
		Select("occurrences.*").
		Order("occurrences.revision_id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListUnidentified returns "what is this?" occurrences: ones with no
// identified life node yet.
func (r *occurrenceRepository) ListUnidentified(page, limit int) ([]*domain.Occurrence, int64, error) {
	scope := func() *gorm.DB {
		return tipRows(r.db, "occurrences").
			Where("occurrences.identity_document_id IS NULL")
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*domain.Occurrence
	err := scope().
		Select("occurrences.*").
		Order("occurrences.revision_id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *occurrenceRepository) ListByIdentity(identityDocumentID uint64) ([]*domain.Occurrence, error) {
	var rows []*domain.Occurrence
	err := tipRows(r.db, "occurrences").
		Select("occurrences.*").
		Where("occurrences.identity_document_id = ?", identityDocumentID).
		Order("occurrences.revision_id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *occurrenceRepository) ListSuggestions(occurrenceDocumentID uint64) ([]*domain.Suggestion, error) {
	var rows []*domain.Suggestion
	err := tipRows(r.db, "suggestions").
		Select("suggestions.*").
		Where("suggestions.occurrence_document_id = ?", occurrenceDocumentID).
		Order("suggestions.revision_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
