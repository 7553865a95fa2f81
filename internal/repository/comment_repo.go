package repository

import (
	"github.com/veredas/veredas-backend/internal/domain"
	"gorm.io/gorm"
)

// CommentRepository reads current comment rows for a parent document.
type CommentRepository interface {
	ListByParent(parentDocumentID uint64) ([]*domain.Comment, error)
	CountByParent(parentDocumentID uint64) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) ListByParent(parentDocumentID uint64) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	err := tipRows(r.db, "comments").
		Select("comments.*").
		Where("comments.parent_document_id = ?", parentDocumentID).
		Order("comments.revision_id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) CountByParent(parentDocumentID uint64) (int64, error) {
	var count int64
	err := tipRows(r.db, "comments").
		Where("comments.parent_document_id = ?", parentDocumentID).
		Count(&count).Error
	return count, err
}

// ImageRepository reads current image metadata rows for a subject document.
type ImageRepository interface {
	ListBySubject(subjectDocumentID uint64) ([]*domain.Image, error)
}

type imageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) ListBySubject(subjectDocumentID uint64) ([]*domain.Image, error) {
	var images []*domain.Image
	err := tipRows(r.db, "images").
		Select("images.*").
		Where("images.subject_document_id = ?", subjectDocumentID).
		Order("images.revision_id ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}
