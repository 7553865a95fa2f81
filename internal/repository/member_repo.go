package repository

import (
	"errors"

	"github.com/veredas/veredas-backend/internal/common"
	"github.com/veredas/veredas-backend/internal/domain"
	"gorm.io/gorm"
)

// MemberRepository reads the current tip of member documents. Writes go
// through the versioned store like any other content type.
type MemberRepository interface {
	FindByUsername(username string) (*domain.Member, error)
	FindByDocumentID(documentID uint64) (*domain.Member, error)
	UsernameExists(username string) (bool, error)
	EmailExists(email string) (bool, error)
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// tipScope filters to live tips: the current row of a non-deleted document.
func (r *memberRepository) tipScope() *gorm.DB {
	return r.db.Table("members").
		Joins("JOIN documents ON documents.id = members.document_id").
		Where("members.is_tip IS NOT NULL AND documents.deleted_at IS NULL")
}

func (r *memberRepository) FindByUsername(username string) (*domain.Member, error) {
	var member domain.Member
	err := r.tipScope().Where("members.username = ?", username).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) FindByDocumentID(documentID uint64) (*domain.Member, error) {
	var member domain.Member
	err := r.tipScope().Where("members.document_id = ?", documentID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) UsernameExists(username string) (bool, error) {
	var count int64
	err := r.tipScope().Where("members.username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *memberRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.tipScope().Where("members.email = ?", email).Count(&count).Error
	return count > 0, err
}
