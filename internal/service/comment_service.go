package service

import (
	"context"

	"github.com/veredas/veredas-backend/internal/common"
	"github.com/veredas/veredas-backend/internal/domain"
	"github.com/veredas/veredas-backend/internal/repository"
)

// CommentService manages comments attached to any document.
type CommentService interface {
	ListByParent(parentUID string) ([]*domain.Comment, error)
	Create(ctx context.Context, parentUID string, req *domain.CommentRequest, requester *domain.Requester) (*domain.Comment, error)
	Edit(ctx context.Context, uid string, req *domain.CommentRequest, requester *domain.Requester) (*domain.Comment, error)
	Delete(ctx context.Context, uid string, requester *domain.Requester) error
}

type commentService struct {
	store *Store[domain.Comment, *domain.Comment]
	repo  repository.CommentRepository
	docs  repository.DocumentRepository
	perms PermissionService
}

func NewCommentService(
	store *Store[domain.Comment, *domain.Comment],
	repo repository.CommentRepository,
	docs repository.DocumentRepository,
	perms PermissionService,
) CommentService {
	return &commentService{store: store, repo: repo, docs: docs, perms: perms}
}

func (s *commentService) ListByParent(parentUID string) ([]*domain.Comment, error) {
	doc, err := s.docs.FindByUID(parentUID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByParent(doc.ID)
}

func (s *commentService) Create(ctx context.Context, parentUID string, req *domain.CommentRequest, requester *domain.Requester) (*domain.Comment, error) {
	parentDoc, err := s.docs.FindByUID(parentUID)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ParentDocumentID: parentDoc.ID,
		Body:             req.Body,
	}
	if err := s.store.Save(ctx, comment, requester); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Edit(ctx context.Context, uid string, req *domain.CommentRequest, requester *domain.Requester) (*domain.Comment, error) {
	doc, err := s.docs.FindByUID(uid)
	if err != nil {
		return nil, err
	}
	if doc.Kind != domain.KindComment {
		return nil, common.ErrNotFound
	}
	comment, err := s.store.Current(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	if !s.perms.Can(doc, requester.Member, domain.PermissionEdit) {
		return nil, common.ErrPermissionDenied
	}

	comment.Body = req.Body
	if err := s.store.Save(ctx, comment, requester); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, uid string, requester *domain.Requester) error {
	doc, err := s.docs.FindByUID(uid)
	if err != nil {
		return err
	}
	if doc.Kind != domain.KindComment {
		return common.ErrNotFound
	}
	comment, err := s.store.Current(ctx, doc.ID)
	if err != nil {
		return err
	}
	if !s.perms.Can(doc, requester.Member, domain.PermissionDelete) {
		return common.ErrPermissionDenied
	}
	return s.store.Delete(ctx, comment, requester)
}
