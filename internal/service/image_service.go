package service

import (
	"context"

	"github.com/veredas/veredas-backend/internal/common"
	"github.com/veredas/veredas-backend/internal/domain"
	"github.com/veredas/veredas-backend/internal/repository"
)

// ImageService manages versioned image metadata. The upload pipeline is not
// part of this service; FileRef is whatever reference the uploader produced.
type ImageService interface {
	ListBySubject(subjectUID string) ([]*domain.Image, error)
	Create(ctx context.Context, req *domain.ImageRequest, requester *domain.Requester) (*domain.Image, error)
	UpdateCaption(ctx context.Context, uid string, caption string, requester *domain.Requester) (*domain.Image, error)
	Delete(ctx context.Context, uid string, requester *domain.Requester) error
}

type imageService struct {
	store *Store[domain.Image, *domain.Image]
	repo  repository.ImageRepository
	docs  repository.DocumentRepository
	perms PermissionService
}

func NewImageService(
	store *Store[domain.Image, *domain.Image],
	repo repository.ImageRepository,
	docs repository.DocumentRepository,
	perms PermissionService,
) ImageService {
	return &imageService{store: store, repo: repo, docs: docs, perms: perms}
}

func (s *imageService) ListBySubject(subjectUID string) ([]*domain.Image, error) {
	doc, err := s.docs.FindByUID(subjectUID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListBySubject(doc.ID)
}

func (s *imageService) Create(ctx context.Context, req *domain.ImageRequest, requester *domain.Requester) (*domain.Image, error) {
	subjectDoc, err := s.docs.FindByUID(req.SubjectUID)
	if err != nil {
		return nil, err
	}

	image := &domain.Image{
		SubjectDocumentID: subjectDoc.ID,
		FileRef:           req.FileRef,
		Caption:           req.Caption,
	}
	if err := s.store.Save(ctx, image, requester); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *imageService) UpdateCaption(ctx context.Context, uid string, caption string, requester *domain.Requester) (*domain.Image, error) {
	doc, err := s.docs.FindByUID(uid)
	if err != nil {
		return nil, err
	}
	if doc.Kind != domain.KindImage {
		return nil, common.ErrNotFound
	}
	image, err := s.store.Current(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	if !s.perms.Can(doc, requester.Member, domain.PermissionEdit) {
		return nil, common.ErrPermissionDenied
	}

	image.Caption = caption
	if err := s.store.Save(ctx, image, requester); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *imageService) Delete(ctx context.Context, uid string, requester *domain.Requester) error {
	doc, err := s.docs.FindByUID(uid)
	if err != nil {
		return err
	}
	if doc.Kind != domain.KindImage {
		return common.ErrNotFound
	}
	image, err := s.store.Current(ctx, doc.ID)
	if err != nil {
		return err
	}
	if !s.perms.Can(doc, requester.Member, domain.PermissionDelete) {
		return common.ErrPermissionDenied
	}
	return s.store.Delete(ctx, image, requester)
}
