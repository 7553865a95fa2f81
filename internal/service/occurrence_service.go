package service

import (
	"context"

	"github.com/veredas/veredas-backend/internal/common"
	"github.com/veredas/veredas-backend/internal/domain"
	"github.com/veredas/veredas-backend/internal/repository"
)

// OccurrenceService manages field observations and their identification
// suggestions.
type OccurrenceService interface {
	Get(ctx context.Context, uid string) (*domain.Occurrence, error)
	List(page, limit int) ([]*domain.Occurrence, int64, error)
	ListUnidentified(page, limit int) ([]*domain.Occurrence, int64, error)
	ByIdentity(uid string) ([]*domain.Occurrence, error)
	Suggestions(occurrenceDocumentID uint64) ([]*domain.Suggestion, error)

	Create(ctx context.Context, req *domain.OccurrenceRequest, requester *domain.Requester) (*domain.Occurrence, error)
	Edit(ctx context.Context, uid string, req *domain.OccurrenceRequest, requester *domain.Requester) (*domain.Occurrence, error)
	Delete(ctx context.Context, uid string, requester *domain.Requester) error

	Suggest(ctx context.Context, occurrenceUID string, req *domain.SuggestionRequest, requester *domain.Requester) (*domain.Suggestion, error)
}

type occurrenceService struct {
	store           *Store[domain.Occurrence, *domain.Occurrence]
	suggestionStore *Store[domain.Suggestion, *domain.Suggestion]
	repo            repository.OccurrenceRepository
	docs            repository.DocumentRepository
	perms           PermissionService
}

func NewOccurrenceService(
	store *Store[domain.Occurrence, *domain.Occurrence],
	suggestionStore *Store[domain.Suggestion, *domain.Suggestion],
	repo repository.OccurrenceRepository,
	docs repository.DocumentRepository,
	perms PermissionService,
) OccurrenceService {
	return &occurrenceService{store: store, suggestionStore: suggestionStore, repo: repo, docs: docs, perms: perms}
}

func (s *occurrenceService) Get(ctx context.Context, uid string) (*domain.Occurrence, error) {
	doc, err := s.docs.FindByUID(uid)
	if err != nil {
		return nil, err
	}
	if doc.Kind != domain.KindOccurrence {
		return nil, common.ErrNotFound
	}
	return s.store.Current(ctx, doc.ID)
}

func (s *occurrenceService) List(page, limit int) ([]*domain.Occurrence, int64, error) {
	return s.repo.List(page, limit)
}

func (s *occurrenceService) ListUnidentified(page, limit int) ([]*domain.Occurrence, int64, error) {
	return s.repo.ListUnidentified(page, limit)
}

// ByIdentity lists the occurrences identified as a given life node.
func (s *occurrenceService) ByIdentity(uid string) ([]*domain.Occurrence, error) {
	doc, err := s.docs.FindByUID(uid)
	if err != nil {
		return nil, err
	}
	if doc.Kind != domain.KindLifeNode {
		return nil, common.ErrNotFound
	}
	return s.repo.ListByIdentity(doc.ID)
}

func (s *occurrenceService) Suggestions(occurrenceDocumentID uint64) ([]*domain.Suggestion, error) {
	return s.repo.ListSuggestions(occurrenceDocumentID)
}

func (s *occurrenceService) Create(ctx context.Context, req *domain.OccurrenceRequest, requester *domain.Requester) (*domain.Occurrence, error) {
	occ := &domain.Occurrence{}
	if err := s.applyRequest(occ, req); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, occ, requester); err != nil {
		return nil, err
	}
	return occ, nil
}

func (s *occurrenceService) Edit(ctx context.Context, uid string, req *domain.OccurrenceRequest, requester *domain.Requester) (*domain.Occurrence, error) {
	doc, err := s.docs.FindByUID(uid)
	if err != nil {
		return nil, err
	}
	occ, err := s.store.Current(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	if !s.perms.Can(doc, requester.Member, domain.PermissionEdit) {
		return nil, common.ErrPermissionDenied
	}

	if err := s.applyRequest(occ, req); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, occ, requester); err != nil {
		return nil, err
	}
	return occ, nil
}

func (s *occurrenceService) Delete(ctx context.Context, uid string, requester *domain.Requester) error {
	doc, err := s.docs.FindByUID(uid)
	if err != nil {
		return err
	}
	occ, err := s.store.Current(ctx, doc.ID)
	if err != nil {
		return err
	}
	if !s.perms.Can(doc, requester.Member, domain.PermissionDelete) {
		return common.ErrPermissionDenied
	}
	return s.store.Delete(ctx, occ, requester)
}

func (s *occurrenceService) Suggest(ctx context.Context, occurrenceUID string, req *domain.SuggestionRequest, requester *domain.Requester) (*domain.Suggestion, error) {
	occDoc, err := s.docs.FindByUID(occurrenceUID)
	if err != nil {
		return nil, err
	}
	if occDoc.Kind != domain.KindOccurrence {
		return nil, common.ErrNotFound
	}
	identityDoc, err := s.docs.FindByUID(req.IdentityUID)
	if err != nil {
		return nil, err
	}
	if identityDoc.Kind != domain.KindLifeNode {
		return nil, common.ErrInvalidInput
	}

	suggestion := &domain.Suggestion{
		OccurrenceDocumentID: occDoc.ID,
		IdentityDocumentID:   identityDoc.ID,
		Notes:                req.Notes,
	}
	if err := s.suggestionStore.Save(ctx, suggestion, requester); err != nil {
		return nil, err
	}
	return suggestion, nil
}

func (s *occurrenceService) applyRequest(occ *domain.Occurrence, req *domain.OccurrenceRequest) error {
	occ.When = req.When
	occ.Where = req.Where
	occ.Notes = req.Notes
	occ.Lat = req.Lat
	occ.Lng = req.Lng

	if req.IdentityUID != "" {
		identityDoc, err := s.docs.FindByUID(req.IdentityUID)
		if err != nil {
			return err
		}
		if identityDoc.Kind != domain.KindLifeNode {
			return common.ErrInvalidInput
		}
		occ.IdentityDocumentID = &identityDoc.ID
	}
	return nil
}
