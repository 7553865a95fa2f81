package service

import (
	"context"

	"github.com/veredas/veredas-backend/internal/common"
	"github.com/veredas/veredas-backend/internal/domain"
	"github.com/veredas/veredas-backend/internal/repository"
)

// HistoryProvider is the kind-erased face of a Store, used when a caller
// holds a document of arbitrary kind and wants its rows.
type HistoryProvider interface {
	Kind() domain.ContentKind
	HistoryAny(ctx context.Context, documentID uint64) (interface{}, error)
	CurrentAny(ctx context.Context, documentID uint64) (interface{}, error)
}

// DocumentService exposes the identity-level read contract: chains,
// provenance and kind-dispatched history.
type DocumentService interface {
	Resolve(uid string) (*domain.Document, error)
	Chain(documentID uint64) ([]domain.Revision, error)
	RevisionAt(documentID uint64, index int) (*domain.Revision, error)

	// CreatedBy returns the document id of the author of the first revision,
	// nil for system-created documents.
	CreatedBy(documentID uint64) (*uint64, error)

	// OwnerOf returns the owning document id, nil for ownerless documents.
	OwnerOf(documentID uint64) (*uint64, error)

	// History returns every content row of the document, whatever its kind.
	History(ctx context.Context, doc *domain.Document) (interface{}, error)
}

type documentService struct {
	docs      repository.DocumentRepository
	revs      repository.RevisionRepository
	providers map[domain.ContentKind]HistoryProvider
}

func NewDocumentService(docs repository.DocumentRepository, revs repository.RevisionRepository, providers ...HistoryProvider) DocumentService {
	byKind := make(map[domain.ContentKind]HistoryProvider, len(providers))
	for _, p := range providers {
		byKind[p.Kind()] = p
	}
	return &documentService{docs: docs, revs: revs, providers: byKind}
}

func (s *documentService) Resolve(uid string) (*domain.Document, error) {
	return s.docs.FindByUID(uid)
}

func (s *documentService) Chain(documentID uint64) ([]domain.Revision, error) {
	return s.revs.Chain(documentID)
}

func (s *documentService) RevisionAt(documentID uint64, index int) (*domain.Revision, error) {
	return s.revs.At(documentID, index)
}

func (s *documentService) CreatedBy(documentID uint64) (*uint64, error) {
	doc, err := s.docs.FindByID(documentID)
	if err != nil {
		return nil, err
	}
	if doc.CreatedRevisionID == nil {
		return nil, nil
	}
	rev, err := s.revs.FindByID(*doc.CreatedRevisionID)
	if err != nil {
		return nil, err
	}
	return rev.AuthorID, nil
}

func (s *documentService) OwnerOf(documentID uint64) (*uint64, error) {
	doc, err := s.docs.FindByID(documentID)
	if err != nil {
		return nil, err
	}
	return doc.OwnerID, nil
}

func (s *documentService) History(ctx context.Context, doc *domain.Document) (interface{}, error) {
	provider, ok := s.providers[doc.Kind]
	if !ok {
		return nil, common.ErrNotFound
	}
	return provider.HistoryAny(ctx, doc.ID)
}
