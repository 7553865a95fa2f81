package service

import (
	"context"
	"errors"
	"strings"

	"github.com/veredas/veredas-backend/internal/common"
	"github.com/veredas/veredas-backend/internal/domain"
	"github.com/veredas/veredas-backend/internal/repository"
)

// LifeNodeService manages the taxonomy tree through the versioned store.
type LifeNodeService interface {
	Get(ctx context.Context, uid string) (*domain.LifeNode, error)
	Search(keyword string, page, limit int) ([]*domain.LifeNode, int64, error)
	ByRank(rank string, page, limit int) ([]*domain.LifeNode, int64, error)
	Children(parentDocumentID uint64) ([]*domain.LifeNode, error)
	CommonNames(lifeNodeDocumentID uint64) ([]*domain.CommonName, error)

	Create(ctx context.Context, req *domain.LifeNodeRequest, requester *domain.Requester) (*domain.LifeNode, error)
	Edit(ctx context.Context, uid string, req *domain.LifeNodeRequest, requester *domain.Requester) (*domain.LifeNode, error)
	Delete(ctx context.Context, uid string, requester *domain.Requester) error

	// CreateSpecies resolves or creates the genus (and optional family)
	// chain, then creates the species node under it.
	CreateSpecies(ctx context.Context, req *domain.SpeciesRequest, requester *domain.Requester) (*domain.LifeNode, error)
}

type lifeNodeService struct {
	store     *Store[domain.LifeNode, *domain.LifeNode]
	nameStore *Store[domain.CommonName, *domain.CommonName]
	repo      repository.LifeNodeRepository
	docs      repository.DocumentRepository
	perms     PermissionService
}

func NewLifeNodeService(
	store *Store[domain.LifeNode, *domain.LifeNode],
	nameStore *Store[domain.CommonName, *domain.CommonName],
	repo repository.LifeNodeRepository,
	docs repository.DocumentRepository,
	perms PermissionService,
) LifeNodeService {
	return &lifeNodeService{store: store, nameStore: nameStore, repo: repo, docs: docs, perms: perms}
}

func (s *lifeNodeService) Get(ctx context.Context, uid string) (*domain.LifeNode, error) {
	doc, err := s.docs.FindByUID(uid)
	if err != nil {
		return nil, err
	}
	if doc.Kind != domain.KindLifeNode {
		return nil, common.ErrNotFound
	}
	return s.store.Current(ctx, doc.ID)
}

func (s *lifeNodeService) Search(keyword string, page, limit int) ([]*domain.LifeNode, int64, error) {
	return s.repo.SearchByTitle(keyword, page, limit)
}

func (s *lifeNodeService) ByRank(rank string, page, limit int) ([]*domain.LifeNode, int64, error) {
	r, ok := domain.RankByName(rank)
	if !ok {
		return nil, 0, common.ErrInvalidInput
	}
	return s.repo.ListByRank(r, page, limit)
}

func (s *lifeNodeService) Children(parentDocumentID uint64) ([]*domain.LifeNode, error) {
	return s.repo.ListChildren(parentDocumentID)
}

func (s *lifeNodeService) CommonNames(lifeNodeDocumentID uint64) ([]*domain.CommonName, error) {
	return s.repo.ListCommonNames(lifeNodeDocumentID)
}

func (s *lifeNodeService) Create(ctx context.Context, req *domain.LifeNodeRequest, requester *domain.Requester) (*domain.LifeNode, error) {
	node := &domain.LifeNode{}
	if err := s.applyRequest(node, req); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, node, requester); err != nil {
		return nil, err
	}
	if err := s.attachCommonNames(ctx, node, req.CommonNames, requester); err != nil {
		return nil, err
	}
	return node, nil
}

func (s *lifeNodeService) Edit(ctx context.Context, uid string, req *domain.LifeNodeRequest, requester *domain.Requester) (*domain.LifeNode, error) {
	doc, err := s.docs.FindByUID(uid)
	if err != nil {
		return nil, err
	}
	node, err := s.store.Current(ctx, doc.ID)
	if err != nil {
		return nil, err
	}
	if !s.perms.Can(doc, requester.Member, domain.PermissionEdit) {
		return nil, common.ErrPermissionDenied
	}

	if err := s.applyRequest(node, req); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, node, requester); err != nil {
		return nil, err
	}
	if err := s.attachCommonNames(ctx, node, req.CommonNames, requester); err != nil {
		return nil, err
	}
	return node, nil
}

func (s *lifeNodeService) Delete(ctx context.Context, uid string, requester *domain.Requester) error {
	doc, err := s.docs.FindByUID(uid)
	if err != nil {
		return err
	}
	node, err := s.store.Current(ctx, doc.ID)
	if err != nil {
		return err
	}
	if !s.perms.Can(doc, requester.Member, domain.PermissionDelete) {
		return common.ErrPermissionDenied
	}
	return s.store.Delete(ctx, node, requester)
}

func (s *lifeNodeService) CreateSpecies(ctx context.Context, req *domain.SpeciesRequest, requester *domain.Requester) (*domain.LifeNode, error) {
	var family *domain.LifeNode
	if req.Family != "" {
		var err error
		family, err = s.ensureNode(ctx, req.Family, domain.RankFamily, nil, requester)
		if err != nil {
			return nil, err
		}
	}

	var familyDoc *uint64
	if family != nil {
		familyDoc = &family.DocumentID
	}
	genus, err := s.ensureNode(ctx, req.Genus, domain.RankGenus, familyDoc, requester)
	if err != nil {
		return nil, err
	}

	species := &domain.LifeNode{
		Title:            strings.TrimSpace(req.Species),
		Rank:             domain.RankSpecies,
		ParentDocumentID: &genus.DocumentID,
	}
	if err := s.store.Save(ctx, species, requester); err != nil {
		return nil, err
	}
	if err := s.attachCommonNames(ctx, species, req.CommonNames, requester); err != nil {
		return nil, err
	}
	return species, nil
}

// ensureNode finds an existing node by title and rank or creates one.
func (s *lifeNodeService) ensureNode(ctx context.Context, title string, rank domain.Rank, parentDoc *uint64, requester *domain.Requester) (*domain.LifeNode, error) {
	title = strings.TrimSpace(title)
	node, err := s.repo.FindByTitleAndRank(title, rank)
	if err == nil {
		return node, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	node = &domain.LifeNode{Title: title, Rank: rank, ParentDocumentID: parentDoc}
	if err := s.store.Save(ctx, node, requester); err != nil {
		return nil, err
	}
	return node, nil
}

// attachCommonNames saves new vernacular names, skipping blanks and names
// that already exist.
func (s *lifeNodeService) attachCommonNames(ctx context.Context, node *domain.LifeNode, names []domain.CommonNameInput, requester *domain.Requester) error {
	for _, input := range names {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			// don't save empty
			continue
		}

		existing, err := s.repo.FindCommonNameByName(name)
		if err == nil && existing.LifeNodeDocumentID == node.DocumentID {
			continue
		}
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return err
		}

		cn := &domain.CommonName{
			LifeNodeDocumentID: node.DocumentID,
			Name:               name,
			Language:           input.Language,
		}
		if err := s.nameStore.Save(ctx, cn, requester); err != nil {
			return err
		}
	}
	return nil
}

func (s *lifeNodeService) applyRequest(node *domain.LifeNode, req *domain.LifeNodeRequest) error {
	rank, ok := domain.RankByName(req.Rank)
	if !ok {
		return common.ErrInvalidInput
	}

	node.Title = strings.TrimSpace(req.Title)
	node.Description = req.Description
	node.Rank = rank
	node.GbifID = req.GbifID

	if req.ParentUID != "" {
		parentDoc, err := s.docs.FindByUID(req.ParentUID)
		if err != nil {
			return err
		}
		if parentDoc.Kind != domain.KindLifeNode {
			return common.ErrInvalidInput
		}
		node.ParentDocumentID = &parentDoc.ID
	}
	return nil
}
