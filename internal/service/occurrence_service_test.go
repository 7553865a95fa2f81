package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/veredas/veredas-backend/internal/common"
	"github.com/veredas/veredas-backend/internal/domain"
	"github.com/veredas/veredas-backend/internal/repository"
)

type occurrenceFixture struct {
	db        *gorm.DB
	svc       OccurrenceService
	docs      repository.DocumentRepository
	lifeStore *Store[domain.LifeNode, *domain.LifeNode]
	members   *Store[domain.Member, *domain.Member]
}

func setupOccurrenceService(t *testing.T) *occurrenceFixture {
	t.Helper()
	db := setupTestDB(t)
	docs := repository.NewDocumentRepository(db)
	revs := repository.NewRevisionRepository(db)
	repo := repository.NewOccurrenceRepository(db)

	store := NewStore[domain.Occurrence](db, docs, revs, zerolog.Nop())
	suggestionStore := NewStore[domain.Suggestion](db, docs, revs, zerolog.Nop())
	perms := NewPermissionService(PermissionConfig{EditMinReputation: 10, DeleteMinReputation: 50})

	return &occurrenceFixture{
		db:        db,
		svc:       NewOccurrenceService(store, suggestionStore, repo, docs, perms),
		docs:      docs,
		lifeStore: NewStore[domain.LifeNode](db, docs, revs, zerolog.Nop()),
		members:   NewStore[domain.Member](db, docs, revs, zerolog.Nop()),
	}
}

func (f *occurrenceFixture) savedLifeNode(t *testing.T, title string, rank domain.Rank) (*domain.LifeNode, string) {
	t.Helper()
	node := &domain.LifeNode{Title: title, Rank: rank}
	require.NoError(t, f.lifeStore.Save(context.Background(), node, nil))
	doc, err := f.docs.FindByID(node.DocumentID)
	require.NoError(t, err)
	return node, doc.UID
}

func TestCreateOccurrenceUnidentified(t *testing.T) {
	f := setupOccurrenceService(t)
	ctx := context.Background()

	occ, err := f.svc.Create(ctx, &domain.OccurrenceRequest{
		When:  "2026-05-12 morning",
		Where: "Serra da Estrela",
		Notes: "small white mushroom on oak stump",
	}, testRequester())
	require.NoError(t, err)
	assert.Nil(t, occ.IdentityDocumentID)

	unidentified, total, err := f.svc.ListUnidentified(1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, unidentified, 1)
	assert.Equal(t, occ.RevisionID, unidentified[0].RevisionID)
}

func TestByIdentityListsIdentifiedOccurrences(t *testing.T) {
	f := setupOccurrenceService(t)
	ctx := context.Background()

	_, lifeUID := f.savedLifeNode(t, "Amanita muscaria", domain.RankSpecies)

	identified, err := f.svc.Create(ctx, &domain.OccurrenceRequest{
		Notes:       "red cap under birches",
		IdentityUID: lifeUID,
	}, testRequester())
	require.NoError(t, err)

	// an unidentified occurrence must stay out of the list
	_, err = f.svc.Create(ctx, &domain.OccurrenceRequest{Notes: "?"}, testRequester())
	require.NoError(t, err)

	rows, err := f.svc.ByIdentity(lifeUID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, identified.RevisionID, rows[0].RevisionID)

	all, total, err := f.svc.List(1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
}

func TestByIdentityRejectsNonLifeNode(t *testing.T) {
	f := setupOccurrenceService(t)
	ctx := context.Background()

	occ, err := f.svc.Create(ctx, &domain.OccurrenceRequest{Notes: "stray"}, testRequester())
	require.NoError(t, err)
	occDoc, err := f.docs.FindByID(occ.DocumentID)
	require.NoError(t, err)

	_, err = f.svc.ByIdentity(occDoc.UID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSuggestIdentification(t *testing.T) {
	f := setupOccurrenceService(t)
	ctx := context.Background()

	_, lifeUID := f.savedLifeNode(t, "Amanita muscaria", domain.RankSpecies)

	occ, err := f.svc.Create(ctx, &domain.OccurrenceRequest{Notes: "red cap, white spots"}, testRequester())
	require.NoError(t, err)
	occDoc, err := f.docs.FindByID(occ.DocumentID)
	require.NoError(t, err)

	suggestion, err := f.svc.Suggest(ctx, occDoc.UID, &domain.SuggestionRequest{
		IdentityUID: lifeUID,
		Notes:       "classic fly agaric",
	}, testRequester())
	require.NoError(t, err)
	assert.Equal(t, occ.DocumentID, suggestion.OccurrenceDocumentID)

	suggestions, err := f.svc.Suggestions(occ.DocumentID)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "classic fly agaric", suggestions[0].Notes)
}

func TestSuggestRejectsNonLifeNodeIdentity(t *testing.T) {
	f := setupOccurrenceService(t)
	ctx := context.Background()

	occ, err := f.svc.Create(ctx, &domain.OccurrenceRequest{Notes: "?"}, testRequester())
	require.NoError(t, err)
	occDoc, err := f.docs.FindByID(occ.DocumentID)
	require.NoError(t, err)

	// another occurrence's document is not a valid identity
	other, err := f.svc.Create(ctx, &domain.OccurrenceRequest{Notes: "another"}, testRequester())
	require.NoError(t, err)
	otherDoc, err := f.docs.FindByID(other.DocumentID)
	require.NoError(t, err)

	_, err = f.svc.Suggest(ctx, occDoc.UID, &domain.SuggestionRequest{IdentityUID: otherDoc.UID}, testRequester())
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestEditOccurrenceSetsIdentity(t *testing.T) {
	f := setupOccurrenceService(t)
	ctx := context.Background()

	node, lifeUID := f.savedLifeNode(t, "Quercus robur", domain.RankSpecies)

	owner := &domain.Member{Username: "finder", Email: "finder@example.org"}
	require.NoError(t, f.members.Save(ctx, owner, nil))

	occ, err := f.svc.Create(ctx, &domain.OccurrenceRequest{Notes: "big oak"}, &domain.Requester{Member: owner})
	require.NoError(t, err)
	occDoc, err := f.docs.FindByID(occ.DocumentID)
	require.NoError(t, err)

	edited, err := f.svc.Edit(ctx, occDoc.UID, &domain.OccurrenceRequest{
		Notes:       "big oak",
		IdentityUID: lifeUID,
	}, &domain.Requester{Member: owner})
	require.NoError(t, err)
	require.NotNil(t, edited.IdentityDocumentID)
	assert.Equal(t, node.DocumentID, *edited.IdentityDocumentID)

	_, total, err := f.svc.ListUnidentified(1, 20)
	require.NoError(t, err)
	assert.Zero(t, total)
}
