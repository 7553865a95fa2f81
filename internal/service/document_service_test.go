package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veredas/veredas-backend/internal/common"
	"github.com/veredas/veredas-backend/internal/domain"
	"github.com/veredas/veredas-backend/internal/repository"
)

func setupDocumentService(t *testing.T) (DocumentService, *Store[domain.LifeNode, *domain.LifeNode], *Store[domain.Member, *domain.Member]) {
	t.Helper()
	db := setupTestDB(t)
	docs := repository.NewDocumentRepository(db)
	revs := repository.NewRevisionRepository(db)
	lifeStore := NewStore[domain.LifeNode](db, docs, revs, zerolog.Nop())
	memberStore := NewStore[domain.Member](db, docs, revs, zerolog.Nop())
	svc := NewDocumentService(docs, revs, lifeStore, memberStore)
	return svc, lifeStore, memberStore
}

func TestResolveByUID(t *testing.T) {
	svc, lifeStore, _ := setupDocumentService(t)
	ctx := context.Background()

	node := &domain.LifeNode{Title: "Amanita", Rank: domain.RankGenus}
	require.NoError(t, lifeStore.Save(ctx, node, testRequester()))

	docByID, err := svc.OwnerOf(node.DocumentID)
	require.NoError(t, err)
	assert.Nil(t, docByID)

	chain, err := svc.Chain(node.DocumentID)
	require.NoError(t, err)
	require.Len(t, chain, 1)

	doc, err := svc.Resolve("does-not-exist")
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRevisionAtIndex(t *testing.T) {
	svc, lifeStore, _ := setupDocumentService(t)
	ctx := context.Background()

	node := &domain.LifeNode{Title: "Amanita", Rank: domain.RankGenus}
	require.NoError(t, lifeStore.Save(ctx, node, testRequester()))
	node.Description = "mostly poisonous"
	require.NoError(t, lifeStore.Save(ctx, node, testRequester()))

	first, err := svc.RevisionAt(node.DocumentID, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.RevisionCreate, first.Kind)

	second, err := svc.RevisionAt(node.DocumentID, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.RevisionChange, second.Kind)
	assert.Equal(t, node.RevisionID, second.ID)

	_, err = svc.RevisionAt(node.DocumentID, 3)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCreatedByFollowsFirstRevision(t *testing.T) {
	svc, lifeStore, memberStore := setupDocumentService(t)
	ctx := context.Background()

	author := &domain.Member{Username: "linnaeus", Email: "carl@example.org"}
	require.NoError(t, memberStore.Save(ctx, author, nil))

	node := &domain.LifeNode{Title: "Amanita", Rank: domain.RankGenus}
	require.NoError(t, lifeStore.Save(ctx, node, &domain.Requester{Member: author}))

	// later edits by someone else don't change authorship of the document
	node.Description = "edited"
	require.NoError(t, lifeStore.Save(ctx, node, nil))

	createdBy, err := svc.CreatedBy(node.DocumentID)
	require.NoError(t, err)
	require.NotNil(t, createdBy)
	assert.Equal(t, author.DocumentID, *createdBy)

	// system documents have no author
	system, err := svc.CreatedBy(author.DocumentID)
	require.NoError(t, err)
	assert.Nil(t, system)
}

func TestHistoryDispatchesByKind(t *testing.T) {
	svc, lifeStore, memberStore := setupDocumentService(t)
	ctx := context.Background()

	node := &domain.LifeNode{Title: "Amanita", Rank: domain.RankGenus}
	require.NoError(t, lifeStore.Save(ctx, node, testRequester()))
	node.Description = "v2"
	require.NoError(t, lifeStore.Save(ctx, node, testRequester()))

	member := &domain.Member{Username: "linnaeus", Email: "carl@example.org"}
	require.NoError(t, memberStore.Save(ctx, member, nil))

	nodeDoc := &domain.Document{ID: node.DocumentID, Kind: domain.KindLifeNode}
	rows, err := svc.History(ctx, nodeDoc)
	require.NoError(t, err)
	lifeRows, ok := rows.([]domain.LifeNode)
	require.True(t, ok)
	assert.Len(t, lifeRows, 2)

	memberDoc := &domain.Document{ID: member.DocumentID, Kind: domain.KindMember}
	rows, err = svc.History(ctx, memberDoc)
	require.NoError(t, err)
	memberRows, ok := rows.([]domain.Member)
	require.True(t, ok)
	assert.Len(t, memberRows, 1)

	// a kind with no wired store cannot be browsed
	_, err = svc.History(ctx, &domain.Document{ID: 1, Kind: domain.KindImage})
	assert.ErrorIs(t, err, common.ErrNotFound)
}
