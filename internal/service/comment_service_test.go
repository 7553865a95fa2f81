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

type commentFixture struct {
	svc       CommentService
	docs      repository.DocumentRepository
	lifeStore *Store[domain.LifeNode, *domain.LifeNode]
	members   *Store[domain.Member, *domain.Member]
}

func setupCommentService(t *testing.T) *commentFixture {
	t.Helper()
	db := setupTestDB(t)
	docs := repository.NewDocumentRepository(db)
	revs := repository.NewRevisionRepository(db)
	repo := repository.NewCommentRepository(db)

	store := NewStore[domain.Comment](db, docs, revs, zerolog.Nop())
	perms := NewPermissionService(PermissionConfig{EditMinReputation: 10, DeleteMinReputation: 50})

	return &commentFixture{
		svc:       NewCommentService(store, repo, docs, perms),
		docs:      docs,
		lifeStore: NewStore[domain.LifeNode](db, docs, revs, zerolog.Nop()),
		members:   NewStore[domain.Member](db, docs, revs, zerolog.Nop()),
	}
}

func TestCommentThreadFollowsDocument(t *testing.T) {
	f := setupCommentService(t)
	ctx := context.Background()

	node := &domain.LifeNode{Title: "Quercus", Rank: domain.RankGenus}
	require.NoError(t, f.lifeStore.Save(ctx, node, nil))
	nodeDoc, err := f.docs.FindByID(node.DocumentID)
	require.NoError(t, err)

	first, err := f.svc.Create(ctx, nodeDoc.UID, &domain.CommentRequest{Body: "seen one in Sintra"}, testRequester())
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, nodeDoc.UID, &domain.CommentRequest{Body: "me too"}, testRequester())
	require.NoError(t, err)

	// revising the subject must not detach its comments
	node.Description = "revised"
	require.NoError(t, f.lifeStore.Save(ctx, node, nil))

	comments, err := f.svc.ListByParent(nodeDoc.UID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, first.DocumentID, comments[0].DocumentID)
	assert.Equal(t, "seen one in Sintra", comments[0].Body)
}

func TestCommentEditRequiresOwnership(t *testing.T) {
	f := setupCommentService(t)
	ctx := context.Background()

	node := &domain.LifeNode{Title: "Quercus", Rank: domain.RankGenus}
	require.NoError(t, f.lifeStore.Save(ctx, node, nil))
	nodeDoc, err := f.docs.FindByID(node.DocumentID)
	require.NoError(t, err)

	author := &domain.Member{Username: "author", Email: "author@example.org"}
	require.NoError(t, f.members.Save(ctx, author, nil))

	comment, err := f.svc.Create(ctx, nodeDoc.UID, &domain.CommentRequest{Body: "original"}, &domain.Requester{Member: author})
	require.NoError(t, err)
	commentDoc, err := f.docs.FindByID(comment.DocumentID)
	require.NoError(t, err)

	stranger := &domain.Member{Username: "stranger", Email: "stranger@example.org"}
	require.NoError(t, f.members.Save(ctx, stranger, nil))

	_, err = f.svc.Edit(ctx, commentDoc.UID, &domain.CommentRequest{Body: "hijacked"}, &domain.Requester{Member: stranger})
	assert.ErrorIs(t, err, common.ErrPermissionDenied)

	edited, err := f.svc.Edit(ctx, commentDoc.UID, &domain.CommentRequest{Body: "clarified"}, &domain.Requester{Member: author})
	require.NoError(t, err)
	assert.Equal(t, "clarified", edited.Body)
}

func TestCommentDeleteHidesFromThread(t *testing.T) {
	f := setupCommentService(t)
	ctx := context.Background()

	node := &domain.LifeNode{Title: "Quercus", Rank: domain.RankGenus}
	require.NoError(t, f.lifeStore.Save(ctx, node, nil))
	nodeDoc, err := f.docs.FindByID(node.DocumentID)
	require.NoError(t, err)

	author := &domain.Member{Username: "author", Email: "author@example.org"}
	require.NoError(t, f.members.Save(ctx, author, nil))

	comment, err := f.svc.Create(ctx, nodeDoc.UID, &domain.CommentRequest{Body: "oops"}, &domain.Requester{Member: author})
	require.NoError(t, err)
	commentDoc, err := f.docs.FindByID(comment.DocumentID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, commentDoc.UID, &domain.Requester{Member: author}))

	comments, err := f.svc.ListByParent(nodeDoc.UID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCommentEditRejectsNonCommentUID(t *testing.T) {
	f := setupCommentService(t)
	ctx := context.Background()

	node := &domain.LifeNode{Title: "Quercus", Rank: domain.RankGenus}
	require.NoError(t, f.lifeStore.Save(ctx, node, nil))
	nodeDoc, err := f.docs.FindByID(node.DocumentID)
	require.NoError(t, err)

	_, err = f.svc.Edit(ctx, nodeDoc.UID, &domain.CommentRequest{Body: "nope"}, testRequester())
	assert.ErrorIs(t, err, common.ErrNotFound)
}
