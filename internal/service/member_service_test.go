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
	"github.com/veredas/veredas-backend/pkg/jwt"
)

func setupMemberService(t *testing.T) (MemberService, repository.DocumentRepository) {
	t.Helper()
	db := setupTestDB(t)
	docs := repository.NewDocumentRepository(db)
	revs := repository.NewRevisionRepository(db)
	members := repository.NewMemberRepository(db)
	store := NewStore[domain.Member](db, docs, revs, zerolog.Nop())
	jwtManager := jwt.NewManager("test-secret", 3600, 86400)
	return NewMemberService(store, members, jwtManager), docs
}

func TestRegisterAndLogin(t *testing.T) {
	svc, docs := setupMemberService(t)
	ctx := context.Background()

	member, err := svc.Register(ctx, &domain.RegisterRequest{
		Username: "linnaeus",
		Email:    "carl@example.org",
		Password: "binomial-nomenclature",
	}, testRequester())
	require.NoError(t, err)
	assert.NotZero(t, member.DocumentID)
	assert.NotEqual(t, "binomial-nomenclature", member.PasswordHash)

	doc, err := docs.FindByID(member.DocumentID)
	require.NoError(t, err)
	assert.Equal(t, domain.KindMember, doc.Kind)
	assert.Equal(t, 1, doc.RevisionsCount)

	tokens, err := svc.Login(ctx, &domain.LoginRequest{Username: "linnaeus", Password: "binomial-nomenclature"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, member.DocumentID, tokens.Member.DocumentID)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	svc, _ := setupMemberService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &domain.RegisterRequest{
		Username: "linnaeus",
		Email:    "carl@example.org",
		Password: "binomial-nomenclature",
	}, testRequester())
	require.NoError(t, err)

	_, err = svc.Register(ctx, &domain.RegisterRequest{
		Username: "linnaeus",
		Email:    "other@example.org",
		Password: "something-else",
	}, testRequester())
	assert.ErrorIs(t, err, common.ErrMemberExists)

	_, err = svc.Register(ctx, &domain.RegisterRequest{
		Username: "carl",
		Email:    "carl@example.org",
		Password: "something-else",
	}, testRequester())
	assert.ErrorIs(t, err, common.ErrMemberExists)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	svc, _ := setupMemberService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &domain.RegisterRequest{
		Username: "linnaeus",
		Email:    "carl@example.org",
		Password: "binomial-nomenclature",
	}, testRequester())
	require.NoError(t, err)

	_, err = svc.Login(ctx, &domain.LoginRequest{Username: "linnaeus", Password: "wrong"})
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &domain.LoginRequest{Username: "nobody", Password: "wrong"})
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestRefreshReissuesTokens(t *testing.T) {
	svc, _ := setupMemberService(t)
	ctx := context.Background()

	member, err := svc.Register(ctx, &domain.RegisterRequest{
		Username: "linnaeus",
		Email:    "carl@example.org",
		Password: "binomial-nomenclature",
	}, testRequester())
	require.NoError(t, err)

	tokens, err := svc.Login(ctx, &domain.LoginRequest{Username: "linnaeus", Password: "binomial-nomenclature"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, member.DocumentID, refreshed.Member.DocumentID)

	// an access token is not a refresh token
	_, err = svc.Refresh(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestUpdateProfileAppendsRevision(t *testing.T) {
	svc, docs := setupMemberService(t)
	ctx := context.Background()

	member, err := svc.Register(ctx, &domain.RegisterRequest{
		Username: "linnaeus",
		Email:    "carl@example.org",
		Password: "binomial-nomenclature",
	}, testRequester())
	require.NoError(t, err)

	require.NoError(t, svc.UpdateProfile(ctx, member, "Carl von Linné", &domain.Requester{Member: member}))

	doc, err := docs.FindByID(member.DocumentID)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.RevisionsCount)

	current, err := svc.FindByDocumentID(member.DocumentID)
	require.NoError(t, err)
	assert.Equal(t, "Carl von Linné", current.DisplayName)
}
