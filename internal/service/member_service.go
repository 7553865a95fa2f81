package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/veredas/veredas-backend/internal/common"
	"github.com/veredas/veredas-backend/internal/domain"
	"github.com/veredas/veredas-backend/internal/repository"
	"github.com/veredas/veredas-backend/pkg/jwt"
)

// MemberService handles registration, login and profile edits. Members are
// versioned rows themselves, so every profile change appends to their chain.
type MemberService interface {
	Register(ctx context.Context, req *domain.RegisterRequest, requester *domain.Requester) (*domain.Member, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenResponse, error)
	UpdateProfile(ctx context.Context, member *domain.Member, displayName string, requester *domain.Requester) error
	FindByDocumentID(documentID uint64) (*domain.Member, error)
}

type memberService struct {
	store      *Store[domain.Member, *domain.Member]
	members    repository.MemberRepository
	jwtManager *jwt.Manager
}

func NewMemberService(store *Store[domain.Member, *domain.Member], members repository.MemberRepository, jwtManager *jwt.Manager) MemberService {
	return &memberService{store: store, members: members, jwtManager: jwtManager}
}

// Register creates the member's document with its first revision. A fresh
// account has no author yet, so the requester usually carries only client
// provenance and the resulting document stays self-owned at the policy level.
func (s *memberService) Register(ctx context.Context, req *domain.RegisterRequest, requester *domain.Requester) (*domain.Member, error) {
	taken, err := s.members.UsernameExists(req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, common.ErrMemberExists
	}
	taken, err = s.members.EmailExists(req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, common.ErrMemberExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	member := &domain.Member{
		Username:     req.Username,
		Email:        req.Email,
		DisplayName:  req.DisplayName,
		PasswordHash: string(hash),
	}
	if err := s.store.Save(ctx, member, requester); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *memberService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.TokenResponse, error) {
	member, err := s.members.FindByUsername(req.Username)
	if err != nil {
		return nil, common.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(req.Password)) != nil {
		return nil, common.ErrInvalidCredentials
	}
	return s.tokensFor(member)
}

func (s *memberService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenResponse, error) {
	claims, err := s.jwtManager.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, common.ErrInvalidToken
	}
	member, err := s.members.FindByDocumentID(claims.MemberDocumentID)
	if err != nil {
		return nil, common.ErrUnauthorized
	}
	return s.tokensFor(member)
}

func (s *memberService) tokensFor(member *domain.Member) (*domain.TokenResponse, error) {
	access, refresh, err := s.jwtManager.GenerateTokenPair(member.DocumentID, member.Username)
	if err != nil {
		return nil, err
	}
	return &domain.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		Member:       member.ToResponse(),
	}, nil
}

// UpdateProfile appends a change revision with the new display name.
func (s *memberService) UpdateProfile(ctx context.Context, member *domain.Member, displayName string, requester *domain.Requester) error {
	member.DisplayName = displayName
	return s.store.Save(ctx, member, requester)
}

func (s *memberService) FindByDocumentID(documentID uint64) (*domain.Member, error) {
	return s.members.FindByDocumentID(documentID)
}
