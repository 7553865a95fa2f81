package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// Claims is the token payload: which member document the bearer acts as.
type Claims struct {
	jwt.RegisteredClaims
	MemberDocumentID uint64 `json:"member_document_id"`
	Username         string `json:"username"`
	Refresh          bool   `json:"refresh,omitempty"`
}

// Manager signs and verifies HMAC tokens.
type Manager struct {
	secretKey []byte
	expiresIn time.Duration
	refreshIn time.Duration
}

// NewManager creates a token manager. Durations are in seconds.
func NewManager(secret string, expiresInSec, refreshInSec int) *Manager {
	return &Manager{
		secretKey: []byte(secret),
		expiresIn: time.Duration(expiresInSec) * time.Second,
		refreshIn: time.Duration(refreshInSec) * time.Second,
	}
}

// GenerateTokenPair issues an access and a refresh token for a member.
func (m *Manager) GenerateTokenPair(memberDocumentID uint64, username string) (access string, refresh string, err error) {
	access, err = m.sign(memberDocumentID, username, m.expiresIn, false)
	if err != nil {
		return "", "", err
	}
	refresh, err = m.sign(memberDocumentID, username, m.refreshIn, true)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (m *Manager) sign(memberDocumentID uint64, username string, ttl time.Duration, refresh bool) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		MemberDocumentID: memberDocumentID,
		Username:         username,
		Refresh:          refresh,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// VerifyToken validates a token and returns its claims.
func (m *Manager) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// VerifyRefreshToken validates a refresh token specifically.
func (m *Manager) VerifyRefreshToken(tokenString string) (*Claims, error) {
	claims, err := m.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}
	if !claims.Refresh {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
