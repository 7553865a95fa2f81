package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/veredas/veredas-backend/internal/common"
	"github.com/veredas/veredas-backend/internal/domain"
	"github.com/veredas/veredas-backend/internal/repository"
	"github.com/veredas/veredas-backend/pkg/jwt"
)

const memberContextKey = "member"

// JWTAuth requires a valid bearer token and resolves the acting member.
func JWTAuth(jwtManager *jwt.Manager, members repository.MemberRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		member, err := memberFromHeader(c, jwtManager, members)
		if err != nil {
			common.ErrorResponse(c, 401, "unauthorized", err)
			c.Abort()
			return
		}

		c.Set(memberContextKey, member)
		c.Next()
	}
}

// OptionalAuth resolves the member when a valid token is present, but lets
// anonymous requests through. Reads use this so history stays public.
func OptionalAuth(jwtManager *jwt.Manager, members repository.MemberRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if member, err := memberFromHeader(c, jwtManager, members); err == nil {
			c.Set(memberContextKey, member)
		}
		c.Next()
	}
}

func memberFromHeader(c *gin.Context, jwtManager *jwt.Manager, members repository.MemberRepository) (*domain.Member, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, common.ErrUnauthorized
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, common.ErrUnauthorized
	}

	claims, err := jwtManager.VerifyToken(parts[1])
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, common.ErrExpiredToken
		}
		return nil, common.ErrInvalidToken
	}
	if claims.Refresh {
		return nil, common.ErrInvalidToken
	}

	return members.FindByDocumentID(claims.MemberDocumentID)
}

// GetMember extracts the authenticated member from context, nil if anonymous.
func GetMember(c *gin.Context) *domain.Member {
	v, exists := c.Get(memberContextKey)
	if !exists {
		return nil
	}
	if member, ok := v.(*domain.Member); ok {
		return member
	}
	return nil
}
