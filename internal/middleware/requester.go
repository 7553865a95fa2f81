package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/veredas/veredas-backend/internal/domain"
)

// RevisionMessageHeader carries the optional changelog note a client can
// attach to any mutating request.
const RevisionMessageHeader = "X-Revision-Message"

// BuildRequester assembles the save attribution context from the request:
// the authenticated member (if any), the client address, the user agent and
// the default revision message.
func BuildRequester(c *gin.Context) *domain.Requester {
	return &domain.Requester{
		Member:    GetMember(c),
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Message:   c.GetHeader(RevisionMessageHeader),
	}
}
