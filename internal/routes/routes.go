package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/veredas/veredas-backend/internal/handler"
	"github.com/veredas/veredas-backend/internal/middleware"
	"github.com/veredas/veredas-backend/internal/repository"
	"github.com/veredas/veredas-backend/pkg/jwt"
)

// Handlers bundles every HTTP handler the API exposes.
type Handlers struct {
	Auth       *handler.AuthHandler
	Document   *handler.DocumentHandler
	LifeNode   *handler.LifeNodeHandler
	Occurrence *handler.OccurrenceHandler
	Comment    *handler.CommentHandler
	Image      *handler.ImageHandler
}

// Setup configures the v1 API routes. Reads carry optional authentication so
// anonymous visitors can browse; writes require a valid token.
func Setup(router *gin.Engine, h Handlers, jwtManager *jwt.Manager, members repository.MemberRepository) {
	api := router.Group("/api/v1")
	auth := middleware.JWTAuth(jwtManager, members)
	optional := middleware.OptionalAuth(jwtManager, members)

	// Auth
	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.Refresh)
	authGroup.GET("/me", auth, h.Auth.Me)
	authGroup.PUT("/me", auth, h.Auth.UpdateProfile)

	// Documents: identity, revision chains, history
	docs := api.Group("/documents", optional)
	docs.GET("/:uid", h.Document.Get)
	docs.GET("/:uid/revisions", h.Document.Chain)
	docs.GET("/:uid/revisions/:index", h.Document.RevisionAt)
	docs.GET("/:uid/history", h.Document.History)
	docs.GET("/:uid/created-by", h.Document.CreatedBy)
	docs.GET("/:uid/owner", h.Document.Owner)

	// Comments and images hang off their subject document
	docs.GET("/:uid/comments", h.Comment.ListByParent)
	docs.POST("/:uid/comments", auth, h.Comment.Create)
	docs.GET("/:uid/images", h.Image.ListBySubject)

	// Taxonomy
	life := api.Group("/life", optional)
	life.GET("", h.LifeNode.Search)
	life.GET("/:uid", h.LifeNode.Get)
	life.GET("/:uid/children", h.LifeNode.Children)
	life.GET("/:uid/common-names", h.LifeNode.CommonNames)
	life.GET("/:uid/occurrences", h.Occurrence.ByIdentity)
	life.POST("", auth, h.LifeNode.Create)
	life.POST("/species", auth, h.LifeNode.CreateSpecies)
	life.PUT("/:uid", auth, h.LifeNode.Edit)
	life.DELETE("/:uid", auth, h.LifeNode.Delete)

	// Occurrences
	occ := api.Group("/occurrences", optional)
	occ.GET("", h.Occurrence.List)
	occ.GET("/:uid", h.Occurrence.Get)
	occ.POST("", auth, h.Occurrence.Create)
	occ.PUT("/:uid", auth, h.Occurrence.Edit)
	occ.DELETE("/:uid", auth, h.Occurrence.Delete)
	occ.GET("/:uid/suggestions", h.Occurrence.Suggestions)
	occ.POST("/:uid/suggestions", auth, h.Occurrence.Suggest)

	// Comments
	comments := api.Group("/comments")
	comments.PUT("/:uid", auth, h.Comment.Edit)
	comments.DELETE("/:uid", auth, h.Comment.Delete)

	// Images
	images := api.Group("/images")
	images.POST("", auth, h.Image.Create)
	images.PUT("/:uid", auth, h.Image.UpdateCaption)
	images.DELETE("/:uid", auth, h.Image.Delete)
}
