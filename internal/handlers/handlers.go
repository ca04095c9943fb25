package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yatube-project/backend/internal/media"
	"github.com/yatube-project/backend/internal/models"
)

// Handler combines all handler types
type Handler struct {
	Feed    *FeedHandler
	Post    *PostHandler
	Comment *CommentHandler
	Profile *ProfileHandler
	Auth    *AuthHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, store *media.Store) *Handler {
	return &Handler{
		Feed:    NewFeedHandler(db),
		Post:    NewPostHandler(db, store),
		Comment: NewCommentHandler(db),
		Profile: NewProfileHandler(db),
		Auth:    NewAuthHandler(db),
	}
}

// currentUser returns the user the session middleware resolved, if any.
func currentUser(c *gin.Context) (models.User, bool) {
	raw, exists := c.Get("user")
	if !exists {
		return models.User{}, false
	}
	user, ok := raw.(models.User)
	return user, ok
}

// page merges the shared template context into h.
func page(c *gin.Context, h gin.H) gin.H {
	user, ok := currentUser(c)
	h["User"] = user
	h["IsAuthenticated"] = ok
	return h
}

func notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", page(c, gin.H{}))
	c.Abort()
}
