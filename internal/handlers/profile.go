package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yatube-project/backend/internal/models"
)

type ProfileHandler struct {
	db   *gorm.DB
	feed *FeedHandler
}

func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db, feed: NewFeedHandler(db)}
}

func (h *ProfileHandler) author(c *gin.Context) (models.User, bool) {
	var author models.User
	if err := h.db.Where("username = ?", c.Param("username")).First(&author).Error; err != nil {
		notFound(c)
		return author, false
	}
	return author, true
}

// Profile renders an author's page: their posts plus follow state.
func (h *ProfileHandler) Profile(c *gin.Context) {
	author, ok := h.author(c)
	if !ok {
		return
	}

	posts, window, err := h.feed.paginatePosts(c, func(db *gorm.DB) *gorm.DB {
		return db.Where("author_id = ?", author.ID)
	})
	if err != nil {
		c.HTML(http.StatusInternalServerError, "profile.html", page(c, gin.H{"Error": "Failed to fetch posts"}))
		return
	}

	var followerCount int64
	h.db.Model(&models.Follow{}).Where("author_id = ?", author.ID).Count(&followerCount)

	following := false
	if user, authed := currentUser(c); authed {
		var follow models.Follow
		err := h.db.Where("user_id = ? AND author_id = ?", user.ID, author.ID).First(&follow).Error
		following = err == nil
	}

	c.HTML(http.StatusOK, "profile.html", page(c, gin.H{
		"Author":        author,
		"Posts":         posts,
		"PageObj":       window,
		"FollowerCount": followerCount,
		"Following":     following,
	}))
}

// Follow creates the (requester, author) edge. Self-follow and repeat
// follows are silent no-ops; the response is always a redirect to the
// author's profile.
func (h *ProfileHandler) Follow(c *gin.Context) {
	author, ok := h.author(c)
	if !ok {
		return
	}

	user, authed := currentUser(c)
	if authed && user.ID != author.ID {
		follow := models.Follow{UserID: user.ID, AuthorID: author.ID}
		// The unique index makes a duplicate a no-op under races too.
		h.db.Where(models.Follow{UserID: user.ID, AuthorID: author.ID}).FirstOrCreate(&follow)
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", author.Username))
}

// Unfollow removes the edge if present; removing a missing edge is a
// no-op. Always redirects to the author's profile.
func (h *ProfileHandler) Unfollow(c *gin.Context) {
	author, ok := h.author(c)
	if !ok {
		return
	}

	if user, authed := currentUser(c); authed {
		h.db.Where("user_id = ? AND author_id = ?", user.ID, author.ID).Delete(&models.Follow{})
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", author.Username))
}
