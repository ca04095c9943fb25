package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yatube-project/backend/internal/models"
	"github.com/yatube-project/backend/internal/pagination"
)

type FeedHandler struct {
	db *gorm.DB
}

func NewFeedHandler(db *gorm.DB) *FeedHandler {
	return &FeedHandler{db: db}
}

// paginatePosts counts the scoped post collection, windows it around
// the page query parameter and fetches that window newest-first.
func (h *FeedHandler) paginatePosts(c *gin.Context, scope func(*gorm.DB) *gorm.DB) ([]models.Post, pagination.Window, error) {
	var total int64
	if err := scope(h.db.Model(&models.Post{})).Count(&total).Error; err != nil {
		return nil, pagination.Window{}, err
	}

	window := pagination.Paginate(int(total), pagination.PerPage, c.Query("page"))

	var posts []models.Post
	err := scope(h.db).
		Preload("Author").
		Preload("Group").
		Order("created_at desc, id desc").
		Offset(window.Offset).
		Limit(window.Limit).
		Find(&posts).Error
	if err != nil {
		return nil, pagination.Window{}, err
	}

	return posts, window, nil
}

// Index renders the front page feed: every post, newest first.
func (h *FeedHandler) Index(c *gin.Context) {
	posts, window, err := h.paginatePosts(c, func(db *gorm.DB) *gorm.DB {
		return db
	})
	if err != nil {
		c.HTML(http.StatusInternalServerError, "index.html", page(c, gin.H{"Error": "Failed to fetch posts"}))
		return
	}

	c.HTML(http.StatusOK, "index.html", page(c, gin.H{
		"Posts":   posts,
		"PageObj": window,
	}))
}

// GroupPosts renders the feed of one group, 404 for an unknown slug.
func (h *FeedHandler) GroupPosts(c *gin.Context) {
	slug := c.Param("slug")

	var group models.Group
	if err := h.db.Where("slug = ?", slug).First(&group).Error; err != nil {
		notFound(c)
		return
	}

	posts, window, err := h.paginatePosts(c, func(db *gorm.DB) *gorm.DB {
		return db.Where("group_id = ?", group.ID)
	})
	if err != nil {
		c.HTML(http.StatusInternalServerError, "group_list.html", page(c, gin.H{"Error": "Failed to fetch posts"}))
		return
	}

	c.HTML(http.StatusOK, "group_list.html", page(c, gin.H{
		"Group":   group,
		"Posts":   posts,
		"PageObj": window,
	}))
}

// FollowIndex renders the personalized feed: posts by every author the
// requester follows.
func (h *FeedHandler) FollowIndex(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		notFound(c)
		return
	}

	followed := h.db.Model(&models.Follow{}).
		Select("author_id").
		Where("user_id = ?", user.ID)

	posts, window, err := h.paginatePosts(c, func(db *gorm.DB) *gorm.DB {
		return db.Where("author_id IN (?)", followed)
	})
	if err != nil {
		c.HTML(http.StatusInternalServerError, "follow.html", page(c, gin.H{"Error": "Failed to fetch posts"}))
		return
	}

	c.HTML(http.StatusOK, "follow.html", page(c, gin.H{
		"Posts":   posts,
		"PageObj": window,
	}))
}
