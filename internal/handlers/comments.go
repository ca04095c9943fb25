package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yatube-project/backend/internal/models"
)

type CommentHandler struct {
	db *gorm.DB
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{db: db}
}

// Add attaches a comment to a post and redirects back to the detail
// page. An invalid submission redirects there too, without a mutation
// and without surfacing an error.
func (h *CommentHandler) Add(c *gin.Context) {
	var post models.Post
	if err := h.db.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		notFound(c)
		return
	}

	detail := fmt.Sprintf("/posts/%d/", post.ID)

	user, ok := currentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, detail)
		return
	}

	text := strings.TrimSpace(c.PostForm("text"))
	if text == "" {
		c.Redirect(http.StatusFound, detail)
		return
	}

	comment := models.Comment{
		Text:     text,
		PostID:   post.ID,
		AuthorID: user.ID,
	}

	// A storage failure follows the same silent-redirect contract as
	// invalid input; it is only logged.
	if err := h.db.Create(&comment).Error; err != nil {
		log.Printf("Failed to create comment on post %d: %v", post.ID, err)
	}

	c.Redirect(http.StatusFound, detail)
}
