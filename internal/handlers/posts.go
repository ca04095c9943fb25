package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yatube-project/backend/internal/media"
	"github.com/yatube-project/backend/internal/models"
)

type PostHandler struct {
	db    *gorm.DB
	media *media.Store
}

func NewPostHandler(db *gorm.DB, store *media.Store) *PostHandler {
	return &PostHandler{db: db, media: store}
}

// postForm is the compose/edit form payload. The image arrives as a
// separate multipart file part.
type postForm struct {
	Text  string `form:"text"`
	Group string `form:"group"`
}

// validate trims the payload and resolves the optional group. Field
// errors come back keyed by field name for the template.
func (h *PostHandler) validate(form *postForm) (*models.Group, map[string]string) {
	errors := map[string]string{}

	form.Text = strings.TrimSpace(form.Text)
	if form.Text == "" {
		errors["Text"] = "This field is required."
	}

	var group *models.Group
	if form.Group != "" {
		groupID, err := strconv.Atoi(form.Group)
		if err != nil {
			errors["Group"] = "Select a valid choice."
		} else {
			var g models.Group
			if err := h.db.First(&g, groupID).Error; err != nil {
				errors["Group"] = "Select a valid choice."
			} else {
				group = &g
			}
		}
	}

	if len(errors) > 0 {
		return nil, errors
	}
	return group, nil
}

func (h *PostHandler) groups() []models.Group {
	var groups []models.Group
	h.db.Order("title").Find(&groups)
	return groups
}

func (h *PostHandler) renderForm(c *gin.Context, status int, data gin.H) {
	data["Groups"] = h.groups()
	c.HTML(status, "post_create.html", page(c, data))
}

// Detail renders one post with its comments and the comment form.
func (h *PostHandler) Detail(c *gin.Context) {
	var post models.Post
	if err := h.db.Preload("Author").Preload("Group").First(&post, "id = ?", c.Param("id")).Error; err != nil {
		notFound(c)
		return
	}

	var comments []models.Comment
	h.db.Where("post_id = ?", post.ID).Preload("Author").Order("created_at desc").Find(&comments)

	user, _ := currentUser(c)

	c.HTML(http.StatusOK, "post_detail.html", page(c, gin.H{
		"Post":     post,
		"Comments": comments,
		"IsAuthor": post.AuthorID == user.ID,
	}))
}

// CreateForm renders the empty compose form.
func (h *PostHandler) CreateForm(c *gin.Context) {
	h.renderForm(c, http.StatusOK, gin.H{"IsEdit": false})
}

// Create persists a new post for the requester and redirects to their
// profile. Validation failures re-render the form without a mutation.
func (h *PostHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		notFound(c)
		return
	}

	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, http.StatusOK, gin.H{"IsEdit": false, "Errors": map[string]string{"Text": "Invalid form submission."}, "Form": form})
		return
	}

	group, errors := h.validate(&form)
	if errors != nil {
		h.renderForm(c, http.StatusOK, gin.H{"IsEdit": false, "Errors": errors, "Form": form})
		return
	}

	post := models.Post{
		Text:     form.Text,
		AuthorID: user.ID,
	}
	if group != nil {
		post.GroupID = &group.ID
	}

	if fh, err := c.FormFile("image"); err == nil {
		path, err := h.media.Save(fh)
		if err != nil {
			h.renderForm(c, http.StatusOK, gin.H{"IsEdit": false, "Errors": map[string]string{"Image": "Failed to store the image."}, "Form": form})
			return
		}
		post.Image = path
	}

	if err := h.db.Create(&post).Error; err != nil {
		h.renderForm(c, http.StatusOK, gin.H{"IsEdit": false, "Errors": map[string]string{"Text": "Failed to create post."}, "Form": form})
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", user.Username))
}

// EditForm renders the edit form. Anyone but the author lands on the
// detail page instead.
func (h *PostHandler) EditForm(c *gin.Context) {
	post, ok := h.ownPost(c)
	if !ok {
		return
	}

	form := postForm{Text: post.Text}
	if post.GroupID != nil {
		form.Group = strconv.Itoa(int(*post.GroupID))
	}

	h.renderForm(c, http.StatusOK, gin.H{"IsEdit": true, "Post": post, "Form": form})
}

// Edit mutates an existing post. Only the author gets this far; anyone
// else is redirected to the detail page with nothing changed.
func (h *PostHandler) Edit(c *gin.Context) {
	post, ok := h.ownPost(c)
	if !ok {
		return
	}

	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, http.StatusOK, gin.H{"IsEdit": true, "Post": post, "Errors": map[string]string{"Text": "Invalid form submission."}, "Form": form})
		return
	}

	group, errors := h.validate(&form)
	if errors != nil {
		h.renderForm(c, http.StatusOK, gin.H{"IsEdit": true, "Post": post, "Errors": errors, "Form": form})
		return
	}

	post.Text = form.Text
	post.GroupID = nil
	if group != nil {
		post.GroupID = &group.ID
	}

	if fh, err := c.FormFile("image"); err == nil {
		path, err := h.media.Save(fh)
		if err != nil {
			h.renderForm(c, http.StatusOK, gin.H{"IsEdit": true, "Post": post, "Errors": map[string]string{"Image": "Failed to store the image."}, "Form": form})
			return
		}
		post.Image = path
	}

	if err := h.db.Save(&post).Error; err != nil {
		h.renderForm(c, http.StatusOK, gin.H{"IsEdit": true, "Post": post, "Errors": map[string]string{"Text": "Failed to update post."}, "Form": form})
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
}

// ownPost loads the requested post and enforces the author-only edit
// rule: any other identity is silently redirected to the detail page.
func (h *PostHandler) ownPost(c *gin.Context) (models.Post, bool) {
	var post models.Post
	if err := h.db.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		notFound(c)
		return post, false
	}

	user, ok := currentUser(c)
	if !ok || post.AuthorID != user.ID {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
		c.Abort()
		return post, false
	}

	return post, true
}
