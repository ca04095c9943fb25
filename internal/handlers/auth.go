package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yatube-project/backend/internal/auth"
	"github.com/yatube-project/backend/internal/models"
)

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

const sessionMaxAge = 72 * 3600 // matches the token lifetime

func (h *AuthHandler) setSession(c *gin.Context, user models.User) error {
	token, err := auth.GenerateToken(user)
	if err != nil {
		return err
	}
	c.SetCookie(auth.SessionCookie, token, sessionMaxAge, "/", "", false, true)
	return nil
}

// SignupForm renders the registration page.
func (h *AuthHandler) SignupForm(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", page(c, gin.H{}))
}

// Signup registers a user, logs them in and redirects to the index.
func (h *AuthHandler) Signup(c *gin.Context) {
	var form struct {
		Username string `form:"username"`
		Email    string `form:"email"`
		Password string `form:"password"`
	}
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "signup.html", page(c, gin.H{"Error": "Invalid form submission."}))
		return
	}

	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)

	if form.Username == "" || form.Email == "" || len(form.Password) < 6 {
		c.HTML(http.StatusOK, "signup.html", page(c, gin.H{
			"Error": "Username, email and a password of at least 6 characters are required.",
			"Form":  form,
		}))
		return
	}

	var existing models.User
	if err := h.db.Where("username = ? OR email = ?", form.Username, form.Email).First(&existing).Error; err == nil {
		c.HTML(http.StatusOK, "signup.html", page(c, gin.H{
			"Error": "Username or email already exists.",
			"Form":  form,
		}))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "signup.html", page(c, gin.H{"Error": "Failed to register."}))
		return
	}

	user := models.User{
		Username: form.Username,
		Email:    form.Email,
		Password: string(hashed),
	}

	if err := h.db.Create(&user).Error; err != nil {
		c.HTML(http.StatusInternalServerError, "signup.html", page(c, gin.H{"Error": "Failed to register."}))
		return
	}

	if err := h.setSession(c, user); err != nil {
		c.HTML(http.StatusInternalServerError, "signup.html", page(c, gin.H{"Error": "Failed to start session."}))
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// LoginForm renders the login page, carrying the next target through.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", page(c, gin.H{"Next": c.Query("next")}))
}

// Login authenticates by username and password and redirects to the
// next target, defaulting to the index.
func (h *AuthHandler) Login(c *gin.Context) {
	var form struct {
		Username string `form:"username"`
		Password string `form:"password"`
		Next     string `form:"next"`
	}
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "login.html", page(c, gin.H{"Error": "Invalid form submission.", "Next": ""}))
		return
	}

	var user models.User
	if err := h.db.Where("username = ?", strings.TrimSpace(form.Username)).First(&user).Error; err != nil {
		c.HTML(http.StatusOK, "login.html", page(c, gin.H{"Error": "Invalid credentials.", "Next": form.Next}))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(form.Password)); err != nil {
		c.HTML(http.StatusOK, "login.html", page(c, gin.H{"Error": "Invalid credentials.", "Next": form.Next}))
		return
	}

	if err := h.setSession(c, user); err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", page(c, gin.H{"Error": "Failed to start session."}))
		return
	}

	c.Redirect(http.StatusFound, safeNext(form.Next))
}

// Logout clears the session cookie and redirects to the index.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// safeNext keeps the post-login redirect on this site. Backslashes are
// rejected too: browsers normalize "/\host" to "//host".
func safeNext(next string) string {
	if decoded, err := url.QueryUnescape(next); err == nil {
		next = decoded
	}
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, `/\`) {
		return next
	}
	return "/"
}
