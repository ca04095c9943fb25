package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yatube-project/backend/internal/auth"
	"github.com/yatube-project/backend/internal/models"
)

// CurrentUser resolves the session cookie into a user and stores it on
// the context. Anonymous requests pass through untouched.
func CurrentUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(auth.SessionCookie)
		if err == nil && tokenString != "" {
			if userID, err := auth.ParseToken(tokenString); err == nil {
				var user models.User
				if err := db.First(&user, userID).Error; err == nil {
					c.Set("user_id", user.ID)
					c.Set("user", user)
				}
			}
		}
		c.Next()
	}
}

// LoginRequired redirects anonymous requests to the login page with a
// next parameter pointing back at the requested path.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get("user_id"); !exists {
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, "/auth/login/?next="+next)
			c.Abort()
			return
		}
		c.Next()
	}
}
