package server

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yatube-project/backend/internal/cache"
	"github.com/yatube-project/backend/internal/config"
	"github.com/yatube-project/backend/internal/database"
	"github.com/yatube-project/backend/internal/handlers"
	"github.com/yatube-project/backend/internal/media"
	"github.com/yatube-project/backend/internal/middleware"
	"github.com/yatube-project/backend/internal/templates"
)

type Server struct {
	db      database.Service
	handler *handlers.Handler
	pages   *cache.PageCache
	media   *media.Store
}

// NewServer wires the database, the media store, the page cache and the
// handlers into a configured http.Server.
func NewServer() *http.Server {
	db := database.New()

	store, err := media.NewStore(config.GetEnvDefault("MEDIA_ROOT", "media"))
	if err != nil {
		log.Fatalf("Failed to initialize media store: %v", err)
	}

	ttl := cache.DefaultTTL
	if raw := config.GetEnvDefault("CACHE_TTL", ""); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("Invalid CACHE_TTL %q: %v", raw, err)
		}
		ttl = parsed
	}

	newServer := NewWithDeps(db, store, cache.New(128, ttl))
	router := newServer.RegisterRoutes()

	port := config.GetEnvDefault("PORT", "8080")

	server := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("🚀 Server starting on port %s\n", port)
	fmt.Println("📝 Press Ctrl+C to stop the server")

	return server
}

// NewWithDeps builds a server around explicit collaborators. Tests use
// it to point the router at a throwaway database and media root.
func NewWithDeps(db database.Service, store *media.Store, pages *cache.PageCache) *Server {
	return &Server{
		db:      db,
		handler: handlers.NewHandler(db.GetDB(), store),
		pages:   pages,
		media:   store,
	}
}

// PageCache exposes the index page cache, mainly so operators and tests
// can clear it wholesale.
func (s *Server) PageCache() *cache.PageCache {
	return s.pages
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	tmpl := template.Must(template.New("").ParseFS(templates.FS, "*.html"))
	r.SetHTMLTemplate(tmpl)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	r.Use(middleware.CurrentUser(s.db.GetDB()))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	// Uploaded images
	r.Static("/media", s.media.Root())

	// Feeds (public)
	r.GET("/", s.pages.Middleware(), s.handler.Feed.Index)
	r.GET("/group/:slug/", s.handler.Feed.GroupPosts)
	r.GET("/profile/:username/", s.handler.Profile.Profile)
	r.GET("/posts/:id/", s.handler.Post.Detail)

	// Auth pages
	r.GET("/auth/signup/", s.handler.Auth.SignupForm)
	r.POST("/auth/signup/", s.handler.Auth.Signup)
	r.GET("/auth/login/", s.handler.Auth.LoginForm)
	r.POST("/auth/login/", s.handler.Auth.Login)
	r.GET("/auth/logout/", s.handler.Auth.Logout)

	// Protected pages (login redirect, not a JSON 401)
	protected := r.Group("")
	protected.Use(middleware.LoginRequired())
	{
		protected.GET("/create/", s.handler.Post.CreateForm)
		protected.POST("/create/", s.handler.Post.Create)
		protected.GET("/posts/:id/edit/", s.handler.Post.EditForm)
		protected.POST("/posts/:id/edit/", s.handler.Post.Edit)
		protected.POST("/posts/:id/comment/", s.handler.Comment.Add)
		protected.GET("/follow/", s.handler.Feed.FollowIndex)
		protected.GET("/profile/:username/follow/", s.handler.Profile.Follow)
		protected.GET("/profile/:username/unfollow/", s.handler.Profile.Unfollow)
	}

	// Everything else is a rendered 404
	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "404.html", gin.H{})
	})

	return r
}
