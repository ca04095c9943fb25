package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/yatube-project/backend/internal/config"
	"github.com/yatube-project/backend/internal/database"
	"github.com/yatube-project/backend/internal/models"
	"github.com/yatube-project/backend/internal/server"
)

func main() {
	createGroup := flag.String("create-group", "", `create a group ("slug:title:description") and exit`)
	flag.Parse()

	config.LoadEnv()

	// Apply the hard schema constraints before the ORM layer comes up.
	db, err := database.NewDatabase()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := db.Initialize(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	if err := db.Close(); err != nil {
		log.Printf("Failed to close bootstrap connection: %v", err)
	}

	// Groups are created administratively, not through the web surface.
	if *createGroup != "" {
		seedGroup(*createGroup)
		return
	}

	srv := server.NewServer()

	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	log.Println("Server stopped")
}

func seedGroup(spec string) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		log.Fatalf(`usage: -create-group "slug:title:description"`)
	}

	group := models.Group{Slug: parts[0], Title: parts[1]}
	if len(parts) == 3 {
		group.Description = parts[2]
	}

	svc := database.New()
	defer svc.Close()

	if err := svc.GetDB().Create(&group).Error; err != nil {
		log.Fatalf("Failed to create group: %v", err)
	}

	log.Printf("Group %q created", group.Slug)
}
