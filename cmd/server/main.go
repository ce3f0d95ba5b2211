package main

import (
	"context"
	"log"

	"github.com/gallerystudio/backend/internal/router"
	"github.com/gallerystudio/backend/pkg/config"
	"github.com/gallerystudio/backend/pkg/firebase"
	"github.com/gallerystudio/backend/pkg/storage"
	"github.com/gallerystudio/backend/validators"
	"github.com/labstack/echo/v4"

	"firebase.google.com/go/v4/auth"
)

func main() {
	cfg := config.Load()

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize data stores: %v", err)
	}
	defer db.CloseDB()

	var authClient *auth.Client
	if cfg.FirebaseCredentialsPath != "" {
		app, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Printf("Firebase init failed, firebase login disabled: %v", err)
		} else {
			authClient = app.AuthClient
		}
	} else {
		log.Println("No Firebase credentials configured, firebase login disabled.")
	}

	var objectStorage storage.ObjectStorage
	if cfg.S3Bucket != "" {
		s3Storage, err := storage.NewS3Storage(cfg.S3Region, cfg.S3Bucket)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		objectStorage = s3Storage
	} else {
		objectStorage = storage.NoopStorage{}
	}

	e := echo.New()
	e.Validator = validators.NewValidator()

	router.SetupMiddleware(e)
	router.SetupRoutes(e, db.Postgres, db.Redis, authClient, objectStorage)

	log.Printf("Starting server on port %s", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
