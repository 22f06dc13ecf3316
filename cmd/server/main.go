package main

import (
	"context"
	"log"

	firebaseAuth "firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/nkiselev/microfeed/backend/internal/router"
	"github.com/nkiselev/microfeed/backend/pkg/config"
	"github.com/nkiselev/microfeed/backend/pkg/firebase"
	"github.com/nkiselev/microfeed/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase when credentials are configured; local JWT auth
	// works without it
	var authClient *firebaseAuth.Client
	if cfg.FirebaseCredentialsPath != "" {
		ctx := context.Background()
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		authClient = firebaseApp.AuthClient
	} else {
		log.Println("Firebase credentials not configured, firebase-login disabled.")
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, authClient, cfg.PageSize)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
