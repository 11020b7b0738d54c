package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/penpalsapp/backend/internal/router"
	"github.com/penpalsapp/backend/internal/search"
	"github.com/penpalsapp/backend/pkg/config"
	"github.com/penpalsapp/backend/pkg/logger"
	"github.com/penpalsapp/backend/pkg/vector"
	"github.com/penpalsapp/backend/validators"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	cfg := config.Load()

	if err := logger.Init(cfg.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zlog := logger.Get()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		zlog.Fatal("failed to initialize databases", zap.Error(err))
	}
	defer db.CloseDB()

	// Initialize the vector collaborator
	weaviateClient, err := vector.NewClient(cfg.WeaviateURL)
	if err != nil {
		zlog.Fatal("failed to create weaviate client", zap.Error(err))
	}
	if err := vector.EnsureSchema(context.Background(), weaviateClient); err != nil {
		zlog.Fatal("failed to ensure weaviate schema", zap.Error(err))
	}
	vectorStore := search.NewWeaviateStore(weaviateClient)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db.Postgres, db.Mongo, vectorStore, cfg); err != nil {
		zlog.Fatal("failed to set up routes", zap.Error(err))
	}

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
