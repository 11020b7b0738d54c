package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/penpalsapp/backend/internal/handlers"
	"github.com/penpalsapp/backend/internal/middleware"
	"github.com/penpalsapp/backend/internal/models"
	"github.com/penpalsapp/backend/internal/repositories"
	"github.com/penpalsapp/backend/internal/search"
	"github.com/penpalsapp/backend/internal/services"
	"github.com/penpalsapp/backend/pkg/config"
	"github.com/penpalsapp/backend/pkg/logger"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, vectorStore search.Store, cfg *config.Config) error {
	log := logger.Get()

	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.Account{},
		&models.Classroom{},
		&models.RelationEdge{},
		&models.FriendRequest{},
	)
	if err != nil {
		return err
	}
	log.Info("postgres auto-migrations completed")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Repositories ---
	accountRepo := repositories.NewPostgresAccountRepository(pgdb)
	classroomRepo := repositories.NewPostgresClassroomRepository(pgdb)
	relationRepo := repositories.NewPostgresRelationRepository(pgdb)
	friendRequestRepo := repositories.NewPostgresFriendRequestRepository(pgdb)
	notificationRepo := repositories.NewMongoNotificationRepository(mgClient.Database("penpals"))

	// --- Engine ---
	interestIndex := search.NewInterestIndex(vectorStore, classroomRepo, log)
	matchFinder := search.NewMatchFinder(vectorStore, classroomRepo, log)
	relationGraph := services.NewRelationGraphService(relationRepo, classroomRepo, log)
	friendRequests := services.NewFriendRequestService(friendRequestRepo, relationRepo, classroomRepo, notificationRepo, log)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/auth")
	authHandler := handlers.NewAuthHandler(accountRepo, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware())

	accountHandler := handlers.NewAccountHandler(accountRepo, classroomRepo, interestIndex)
	accountHandler.RegisterAccountRoutes(api)

	classroomHandler := handlers.NewClassroomHandler(classroomRepo, interestIndex, matchFinder)
	classroomHandler.RegisterClassroomRoutes(api)

	friendshipHandler := handlers.NewFriendshipHandler(relationGraph, friendRequests, classroomRepo)
	friendshipHandler.RegisterFriendshipRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	adminHandler := handlers.NewAdminHandler(interestIndex)
	adminHandler.RegisterAdminRoutes(api)

	log.Info("all routes configured", zap.String("port", cfg.Port))
	return nil
}
