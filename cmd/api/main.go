package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-marketplace-backend/config"
	_ "go-marketplace-backend/docs" // Important for Swagger
	v1 "go-marketplace-backend/internal/delivery/http/v1"
	"go-marketplace-backend/internal/repository/postgres"
	"go-marketplace-backend/internal/usecase"
	"go-marketplace-backend/pkg/auth"
	"go-marketplace-backend/pkg/database"
	"go-marketplace-backend/pkg/logger"
	"go-marketplace-backend/pkg/redis"
	"go-marketplace-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// @title           Marketplace Backend API
// @version         1.0
// @description     Backend for a freelance job marketplace using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting marketplace backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (rate limiting; app runs with in-memory fallback without it)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	categoryRepo := postgres.NewCategoryRepository(dbPool)
	skillRepo := postgres.NewSkillRepository(dbPool)

	// 6. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	authUC := usecase.NewAuthUsecase(userRepo, tokens, validate)
	profileUC := usecase.NewProfileUsecase(profileRepo, validate)
	jobUC := usecase.NewJobUsecase(jobRepo, categoryRepo, skillRepo)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo)
	taxonomyUC := usecase.NewTaxonomyUsecase(categoryRepo, skillRepo)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		ProfileUC:     profileUC,
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		TaxonomyUC:    taxonomyUC,
		Tokens:        tokens,
		Config:        cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exited")
}
