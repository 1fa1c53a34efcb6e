package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adotefacil/service-adoption/internal/application"
	"github.com/adotefacil/service-adoption/internal/breedapi"
	"github.com/adotefacil/service-adoption/internal/config"
	"github.com/adotefacil/service-adoption/internal/events"
	"github.com/adotefacil/service-adoption/internal/handler"
	"github.com/adotefacil/service-adoption/internal/repository"
	"github.com/adotefacil/service-adoption/pkg/auth"
	"github.com/adotefacil/service-adoption/pkg/database"
	"github.com/adotefacil/service-adoption/pkg/health"
	"github.com/adotefacil/service-adoption/pkg/kafka"
	"github.com/adotefacil/service-adoption/pkg/logger"
	"github.com/adotefacil/service-adoption/pkg/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-adoption")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-adoption",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(&repository.AnimalModel{}, &repository.OwnershipModel{}, &repository.UserModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), cfg.MigrationsDir, log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(
		cfg.JWTConfig.Secret,
		cfg.JWTConfig.AccessTTL,
		cfg.JWTConfig.RefreshTTL,
	)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize repositories
	animalRepo := repository.NewGormAnimalRepository(db)
	userRepo := repository.NewGormUserRepository(db)

	// Initialize external breed catalogs
	dogSource := breedapi.New(breedapi.Config{
		Name:    "thedogapi",
		BaseURL: cfg.DogAPI.BaseURL,
		APIKey:  cfg.DogAPI.APIKey,
		Timeout: cfg.DogAPI.Timeout,
	})
	catSource := breedapi.New(breedapi.Config{
		Name:    "thecatapi",
		BaseURL: cfg.CatAPI.BaseURL,
		APIKey:  cfg.CatAPI.APIKey,
		Timeout: cfg.CatAPI.Timeout,
	})

	// Initialize application services
	animalService := application.NewAnimalService(animalRepo, kafkaProducer, log)
	searchService := application.NewSearchService(animalRepo, log, dogSource, catSource)
	userService := application.NewUserService(userRepo, kafkaProducer, log)
	authService := application.NewAuthService(userRepo, jwtManager, log)

	// Initialize and start user event consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	userConsumer := events.NewUserEventConsumer(
		cfg.KafkaConfig.Brokers,
		cfg.KafkaConfig.ConsumerGroup,
		animalService,
		log,
	)
	defer func() { _ = userConsumer.Close() }()

	go func() {
		log.Info("starting user event consumer")
		if err := userConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("user event consumer error", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	animalHandler := handler.NewAnimalHandler(animalService)
	searchHandler := handler.NewSearchHandler(searchService)
	userHandler := handler.NewUserHandler(userService, authService)
	adminHandler := handler.NewAdminHandler(animalService, userService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-adoption")
	healthHandler.RegisterRoutes(router)

	// Register routes
	animalHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	searchHandler.RegisterRoutes(&router.RouterGroup)
	userHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	adminHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-adoption...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-adoption stopped")
}
