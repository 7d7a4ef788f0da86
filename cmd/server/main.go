package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/hxaxnxa/Image-to-React/config"
	"github.com/hxaxnxa/Image-to-React/internal/ai"
	"github.com/hxaxnxa/Image-to-React/internal/api"
	"github.com/hxaxnxa/Image-to-React/internal/preview"
	"github.com/hxaxnxa/Image-to-React/internal/publish"
	"github.com/hxaxnxa/Image-to-React/internal/store"
	"github.com/hxaxnxa/Image-to-React/pkg/logger"
)

func main() {
	// Load .env before viper so the API key is visible to config.
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		} else {
			log.Println("Info: .env file not found, relying on system environment variables.")
		}
	} else {
		log.Println("Info: Loaded environment variables from .env file.")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("Cannot init logger: %v", err)
	}

	// --- Dependency Initialization ---
	generator := ai.NewGenerator(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.ModelID, cfg.VisionModelID)
	uploads := store.NewMemoryStore()
	previews := preview.NewBuilder(preview.Config{
		SandboxDefineURL: cfg.SandboxDefineURL,
		SnackEmbedURL:    cfg.SnackEmbedURL,
		DartPadEmbedURL:  cfg.DartPadEmbedURL,
		DartPadURLBudget: cfg.DartPadURLBudget,
	})
	publisher := publish.NewPublisher(cfg.OutputDir)

	apiHandler := api.NewAPIHandler(generator, uploads, previews, publisher)

	// --- HTTP Server ---
	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
		logger.Info("Running in Gin Debug Mode")
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	api.RegisterRoutes(router, apiHandler)

	server := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: router,
		// Generation calls are slow; the write timeout has to cover a
		// full model round-trip.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Starting API server on %s", cfg.ServerAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("API server listen error: %s", err)
		}
		logger.Info("API server has stopped listening.")
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Infof("Received signal: %s. Shutting down server...", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("API server forced shutdown error: %v", err)
	} else {
		logger.Info("API server gracefully stopped.")
	}

	logger.Info("Application exiting.")
}
