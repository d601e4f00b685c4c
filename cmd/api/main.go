package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/memegallery/api/internal/api"
	"github.com/memegallery/api/internal/config"
	"github.com/memegallery/api/internal/logger"
	"github.com/memegallery/api/internal/repository"
	"github.com/memegallery/api/internal/service"
	"github.com/memegallery/api/internal/storage"
)

func main() {
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog := logger.New(&logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		File:        cfg.Log.File,
		ServiceName: "meme-gallery",
	})
	logger.SetDefault(appLog)

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize database")
	}

	memeRepo := repository.NewMemeRepository(db)
	memeService := service.NewMemeService(memeRepo, appLog)

	// Object storage is optional: the CRUD core runs with only a database,
	// the upload route then responds 503.
	var objectStorage storage.ObjectStorage
	if cfg.Storage.Bucket != "" {
		s3Store, err := storage.New(&storage.Config{
			Endpoint:  cfg.Storage.Endpoint,
			Region:    cfg.Storage.Region,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			UseSSL:    cfg.Storage.UseSSL,
			Bucket:    cfg.Storage.Bucket,
			PublicURL: cfg.Storage.PublicURL,
		})
		if err != nil {
			appLog.WithError(err).Fatal("Failed to initialize object storage")
		}
		if err := s3Store.EnsureBucket(context.Background()); err != nil {
			appLog.WithError(err).Fatal("Failed to ensure storage bucket")
		}
		objectStorage = s3Store
	} else {
		appLog.Warn("No storage bucket configured, image upload disabled")
	}

	router := api.SetupRouter(memeService, objectStorage, db, cfg, appLog)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		appLog.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.WithError(err).Fatal("Server forced to shutdown")
	}

	appLog.Info("Server exited")
}
