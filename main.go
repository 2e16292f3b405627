package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guestbook-hq/guestbook-backend/config"
	"github.com/guestbook-hq/guestbook-backend/db"
	_ "github.com/guestbook-hq/guestbook-backend/docs"
	"github.com/guestbook-hq/guestbook-backend/handlers"
	"github.com/guestbook-hq/guestbook-backend/internal/store/postgres"
	"github.com/guestbook-hq/guestbook-backend/logger"
	"github.com/guestbook-hq/guestbook-backend/router"
	"github.com/guestbook-hq/guestbook-backend/services"
	"github.com/guestbook-hq/guestbook-backend/upload"
	"github.com/guestbook-hq/guestbook-backend/validation"
)

// @title        Guestbook API
// @version      1.0
// @description  Guestbook entry submission, validation, and moderation service.
// @BasePath     /v1
func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	pool, err := db.Connect(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	entryStore := postgres.NewEntryStore(pool)
	uploadStore := postgres.NewUploadStore(pool)

	var storage upload.FileStorage
	var localFilesDir string
	switch cfg.Upload.Backend {
	case "s3":
		storage, err = upload.NewS3Storage(
			cfg.Upload.S3AccountID,
			cfg.Upload.S3Bucket,
			cfg.Upload.S3AccessKeyID,
			cfg.Upload.S3SecretAccessKey,
		)
		if err != nil {
			log.Fatalf("Failed to initialize S3 storage: %v", err)
		}
	default:
		storage = upload.NewLocalStorage(cfg.Upload.Dir, cfg.Server.PublicBaseURL)
		localFilesDir = cfg.Upload.Dir
	}

	guard := upload.NewGuard(cfg.Validation, uploadStore, storage, cfg.Upload.TempDir)
	validator := validation.New(cfg.Validation)

	submissionService := services.NewSubmissionService(entryStore, guard, validator)
	moderationService := services.NewModerationService(entryStore)
	liveService := services.NewLiveValidationService(validator, guard)

	engine := router.SetupRouter(router.Dependencies{
		Config:           cfg,
		GuestbookHandler: handlers.NewGuestbookHandler(submissionService, moderationService, liveService),
		UploadHandler:    handlers.NewUploadHandler(guard, cfg.Validation),
		HealthHandler:    handlers.NewHealthHandler(pool, cfg.Server.Version),
		Logger:           log,
		LocalFilesDir:    localFilesDir,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}
	log.Info("Server exited")
}
