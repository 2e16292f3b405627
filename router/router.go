// Package router wires the middleware chain and all HTTP routes.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/guestbook-hq/guestbook-backend/config"
	"github.com/guestbook-hq/guestbook-backend/handlers"
	"github.com/guestbook-hq/guestbook-backend/middleware"
)

// Dependencies holds everything SetupRouter needs to define routes.
type Dependencies struct {
	Config           *config.Config
	GuestbookHandler *handlers.GuestbookHandler
	UploadHandler    *handlers.UploadHandler
	HealthHandler    *handlers.HealthHandler
	Logger           *zap.SugaredLogger

	// LocalFilesDir, when non-empty, is served under /files so locally
	// stored attachments resolve. Empty when S3 storage is configured.
	LocalFilesDir string
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	// gin.New instead of gin.Default: request logging goes through the
	// injected zap logger rather than gin's plain-text writer.
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))
	r.Use(middleware.ModeratorCapability())

	r.GET("/health", deps.HealthHandler.Liveness)
	r.GET("/health/readiness", deps.HealthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if deps.LocalFilesDir != "" {
		r.Static("/files", deps.LocalFilesDir)
	}

	v1 := r.Group("/v1")
	{
		guestbook := v1.Group("/guestbook")
		{
			guestbook.GET("", deps.GuestbookHandler.ListEntries)
			guestbook.POST("", deps.GuestbookHandler.SubmitEntry)
			guestbook.POST("/validate/field", deps.GuestbookHandler.ValidateField)
			guestbook.POST("/validate/file", deps.GuestbookHandler.ValidateFile)

			moderation := guestbook.Group("")
			moderation.Use(middleware.RequireModerator())
			{
				moderation.GET("/:id", deps.GuestbookHandler.GetEntry)
				moderation.PUT("/:id", deps.GuestbookHandler.UpdateEntry)
				moderation.POST("/:id/delete", deps.GuestbookHandler.RequestDelete)
				moderation.POST("/:id/delete/confirm", deps.GuestbookHandler.ConfirmDelete)
				moderation.POST("/:id/delete/cancel", deps.GuestbookHandler.CancelDelete)
			}
		}

		v1.POST("/uploads", deps.UploadHandler.UploadFile)
	}

	return r
}
