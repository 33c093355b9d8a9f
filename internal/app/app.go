package app

import (
	"fmt"

	"mediavault/internal/config"
	"mediavault/internal/database"
	"mediavault/internal/gallery"
	"mediavault/internal/handlers"
	"mediavault/internal/logger"
	"mediavault/internal/middleware"
	"mediavault/internal/repositories"
	"mediavault/internal/routes"
	"mediavault/internal/services"
	"mediavault/internal/storage"
	"mediavault/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate metadata relations", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	folderRepo := repositories.NewFolderRepository(gormDB)
	mediaRepo := repositories.NewMediaRepository(gormDB)

	folderService := services.NewFolderService(folderRepo, mediaRepo, storageInstance)
	mediaService := services.NewMediaService(mediaRepo, storageInstance)
	uploadService := services.NewUploadService(mediaRepo, folderRepo, storageInstance, services.UploadConfig{
		MaxImageSize: cfg.Upload.MaxImageSize,
		MaxVideoSize: cfg.Upload.MaxVideoSize,
	})

	views := gallery.NewRegistry(gallery.Services{
		Folders: folderService,
		Media:   mediaService,
		Uploads: uploadService,
	})

	base := handlers.NewBaseHandler(validator.New())
	appHandlers := &handlers.AppHandlers{
		FolderHandler:  handlers.NewFolderHandler(base, folderService, views),
		MediaHandler:   handlers.NewMediaHandler(base, mediaService, views),
		GalleryHandler: handlers.NewGalleryHandler(base, views),
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())

	routes.RegisterRoutes(ginRouter, appHandlers)

	// Local storage has no external CDN; serve blobs from the base path.
	if cfg.Storage.Type == "local" && cfg.Storage.BaseURL != "" {
		ginRouter.Static(cfg.Storage.BaseURL, cfg.Storage.BasePath)
	}

	return ginRouter
}
