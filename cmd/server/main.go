package main

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Desco-devs/desco-asset-management-sub005/internal/MinIO"
	"github.com/Desco-devs/desco-asset-management-sub005/internal/config"
	"github.com/Desco-devs/desco-asset-management-sub005/internal/handler/assetHandler"
	"github.com/Desco-devs/desco-asset-management-sub005/internal/handler/maintenanceHandler"
	"github.com/Desco-devs/desco-asset-management-sub005/internal/handler/referenceHandler"
	"github.com/Desco-devs/desco-asset-management-sub005/internal/realtime"
	"github.com/Desco-devs/desco-asset-management-sub005/internal/repository/assetRepo"
	"github.com/Desco-devs/desco-asset-management-sub005/internal/repository/maintenanceRepo"
	"github.com/Desco-devs/desco-asset-management-sub005/internal/repository/referenceRepo"
	"github.com/Desco-devs/desco-asset-management-sub005/internal/service/assetService"
	"github.com/Desco-devs/desco-asset-management-sub005/internal/service/partsService"
	"github.com/Desco-devs/desco-asset-management-sub005/pkg/database/postgres"
	"github.com/Desco-devs/desco-asset-management-sub005/pkg/database/redis"
	"github.com/Desco-devs/desco-asset-management-sub005/pkg/logger"
	"github.com/Desco-devs/desco-asset-management-sub005/pkg/middleware"
)

func main() {
	ctx := context.Background()
	ctx, _ = logger.New(ctx)
	log := logger.GetLogger(ctx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config", zap.Error(err))
	}

	pool, err := postgres.New(ctx, cfg.Postgres)
	if err != nil {
		log.Fatal("Error connecting to postgres", zap.Error(err))
	}
	defer pool.Close()

	storage, err := MinIO.New(ctx, cfg.MinIO)
	if err != nil {
		log.Fatal("Error connecting to MinIO", zap.Error(err))
	}

	notifier := realtime.New(redis.New(cfg.Redis))

	assetSvc := assetService.New(
		assetRepo.New(pool),
		partsService.New(storage),
		storage,
		notifier,
	)

	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))
	r.Use(middleware.RequestLogger(log))

	api := r.Group("/api")
	assetHandler.New(assetSvc).Register(api)
	referenceHandler.New(referenceRepo.New(pool), notifier).Register(api)
	maintenanceHandler.New(maintenanceRepo.New(pool), notifier).Register(api)

	log.Info("asset-management server starting", zap.String("port", cfg.HTTPPort))
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
