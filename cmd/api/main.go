package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/lotlister-backend/api/routes"
	"github.com/angelmondragon/lotlister-backend/internal/cards"
	"github.com/angelmondragon/lotlister-backend/internal/export"
	"github.com/angelmondragon/lotlister-backend/internal/grouping"
	"github.com/angelmondragon/lotlister-backend/internal/lots"
	"github.com/angelmondragon/lotlister-backend/pkg/config"
	"github.com/angelmondragon/lotlister-backend/pkg/db"
	"github.com/angelmondragon/lotlister-backend/pkg/logger"
	"github.com/angelmondragon/lotlister-backend/pkg/metrics"
	"github.com/angelmondragon/lotlister-backend/pkg/migrate"
	"github.com/angelmondragon/lotlister-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	exportMetrics := metrics.NewExportMetrics(prometheus.DefaultRegisterer)

	lotsService, err := lots.NewService(lots.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create lots service", err)
		os.Exit(1)
	}

	cardsService, err := cards.NewService(cards.NewRepository(dbClient.DB()), redisClient, cfg.Export.LotLockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cards service", err)
		os.Exit(1)
	}

	groupingService, err := grouping.NewService(grouping.NewRepository(dbClient.DB()), redisClient, exportMetrics, cfg.Export.LotLockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create grouping service", err)
		os.Exit(1)
	}

	exportService, err := export.NewService(export.NewRepository(dbClient.DB()), exportMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create export service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, routes.Services{
			Lots:     lotsService,
			Cards:    cardsService,
			Grouping: groupingService,
			Export:   exportService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
