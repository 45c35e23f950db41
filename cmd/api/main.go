package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rahulvarma/bazaarly-backend/api/routes"
	"github.com/rahulvarma/bazaarly-backend/internal/cart"
	"github.com/rahulvarma/bazaarly-backend/internal/merchants"
	"github.com/rahulvarma/bazaarly-backend/internal/products"
	"github.com/rahulvarma/bazaarly-backend/internal/recommend"
	"github.com/rahulvarma/bazaarly-backend/internal/wishlist"
	"github.com/rahulvarma/bazaarly-backend/pkg/config"
	"github.com/rahulvarma/bazaarly-backend/pkg/db"
	"github.com/rahulvarma/bazaarly-backend/pkg/logger"
	"github.com/rahulvarma/bazaarly-backend/pkg/metrics"
	"github.com/rahulvarma/bazaarly-backend/pkg/migrate"
	"github.com/rahulvarma/bazaarly-backend/pkg/redis"
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

	sideMetrics := metrics.NewSideWriteMetrics(prometheus.DefaultRegisterer)

	merchantsRepo := merchants.NewRepository(dbClient.DB())
	enricher, err := merchants.NewEnricher(merchantsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create merchant enricher", err)
		os.Exit(1)
	}
	counters, err := merchants.NewCounters(merchantsRepo, logg, sideMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create merchant counters", err)
		os.Exit(1)
	}

	recommendService, err := recommend.NewService(recommend.NewRepository(dbClient.DB()), logg, cfg.Catalog)
	if err != nil {
		logg.Error(context.Background(), "failed to create recommendation service", err)
		os.Exit(1)
	}

	productsRepo := products.NewRepository(dbClient.DB())
	productService, err := products.NewService(productsRepo, enricher, recommendService, redisClient, logg, cfg.Catalog)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}
	authoringService, err := products.NewAuthoring(productsRepo, merchantsRepo, counters)
	if err != nil {
		logg.Error(context.Background(), "failed to create authoring service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.NewRepository(dbClient.DB()), productsRepo, cfg.Cart)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	wishlistService, err := wishlist.NewService(wishlist.NewRepository(dbClient.DB()), productsRepo, enricher)
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
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
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			productService,
			authoringService,
			cartService,
			wishlistService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
