package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/tailorline/storefront/api"
	"github.com/tailorline/storefront/api/routes"
	"github.com/tailorline/storefront/internal/admin"
	"github.com/tailorline/storefront/internal/catalog"
	"github.com/tailorline/storefront/internal/contact"
	"github.com/tailorline/storefront/internal/orders"
	"github.com/tailorline/storefront/internal/subscribers"
	"github.com/tailorline/storefront/internal/tailoring"
	"github.com/tailorline/storefront/pkg/config"
	"github.com/tailorline/storefront/pkg/db"
	"github.com/tailorline/storefront/pkg/logger"
	"github.com/tailorline/storefront/pkg/metrics"
	"github.com/tailorline/storefront/pkg/migrate"
	"github.com/tailorline/storefront/pkg/redis"
	"github.com/tailorline/storefront/pkg/storage/local"
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)

	requireResource(ctx, logg, "dev migrations", migrate.MaybeRunDev(ctx, cfg, logg, dbClient))

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	requireResource(ctx, logg, "redis", err)

	images, err := local.New(cfg.Storage, logg)
	requireResource(ctx, logg, "upload storage", err)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	storeMetrics := metrics.NewStoreMetrics(registry)

	conn := dbClient.DB()

	catalogSvc, err := catalog.NewService(catalog.NewRepository(conn))
	requireResource(ctx, logg, "catalog service", err)

	ordersSvc, err := orders.NewService(orders.ServiceParams{
		Repo:    orders.NewRepository(conn),
		Logger:  logg,
		Metrics: storeMetrics,
	})
	requireResource(ctx, logg, "orders service", err)

	tailoringSvc, err := tailoring.NewService(tailoring.ServiceParams{
		Repo:    tailoring.NewRepository(conn),
		Images:  images,
		Logger:  logg,
		Metrics: storeMetrics,
	})
	requireResource(ctx, logg, "tailoring service", err)

	subscribersSvc, err := subscribers.NewService(subscribers.NewRepository(conn), logg, storeMetrics)
	requireResource(ctx, logg, "subscribers service", err)

	contactSvc, err := contact.NewService(conn, logg)
	requireResource(ctx, logg, "contact service", err)

	adminSvc, err := admin.NewService(admin.ServiceParams{Config: cfg.Admin, Logger: logg})
	requireResource(ctx, logg, "admin service", err)

	handler := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		DB:          dbClient,
		Redis:       redisClient,
		Idempotency: redisClient,
		RateLimiter: redisClient,
		Gatherer:    registry,
		HTTPMetrics: metrics.NewHTTPMetrics(registry),
		UploadDir:   images.Dir(),
		Catalog:     catalogSvc,
		Orders:      ordersSvc,
		Tailoring:   tailoringSvc,
		Subscribers: subscribersSvc,
		Contact:     contactSvc,
		Admin:       adminSvc,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "db_driver": cfg.DB.Driver})

	server := api.NewServer(":"+port, handler, logg, redisClient, dbClient)
	if err := server.Run(ctx); err != nil {
		logg.Error(ctx, "api server stopped with errors", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, "resource not working: "+resource, err)
	os.Exit(1)
}
