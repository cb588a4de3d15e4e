package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Sum1ght/schand/api/routes"
	"github.com/Sum1ght/schand/internal/addresses"
	"github.com/Sum1ght/schand/internal/auth"
	"github.com/Sum1ght/schand/internal/collects"
	"github.com/Sum1ght/schand/internal/help"
	"github.com/Sum1ght/schand/internal/likes"
	"github.com/Sum1ght/schand/internal/listings"
	"github.com/Sum1ght/schand/internal/orders"
	"github.com/Sum1ght/schand/internal/users"
	"github.com/Sum1ght/schand/pkg/config"
	"github.com/Sum1ght/schand/pkg/db"
	"github.com/Sum1ght/schand/pkg/logger"
	"github.com/Sum1ght/schand/pkg/metrics"
	"github.com/Sum1ght/schand/pkg/migrate"
	"github.com/Sum1ght/schand/pkg/redis"
	"github.com/Sum1ght/schand/pkg/storage"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	fileStore, err := storage.NewDiskStore(cfg.Storage)
	if err != nil {
		logg.Error(context.Background(), "failed to create file store", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	usersRepo := users.NewRepository(gormDB)
	listingsRepo := listings.NewRepository(gormDB)
	likesRepo := likes.NewRepository(gormDB)
	collectsRepo := collects.NewRepository(gormDB)
	ordersRepo := orders.NewRepository(gormDB)
	addressesRepo := addresses.NewRepository(gormDB)
	helpRepo := help.NewRepository(gormDB)

	authService, err := auth.NewService(auth.ServiceParams{
		Users:    usersRepo,
		JWT:      cfg.JWT,
		Password: cfg.Password,
	})
	exitOnError(logg, "failed to create auth service", err)

	usersService, err := users.NewService(usersRepo)
	exitOnError(logg, "failed to create user service", err)

	listingsService, err := listings.NewService(listings.ServiceParams{
		ListingRepo: listingsRepo,
		Likes:       likesRepo,
		Collects:    collectsRepo,
		Sellers:     usersRepo,
	})
	exitOnError(logg, "failed to create listing service", err)

	likesService, err := likes.NewService(likesRepo, listingsRepo)
	exitOnError(logg, "failed to create like service", err)

	collectsService, err := collects.NewService(collectsRepo, listingsRepo)
	exitOnError(logg, "failed to create collect service", err)

	ordersService, err := orders.NewService(orders.ServiceParams{
		OrderRepo: ordersRepo,
		Tx:        dbClient,
		Listings:  listingsRepo,
		Addresses: addressesRepo,
		Buyers:    usersRepo,
	})
	exitOnError(logg, "failed to create order service", err)

	addressesService, err := addresses.NewService(addressesRepo)
	exitOnError(logg, "failed to create address service", err)

	helpService, err := help.NewService(helpRepo)
	exitOnError(logg, "failed to create help service", err)

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

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
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, fileStore, httpMetrics, routes.Services{
			Auth:      authService,
			Users:     usersService,
			Listings:  listingsService,
			Likes:     likesService,
			Collects:  collectsService,
			Orders:    ordersService,
			Addresses: addressesService,
			Help:      helpService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func exitOnError(logg *logger.Logger, msg string, err error) {
	if err != nil {
		logg.Error(context.Background(), msg, err)
		os.Exit(1)
	}
}
