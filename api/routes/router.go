package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Sum1ght/schand/api/controllers"
	"github.com/Sum1ght/schand/api/middleware"
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
	"github.com/Sum1ght/schand/pkg/enums"
	"github.com/Sum1ght/schand/pkg/logger"
	"github.com/Sum1ght/schand/pkg/metrics"
	"github.com/Sum1ght/schand/pkg/redis"
	"github.com/Sum1ght/schand/pkg/storage"
)

// Services bundles everything the router hands to controllers.
type Services struct {
	Auth      auth.Service
	Users     users.Service
	Listings  listings.Service
	Likes     likes.Service
	Collects  collects.Service
	Orders    orders.Service
	Addresses addresses.Service
	Help      help.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	fileStore *storage.DiskStore,
	httpMetrics *metrics.HTTPMetrics,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(svcs.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, logg)).Post("/password", controllers.AuthUpdatePassword(svcs.Auth, logg))
	})

	// Storefront routes. The detail page accepts anonymous traffic but
	// resolves per-viewer flags when a token is presented.
	r.Route("/api/v1/front", func(r chi.Router) {
		r.Get("/listings", controllers.ListingFrontList(svcs.Listings, logg))
		r.With(middleware.OptionalAuth(cfg.JWT, logg)).Get("/listings/{listingId}", controllers.ListingDetail(svcs.Listings, logg))
		r.Get("/help", controllers.HelpList(svcs.Help, logg))
		r.Get("/help/{articleId}", controllers.HelpGet(svcs.Help, logg))
	})

	r.Get("/api/v1/files/{fileName}", controllers.FileDownload(fileStore, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Post("/files", controllers.FileUpload(fileStore, cfg.Storage, logg))

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", controllers.UserMe(svcs.Users, logg))
			r.Get("/{userId}", controllers.UserGet(svcs.Users, logg))
			r.Put("/{userId}", controllers.UserUpdate(svcs.Users, logg))
		})

		r.Route("/listings", func(r chi.Router) {
			r.Get("/", controllers.ListingList(svcs.Listings, logg))
			r.Get("/all", controllers.ListingListAll(svcs.Listings, logg))
			r.Post("/", controllers.ListingCreate(svcs.Listings, logg))
			r.Put("/{listingId}", controllers.ListingUpdate(svcs.Listings, logg))
			r.Delete("/{listingId}", controllers.ListingDelete(svcs.Listings, logg))
			r.Post("/batch-delete", controllers.ListingDeleteBatch(svcs.Listings, logg))
			r.Post("/{listingId}/like", controllers.LikeToggle(svcs.Likes, logg))
			r.Post("/{listingId}/collect", controllers.CollectToggle(svcs.Collects, logg))
		})

		r.Route("/collects", func(r chi.Router) {
			r.Get("/", controllers.CollectList(svcs.Collects, logg))
			r.Delete("/{collectId}", controllers.CollectDelete(svcs.Collects, logg))
			r.Post("/batch-delete", controllers.CollectDeleteBatch(svcs.Collects, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(svcs.Orders, logg))
			r.Post("/", controllers.OrderCreate(svcs.Orders, logg))
			r.Get("/by-no", controllers.OrderGetByNo(svcs.Orders, logg))
			r.Get("/sales", controllers.OrderSaleList(svcs.Orders, logg))
			r.Get("/{orderId}", controllers.OrderGet(svcs.Orders, logg))
			r.Put("/{orderId}/status", controllers.OrderUpdateStatus(svcs.Orders, logg))
			r.Delete("/{orderId}", controllers.OrderDelete(svcs.Orders, logg))
			r.Post("/batch-delete", controllers.OrderDeleteBatch(svcs.Orders, logg))
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Get("/", controllers.AddressList(svcs.Addresses, logg))
			r.Post("/", controllers.AddressCreate(svcs.Addresses, logg))
			r.Get("/{addressId}", controllers.AddressGet(svcs.Addresses, logg))
			r.Put("/{addressId}", controllers.AddressUpdate(svcs.Addresses, logg))
			r.Delete("/{addressId}", controllers.AddressDelete(svcs.Addresses, logg))
			r.Post("/batch-delete", controllers.AddressDeleteBatch(svcs.Addresses, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleAdmin, logg))

			r.Get("/users", controllers.UserList(svcs.Users, logg))
			r.Delete("/users/{userId}", controllers.UserDelete(svcs.Users, logg))
			r.Post("/users/batch-delete", controllers.UserDeleteBatch(svcs.Users, logg))

			r.Get("/charts/daily", controllers.OrderDailyChart(svcs.Orders, logg))
			r.Get("/charts/buyers", controllers.OrderBuyerChart(svcs.Orders, logg))

			r.Post("/help", controllers.HelpCreate(svcs.Help, logg))
			r.Put("/help/{articleId}", controllers.HelpUpdate(svcs.Help, logg))
			r.Delete("/help/{articleId}", controllers.HelpDelete(svcs.Help, logg))
			r.Post("/help/batch-delete", controllers.HelpDeleteBatch(svcs.Help, logg))

			r.Delete("/files/{fileName}", controllers.FileDelete(fileStore, logg))
		})
	})

	return r
}
