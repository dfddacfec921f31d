package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tailorline/storefront/api/controllers"
	"github.com/tailorline/storefront/api/middleware"
	"github.com/tailorline/storefront/internal/admin"
	"github.com/tailorline/storefront/internal/catalog"
	"github.com/tailorline/storefront/internal/contact"
	"github.com/tailorline/storefront/internal/orders"
	"github.com/tailorline/storefront/internal/subscribers"
	"github.com/tailorline/storefront/internal/tailoring"
	"github.com/tailorline/storefront/pkg/config"
	"github.com/tailorline/storefront/pkg/logger"
	"github.com/tailorline/storefront/pkg/metrics"
	pkgredis "github.com/tailorline/storefront/pkg/redis"
)

// Deps is everything the router hands to controllers and middleware.
// Nil stores disable idempotency and rate limiting.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          controllers.Pinger
	Redis       controllers.Pinger
	Idempotency pkgredis.IdempotencyStore
	RateLimiter pkgredis.RateLimiter
	Gatherer    prometheus.Gatherer
	HTTPMetrics *metrics.HTTPMetrics
	UploadDir   string

	Catalog     catalog.Service
	Orders      orders.Service
	Tailoring   tailoring.Service
	Subscribers subscribers.Service
	Contact     contact.Service
	Admin       admin.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.HTTPMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	limits := cfg.RateLimit
	subscribePolicy := middleware.NewRateLimitPolicy("subscribe", limits.SubscribeWindow, limits.SubscribeIPLimit, limits.SubscribeEmailLimit)
	contactPolicy := middleware.NewRateLimitPolicy("contact", limits.ContactWindow, limits.ContactIPLimit, 0)
	loginPolicy := middleware.NewRateLimitPolicy("admin_login", limits.LoginWindow, limits.LoginIPLimit, 0)
	trackPolicy := middleware.NewRateLimitPolicy("track", limits.TrackWindow, limits.TrackIPLimit, 0)
	rateLimit := func(p middleware.RateLimitPolicy) func(http.Handler) http.Handler {
		return middleware.RateLimit(p, d.RateLimiter, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, map[string]controllers.Pinger{"db": d.DB, "redis": d.Redis}, logg))
	})

	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	if d.UploadDir != "" {
		prefix := cfg.Storage.PublicPrefix
		if prefix == "" {
			prefix = "/storage"
		}
		fs := http.StripPrefix(prefix+"/", http.FileServer(http.Dir(d.UploadDir)))
		r.Handle(prefix+"/*", fs)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(d.Catalog, logg))
			r.Get("/{productId}", controllers.GetProduct(d.Catalog, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.With(middleware.Idempotency(d.Idempotency, cfg.Idempotency.OrderTTL, logg)).
				Post("/", controllers.CreateOrder(d.Orders, logg))
			r.With(rateLimit(trackPolicy)).Get("/track", controllers.TrackOrder(d.Orders, logg))
		})

		r.Post("/custom-tailoring", controllers.SubmitTailoring(d.Tailoring, cfg.Storage.MaxUploadBytes(), logg))

		subscribe := controllers.Subscribe(d.Subscribers, logg)
		r.With(rateLimit(subscribePolicy)).Post("/subscribers", subscribe)
		r.With(rateLimit(subscribePolicy)).Post("/subscribe", subscribe)

		r.With(rateLimit(contactPolicy)).Post("/contact", controllers.SendContact(d.Contact, logg))

		r.Route("/admin", func(r chi.Router) {
			r.With(rateLimit(loginPolicy)).Post("/login", controllers.AdminLogin(d.Admin, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminAuth(d.Admin, logg))
				r.Get("/orders", controllers.AdminListOrders(d.Orders, logg))
				r.With(middleware.Idempotency(d.Idempotency, cfg.Idempotency.OrderTTL, logg)).
					Put("/orders/{orderId}", controllers.AdminUpdateOrderStatus(d.Orders, logg))
				r.Get("/subscribers", controllers.AdminListSubscribers(d.Subscribers, logg))
			})
		})
	})

	return r
}
