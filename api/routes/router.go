package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/simplefs/catalog-backend/api/controllers"
	"github.com/simplefs/catalog-backend/api/middleware"
	"github.com/simplefs/catalog-backend/internal/catalog"
	"github.com/simplefs/catalog-backend/pkg/auth/session"
	"github.com/simplefs/catalog-backend/pkg/config"
	"github.com/simplefs/catalog-backend/pkg/db"
	"github.com/simplefs/catalog-backend/pkg/logger"
	"github.com/simplefs/catalog-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionManager *session.Manager,
	catalogService *catalog.Service,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ProductSearch(catalogService, logg))
		r.Get("/options", controllers.OptionsList(catalogService, logg))
	})

	r.Post("/auth", controllers.AuthLogin(sessionManager, cfg, logg))
	r.Delete("/auth", controllers.AuthLogout(sessionManager, cfg, logg))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Session, sessionManager, logg))
		r.Get("/items", controllers.AdminItems(catalogService, cfg.Search.AdminPageSize, logg))
	})

	return r
}
