package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mediastash/mediastash-backend/api/controllers"
	"github.com/mediastash/mediastash-backend/api/middleware"
	"github.com/mediastash/mediastash-backend/internal/media"
	"github.com/mediastash/mediastash-backend/internal/supporters"
	"github.com/mediastash/mediastash-backend/pkg/config"
	"github.com/mediastash/mediastash-backend/pkg/logger"
	"github.com/mediastash/mediastash-backend/pkg/metrics"
)

// NewRouter assembles the HTTP surface.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	mediaService media.Service,
	supportersService supporters.Service,
	storageRoot string,
	requestMetrics *metrics.RequestMetrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Metrics(requestMetrics),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
	})
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Post("/upload", controllers.MediaUpload(mediaService, logg))

	r.Route("/media", func(r chi.Router) {
		r.Get("/videos/search", controllers.MediaSearch(mediaService, logg))
		r.Get("/{mediaType}", controllers.MediaList(mediaService, logg))
		r.Get("/{mediaType}/*", controllers.MediaFiles(storageRoot).ServeHTTP)
	})

	r.Get("/support", controllers.Support(cfg))
	r.Get("/supporters", controllers.Supporters(supportersService, logg))

	return r
}
