package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jornada/pkg/platform/httputil"
	"jornada/pkg/platform/middleware/request"
	"jornada/pkg/platform/middleware/requesttime"
)

// Registrar is implemented by module handlers that mount their own routes.
type Registrar interface {
	Register(r chi.Router)
}

// RouterConfig carries what the router needs beyond module handlers.
type RouterConfig struct {
	// Gatherer serves /metrics when non-nil.
	Gatherer prometheus.Gatherer
}

// NewRouter wires platform middleware, health and metrics endpoints, and every
// module handler. Handlers stay thin and delegate to their services.
func NewRouter(cfg RouterConfig, modules ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	for _, m := range modules {
		m.Register(r)
	}
	return r
}
