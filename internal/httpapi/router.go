// internal/httpapi/router.go
package httpapi

import (
	"net/http"
	"time"

	"realty-assistant/internal/common/config"
	"realty-assistant/internal/common/logger"
	"realty-assistant/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps carries the collaborators the HTTP surface exposes.
type Deps struct {
	Sessions *session.Registry
	Logger   logger.Logger
}

// BuildRouter assembles the local HTTP surface over the assistant core.
func BuildRouter(cfg config.ServerConfig, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(httprate.LimitByIP(cfg.RateLimit, time.Duration(cfg.RateLimitWindow)*time.Second))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"ok":true}`)) })
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	RegisterChat(r, deps)
	RegisterMap(r, deps)

	return r
}
