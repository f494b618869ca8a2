package httpapi

import (
	"net/http"

	"github.com/rs/cors"

	"campusair-server/internal/config"
)

// NewServer wraps the mux with request logging and, when origins are
// configured, a CORS layer for the browser dashboard.
func NewServer(cfg config.Config, mux *http.ServeMux) *http.Server {
	var handler http.Handler = mux
	if len(cfg.CORSOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost},
			AllowedHeaders: []string{"Content-Type"},
		}).Handler(handler)
	}
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: requestLogger(handler),
	}
}
