package httpapi

import (
	"database/sql"
	"net/http"
)

func NewMux(db *sql.DB, metricsHandler http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	registerHealthcheck(mux, db)
	mux.Handle("GET /metrics", metricsHandler)
	return mux
}
