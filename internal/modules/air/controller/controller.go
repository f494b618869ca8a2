// Package controller exposes the air module over HTTP.
package controller

import (
	"context"
	"net/http"

	"campusair-server/internal/modules/air/repository"
	"campusair-server/internal/modules/air/types"
)

// AirService is the surface the handlers need. Satisfied by service.Service.
type AirService interface {
	Snapshot() *types.Snapshot
	Stations() []types.StationInfo
	Settings() (repository.Settings, error)
	UpdateSettings(settings repository.Settings) error
	Poll(ctx context.Context)
}

type airController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type airControllerImpl struct {
	service AirService
}

func NewAirController(service AirService) airController {
	return &airControllerImpl{service: service}
}

func (c *airControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/snapshot", c.handleSnapshot)
	mux.HandleFunc("GET /api/v1/stations", c.handleStations)
	mux.HandleFunc("GET /api/v1/readings", c.handleReadings)
	mux.HandleFunc("GET /api/v1/settings", c.handleGetSettings)
	mux.HandleFunc("PUT /api/v1/settings", c.handlePutSettings)
	mux.HandleFunc("POST /api/v1/poll", c.handlePoll)
}
