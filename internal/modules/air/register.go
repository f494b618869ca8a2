package air

import (
	"net/http"

	"campusair-server/internal/modules/air/controller"
	"campusair-server/internal/modules/air/service"
)

// RegisterFeature mounts the air module's routes. The service is built by the
// app because its poll loop outlives any single request.
func RegisterFeature(mux *http.ServeMux, svc *service.Service) {
	airController := controller.NewAirController(svc)
	airController.RegisterRoutes(mux)
}
