package controller

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"campusair-server/internal/modules/air/repository"
	"campusair-server/internal/modules/air/types"
	"campusair-server/internal/utils"
)

func (c *airControllerImpl) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := c.service.Snapshot()
	if snap == nil {
		utils.WriteError(w, http.StatusServiceUnavailable, "no poll cycle has completed yet")
		return
	}
	utils.WriteJSON(w, http.StatusOK, snap)
}

func (c *airControllerImpl) handleStations(w http.ResponseWriter, r *http.Request) {
	stations := c.service.Stations()
	if stations == nil {
		stations = []types.StationInfo{}
	}
	utils.WriteJSON(w, http.StatusOK, stations)
}

func (c *airControllerImpl) handleReadings(w http.ResponseWriter, r *http.Request) {
	station, limit, err := parseReadingsQuery(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap := c.service.Snapshot()
	if snap == nil {
		utils.WriteError(w, http.StatusServiceUnavailable, "no poll cycle has completed yet")
		return
	}

	readings := snap.RawReadings
	if station != types.StationUnknown {
		filtered := make([]types.Reading, 0, len(readings))
		for _, reading := range readings {
			if reading.Station == station {
				filtered = append(filtered, reading)
			}
		}
		readings = filtered
	}
	if len(readings) > limit {
		readings = readings[len(readings)-limit:]
	}
	if readings == nil {
		readings = []types.Reading{}
	}
	utils.WriteJSON(w, http.StatusOK, readings)
}

func (c *airControllerImpl) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := c.service.Settings()
	if err != nil {
		slog.Error("settings: read failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	utils.WriteJSON(w, http.StatusOK, settings)
}

func (c *airControllerImpl) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var settings repository.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid settings payload")
		return
	}
	if err := settings.Validate(); err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := c.service.UpdateSettings(settings); err != nil {
		slog.Error("settings: update failed", "error", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to store settings")
		return
	}
	utils.WriteJSON(w, http.StatusOK, settings)
}

// handlePoll runs one cycle synchronously and returns whatever snapshot is
// current afterwards, including a retained one if the cycle failed.
func (c *airControllerImpl) handlePoll(w http.ResponseWriter, r *http.Request) {
	c.service.Poll(r.Context())
	snap := c.service.Snapshot()
	if snap == nil {
		utils.WriteError(w, http.StatusBadGateway, "poll failed and no previous snapshot exists")
		return
	}
	utils.WriteJSON(w, http.StatusOK, snap)
}
