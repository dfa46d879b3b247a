package get_station

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/EVC-BookingService/internal/api/handlers"
	"github.com/m04kA/EVC-BookingService/internal/service/stations"
)

const (
	msgInvalidStationID = "некорректный ID станции"
	msgNotFound         = "станция не найдена"
)

type Handler struct {
	service StationService
	logger  Logger
}

func NewHandler(service StationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stations/{stationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	stationID, err := strconv.ParseInt(vars["stationId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /stations/{id} - Invalid station ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStationID)
		return
	}

	result, err := h.service.GetByID(r.Context(), stationID)
	if err != nil {
		switch {
		case errors.Is(err, stations.ErrStationNotFound):
			h.logger.Warn("GET /stations/{id} - Station not found: station_id=%d", stationID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /stations/{id} - Failed to get station: station_id=%d, error=%v", stationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
