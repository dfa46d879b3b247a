package list_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/EVC-BookingService/internal/api/handlers"
	"github.com/m04kA/EVC-BookingService/internal/service/slots"
)

const (
	msgInvalidStationID = "некорректный ID станции"
	msgStationNotFound  = "станция не найдена"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/stations/{stationId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	stationID, err := strconv.ParseInt(vars["stationId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /stations/{id}/slots - Invalid station ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStationID)
		return
	}

	result, err := h.service.ListByStation(r.Context(), stationID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrStationNotFound):
			h.logger.Warn("GET /stations/{id}/slots - Station not found: station_id=%d", stationID)
			handlers.RespondNotFound(w, msgStationNotFound)

		default:
			h.logger.Error("GET /stations/{id}/slots - Failed to list slots: station_id=%d, error=%v",
				stationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
