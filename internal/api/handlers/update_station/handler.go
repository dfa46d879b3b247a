package update_station

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/EVC-BookingService/internal/api/handlers"
	"github.com/m04kA/EVC-BookingService/internal/service/stations"
	"github.com/m04kA/EVC-BookingService/internal/service/stations/models"
)

const (
	msgInvalidStationID   = "некорректный ID станции"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные станции"
	msgNotFound           = "станция не найдена"
	msgNameTaken          = "станция с таким названием уже существует"
	msgCapacityExceeded   = "новая емкость меньше числа занятых слотов"
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

// Handle PATCH /api/v1/admin/stations/{stationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	stationID, err := strconv.ParseInt(vars["stationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/stations/{id} - Invalid station ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStationID)
		return
	}

	var req models.UpdateStationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/stations/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), stationID, &req)
	if err != nil {
		switch {
		case errors.Is(err, stations.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/stations/{id} - Invalid input: station_id=%d, error=%v", stationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, stations.ErrStationNotFound):
			h.logger.Warn("PATCH /admin/stations/{id} - Station not found: station_id=%d", stationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, stations.ErrStationNameTaken):
			h.logger.Warn("PATCH /admin/stations/{id} - Name taken: station_id=%d", stationID)
			handlers.RespondConflict(w, msgNameTaken)

		case errors.Is(err, stations.ErrCapacityExceeded):
			h.logger.Warn("PATCH /admin/stations/{id} - Capacity exceeded: station_id=%d", stationID)
			handlers.RespondConflict(w, msgCapacityExceeded)

		default:
			h.logger.Error("PATCH /admin/stations/{id} - Failed to update station: station_id=%d, error=%v",
				stationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/stations/{id} - Station updated successfully: station_id=%d", stationID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
