package list_stations

import (
	"errors"
	"net/http"

	"github.com/m04kA/EVC-BookingService/internal/api/handlers"
	"github.com/m04kA/EVC-BookingService/internal/service/stations"
	"github.com/m04kA/EVC-BookingService/internal/service/stations/models"
)

const (
	msgInvalidChargingType = "некорректный тип зарядки"
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

// Handle GET /api/v1/stations?location=...&chargingType=fast
// Публичная выборка: только активные станции
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListStationsRequest{}

	if location := r.URL.Query().Get("location"); location != "" {
		req.Location = &location
	}
	if chargingType := r.URL.Query().Get("chargingType"); chargingType != "" {
		req.ChargingType = &chargingType
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, stations.ErrInvalidInput):
			h.logger.Warn("GET /stations - Invalid charging type filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidChargingType)

		default:
			h.logger.Error("GET /stations - Failed to list stations: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
