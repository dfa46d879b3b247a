package create_station

import (
	"errors"
	"net/http"

	"github.com/m04kA/EVC-BookingService/internal/api/handlers"
	"github.com/m04kA/EVC-BookingService/internal/service/stations"
	"github.com/m04kA/EVC-BookingService/internal/service/stations/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные станции"
	msgNameTaken          = "станция с таким названием уже существует"
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

// Handle POST /api/v1/admin/stations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/stations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, stations.ErrInvalidInput):
			h.logger.Warn("POST /admin/stations - Invalid input: name=%s, error=%v", req.Name, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, stations.ErrStationNameTaken):
			h.logger.Warn("POST /admin/stations - Name taken: name=%s", req.Name)
			handlers.RespondConflict(w, msgNameTaken)

		default:
			h.logger.Error("POST /admin/stations - Failed to create station: name=%s, error=%v", req.Name, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/stations - Station created successfully: station_id=%d, name=%s",
		result.ID, result.Name)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
