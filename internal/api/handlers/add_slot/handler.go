package add_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/EVC-BookingService/internal/api/handlers"
	"github.com/m04kA/EVC-BookingService/internal/service/slots"
	"github.com/m04kA/EVC-BookingService/internal/service/slots/models"
)

const (
	msgInvalidStationID   = "некорректный ID станции"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные слота"
	msgStationNotFound    = "станция не найдена"
	msgSlotLimitReached   = "станция уже укомплектована слотами до total_slots"
	msgDuplicateNumber    = "слот с таким номером уже существует"
	msgNumberTooLarge     = "номер слота превышает емкость станции"
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

// Handle POST /api/v1/admin/stations/{stationId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	stationID, err := strconv.ParseInt(vars["stationId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /admin/stations/{id}/slots - Invalid station ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStationID)
		return
	}

	var req models.AddSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/stations/{id}/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddSlot(r.Context(), stationID, &req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /admin/stations/{id}/slots - Invalid input: station_id=%d, error=%v", stationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, slots.ErrStationNotFound):
			h.logger.Warn("POST /admin/stations/{id}/slots - Station not found: station_id=%d", stationID)
			handlers.RespondNotFound(w, msgStationNotFound)

		case errors.Is(err, slots.ErrSlotLimitReached):
			h.logger.Warn("POST /admin/stations/{id}/slots - Slot limit reached: station_id=%d", stationID)
			handlers.RespondConflict(w, msgSlotLimitReached)

		case errors.Is(err, slots.ErrDuplicateSlotNumber):
			h.logger.Warn("POST /admin/stations/{id}/slots - Duplicate number: station_id=%d, number=%d",
				stationID, req.SlotNumber)
			handlers.RespondConflict(w, msgDuplicateNumber)

		case errors.Is(err, slots.ErrNumberExceedsCapacity):
			h.logger.Warn("POST /admin/stations/{id}/slots - Number exceeds capacity: station_id=%d, number=%d",
				stationID, req.SlotNumber)
			handlers.RespondConflict(w, msgNumberTooLarge)

		default:
			h.logger.Error("POST /admin/stations/{id}/slots - Failed to add slot: station_id=%d, error=%v",
				stationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/stations/{id}/slots - Slot added successfully: slot_id=%d, station_id=%d",
		result.ID, stationID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
