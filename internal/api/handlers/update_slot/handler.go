package update_slot

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
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные слота"
	msgNotFound           = "слот не найден"
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

// Handle PATCH /api/v1/admin/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req models.UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/slots/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSlot(r.Context(), slotID, &req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/slots/{id} - Invalid input: slot_id=%d, error=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("PATCH /admin/slots/{id} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, slots.ErrDuplicateSlotNumber):
			h.logger.Warn("PATCH /admin/slots/{id} - Duplicate number: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgDuplicateNumber)

		case errors.Is(err, slots.ErrNumberExceedsCapacity):
			h.logger.Warn("PATCH /admin/slots/{id} - Number exceeds capacity: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgNumberTooLarge)

		default:
			h.logger.Error("PATCH /admin/slots/{id} - Failed to update slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/slots/{id} - Slot updated successfully: slot_id=%d", slotID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
