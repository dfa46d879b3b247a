package delete_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/EVC-BookingService/internal/api/handlers"
	"github.com/m04kA/EVC-BookingService/internal/service/slots"
)

const (
	msgInvalidSlotID  = "некорректный ID слота"
	msgNotFound       = "слот не найден"
	msgNotRemovable   = "слот занят или на обслуживании и не может быть удален"
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

// Handle DELETE /api/v1/admin/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	err = h.service.DeleteSlot(r.Context(), slotID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("DELETE /admin/slots/{id} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, slots.ErrSlotNotRemovable):
			h.logger.Warn("DELETE /admin/slots/{id} - Slot not removable: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgNotRemovable)

		default:
			h.logger.Error("DELETE /admin/slots/{id} - Failed to delete slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/slots/{id} - Slot deleted successfully: slot_id=%d", slotID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
