package list_all_slots

import (
	"net/http"

	"github.com/m04kA/EVC-BookingService/internal/api/handlers"
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

// Handle GET /api/v1/admin/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListAll(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/slots - Failed to list slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
