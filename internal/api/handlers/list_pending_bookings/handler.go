package list_pending_bookings

import (
	"net/http"

	"github.com/m04kA/EVC-BookingService/internal/api/handlers"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings/pending
// Очередь заявок, ожидающих решения администратора
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListPending(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/bookings/pending - Failed to list pending bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/bookings/pending - Fetched %d pending bookings", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
