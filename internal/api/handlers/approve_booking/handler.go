package approve_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/EVC-BookingService/internal/api/handlers"
	approveBooking "github.com/m04kA/EVC-BookingService/internal/usecase/approve_booking"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgNotPending       = "бронирование уже рассмотрено"
	msgStationDeleted   = "станция бронирования удалена"
	msgNoCapacity       = "на станции не осталось свободных слотов"
)

type Handler struct {
	useCase ApproveBookingUseCase
	logger  Logger
}

func NewHandler(useCase ApproveBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/bookings/{bookingId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /admin/bookings/{id}/approve - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	err = h.useCase.Execute(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, approveBooking.ErrInvalidInput):
			h.logger.Warn("POST /admin/bookings/{id}/approve - Invalid input: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		case errors.Is(err, approveBooking.ErrBookingNotFound):
			h.logger.Warn("POST /admin/bookings/{id}/approve - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, approveBooking.ErrNotPending):
			h.logger.Warn("POST /admin/bookings/{id}/approve - Not pending: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, approveBooking.ErrStationDeleted):
			h.logger.Warn("POST /admin/bookings/{id}/approve - Station deleted: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgStationDeleted)

		case errors.Is(err, approveBooking.ErrNoCapacity):
			h.logger.Warn("POST /admin/bookings/{id}/approve - No capacity: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNoCapacity)

		default:
			h.logger.Error("POST /admin/bookings/{id}/approve - Failed to approve booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bookings/{id}/approve - Booking approved successfully: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
