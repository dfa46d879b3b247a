package update_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/EVC-BookingService/internal/api/handlers"
	"github.com/m04kA/EVC-BookingService/internal/api/middleware"
	updateBooking "github.com/m04kA/EVC-BookingService/internal/usecase/update_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput       = "некорректные данные бронирования"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgNotPending         = "бронирование уже рассмотрено и не может быть перенесено"
	msgStationNotFound    = "станция не найдена"
	msgStationInactive    = "станция неактивна"
	msgSlotNotFound       = "слот не найден на станции"
	msgUserTimeConflict   = "у пользователя уже есть бронирование на это время"
	msgSlotTimeConflict   = "слот уже забронирован на это время"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "missing X-User-ID header")
		return
	}

	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, userID)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateBooking.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/{id} - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateBooking.ErrAccessDenied):
			h.logger.Warn("PUT /bookings/{id} - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateBooking.ErrNotPending):
			h.logger.Warn("PUT /bookings/{id} - Not pending: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotPending)

		case errors.Is(err, updateBooking.ErrStationNotFound):
			h.logger.Warn("PUT /bookings/{id} - Station not found: station_id=%d", req.StationID)
			handlers.RespondNotFound(w, msgStationNotFound)

		case errors.Is(err, updateBooking.ErrStationInactive):
			h.logger.Warn("PUT /bookings/{id} - Station inactive: station_id=%d", req.StationID)
			handlers.RespondConflict(w, msgStationInactive)

		case errors.Is(err, updateBooking.ErrSlotNotFound):
			h.logger.Warn("PUT /bookings/{id} - Slot not found: station_id=%d, slot_id=%d", req.StationID, req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, updateBooking.ErrUserTimeConflict):
			h.logger.Warn("PUT /bookings/{id} - User time conflict: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondConflict(w, msgUserTimeConflict)

		case errors.Is(err, updateBooking.ErrSlotTimeConflict):
			h.logger.Warn("PUT /bookings/{id} - Slot time conflict: booking_id=%d, slot_id=%d", bookingID, req.SlotID)
			handlers.RespondConflict(w, msgSlotTimeConflict)

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to update booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("PUT /bookings/{id} - Booking rescheduled successfully: booking_id=%d, user_id=%d",
		bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
