package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/EVC-BookingService/internal/api/handlers"
	"github.com/m04kA/EVC-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/EVC-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput       = "некорректные данные бронирования"
	msgUserNotFound       = "пользователь не найден"
	msgUserBlocked        = "пользователь заблокирован"
	msgStationNotFound    = "станция не найдена"
	msgStationInactive    = "станция неактивна"
	msgNoAvailableSlots   = "на станции нет свободных слотов"
	msgSlotNotFound       = "слот не найден на станции"
	msgUserTimeConflict   = "у пользователя уже есть бронирование на это время"
	msgSlotTimeConflict   = "слот уже забронирован на это время"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "missing X-User-ID header")
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrUserBlocked):
			h.logger.Warn("POST /bookings - User blocked: user_id=%d", userID)
			handlers.RespondForbidden(w, msgUserBlocked)

		case errors.Is(err, createBooking.ErrStationNotFound):
			h.logger.Warn("POST /bookings - Station not found: station_id=%d", req.StationID)
			handlers.RespondNotFound(w, msgStationNotFound)

		case errors.Is(err, createBooking.ErrStationInactive):
			h.logger.Warn("POST /bookings - Station inactive: station_id=%d", req.StationID)
			handlers.RespondConflict(w, msgStationInactive)

		case errors.Is(err, createBooking.ErrNoAvailableSlots):
			h.logger.Warn("POST /bookings - No available slots: station_id=%d", req.StationID)
			handlers.RespondConflict(w, msgNoAvailableSlots)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: station_id=%d, slot_id=%d", req.StationID, req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrUserTimeConflict):
			h.logger.Warn("POST /bookings - User time conflict: user_id=%d, station_id=%d", userID, req.StationID)
			handlers.RespondConflict(w, msgUserTimeConflict)

		case errors.Is(err, createBooking.ErrSlotTimeConflict):
			h.logger.Warn("POST /bookings - Slot time conflict: slot_id=%d", req.SlotID)
			handlers.RespondConflict(w, msgSlotTimeConflict)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, station_id=%d, error=%v",
				userID, req.StationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, station_id=%d",
		result.ID, userID, req.StationID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
