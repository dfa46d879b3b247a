package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/slot"
	stationRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/station"
	"github.com/m04kA/EVC-BookingService/pkg/ptr"
	"github.com/m04kA/EVC-BookingService/pkg/types"
)

// UseCase use case для переноса бронирования
type UseCase struct {
	bookingRepo BookingRepository
	stationRepo StationRepository
	slotRepo    SlotRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	stationRepo StationRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		stationRepo: stationRepo,
		slotRepo:    slotRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case переноса бронирования
//
// Перенос доступен только владельцу и только пока бронирование pending.
// Проверки пересечений повторяют проверки создания, исключая само
// переносимое бронирование, и выполняются в одной сериализуемой
// транзакции с записью
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: booking=%d, user=%d, station=%d, slot=%d, date=%s, window=%s-%s",
		req.BookingID, req.UserID, req.StationID, req.SlotID,
		req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Бронирование существует, принадлежит пользователю и pending
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.UserID != req.UserID {
			uc.logger.Warn("UpdateBooking: booking id=%d belongs to user id=%d, not id=%d",
				req.BookingID, booking.UserID, req.UserID)
			return ErrAccessDenied
		}

		if !booking.CanBeUpdated() {
			uc.logger.Warn("UpdateBooking: booking id=%d has status=%s", req.BookingID, booking.Status)
			return ErrNotPending
		}

		// 2.2. Новая станция существует и активна
		station, err := uc.stationRepo.GetByID(txCtx, req.StationID)
		if err != nil {
			if errors.Is(err, stationRepo.ErrStationNotFound) {
				uc.logger.Warn("UpdateBooking: station id=%d not found", req.StationID)
				return ErrStationNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get station id=%d: %v", req.StationID, err)
			return fmt.Errorf("%w: failed to get station: %v", ErrInternal, err)
		}

		if !station.IsActive() {
			uc.logger.Warn("UpdateBooking: station id=%d is inactive", req.StationID)
			return ErrStationInactive
		}

		// 2.3. Новый слот существует и принадлежит станции
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("UpdateBooking: slot id=%d not found at station id=%d", req.SlotID, req.StationID)
				return ErrSlotNotFound
			}
			uc.logger.Error("UpdateBooking: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		if slot.StationID != req.StationID {
			uc.logger.Warn("UpdateBooking: slot id=%d belongs to station id=%d, not id=%d",
				req.SlotID, slot.StationID, req.StationID)
			return ErrSlotNotFound
		}

		// 2.4. Пересечения по пользователю, исключая само бронирование
		userBookings, err := uc.bookingRepo.ListActive(txCtx, domain.OverlapFilter{
			StationID: req.StationID,
			UserID:    ptr.Ptr(req.UserID),
			Date:      req.Date,
			ExcludeID: ptr.Ptr(req.BookingID),
		})
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to list user bookings: %v", err)
			return fmt.Errorf("%w: failed to list user bookings: %v", ErrInternal, err)
		}

		if hasOverlap(req.StartTime, req.EndTime, userBookings) {
			uc.logger.Warn("UpdateBooking: user id=%d already has a booking at station id=%d during %s-%s",
				req.UserID, req.StationID, req.StartTime, req.EndTime)
			return ErrUserTimeConflict
		}

		// 2.5. Пересечения по слоту, исключая само бронирование
		slotBookings, err := uc.bookingRepo.ListActive(txCtx, domain.OverlapFilter{
			StationID: req.StationID,
			SlotID:    ptr.Ptr(req.SlotID),
			Date:      req.Date,
			ExcludeID: ptr.Ptr(req.BookingID),
		})
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to list slot bookings: %v", err)
			return fmt.Errorf("%w: failed to list slot bookings: %v", ErrInternal, err)
		}

		if hasOverlap(req.StartTime, req.EndTime, slotBookings) {
			uc.logger.Warn("UpdateBooking: slot id=%d already booked during %s-%s",
				req.SlotID, req.StartTime, req.EndTime)
			return ErrSlotTimeConflict
		}

		// 2.6. Перезаписываем расписание, статус не меняется
		booking.StationID = req.StationID
		booking.SlotID = req.SlotID
		booking.BookingDate = req.Date
		booking.StartTime = req.StartTime
		booking.EndTime = req.EndTime

		if err := uc.bookingRepo.UpdateSchedule(txCtx, booking); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				return ErrNotPending
			}
			uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		result = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateBooking: successfully rescheduled booking id=%d", result.ID)

	return &Response{
		ID:            result.ID,
		UserID:        result.UserID,
		StationID:     result.StationID,
		SlotID:        result.SlotID,
		BookingDate:   result.BookingDate,
		StartTime:     result.StartTime,
		EndTime:       result.EndTime,
		Status:        string(result.Status),
		PaymentStatus: string(result.PaymentStatus),
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.StationID <= 0 {
		return fmt.Errorf("%w: stationID must be positive", ErrInvalidInput)
	}

	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	return nil
}

// hasOverlap проверяет пересечение запрошенного окна с бронированиями
func hasOverlap(startTime, endTime types.TimeString, bookings []*domain.Booking) bool {
	for _, booking := range bookings {
		if domain.Overlaps(booking.StartTime, booking.EndTime, startTime, endTime) {
			return true
		}
	}
	return false
}
