package approve_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/booking"
	stationRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/station"
	"github.com/m04kA/EVC-BookingService/internal/integrations/notifyservice"
)

// UseCase use case для подтверждения бронирования администратором
type UseCase struct {
	bookingRepo  BookingRepository
	stationRepo  StationRepository
	userClient   UserServiceClient
	notifyClient NotifyServiceClient
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	stationRepo StationRepository,
	userClient UserServiceClient,
	notifyClient NotifyServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		stationRepo:  stationRepo,
		userClient:   userClient,
		notifyClient: notifyClient,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case подтверждения бронирования
//
// Подтверждение потребляет емкость станции: счетчик доступности
// уменьшается условной записью, не допускающей ухода ниже нуля. Из двух
// конкурентных подтверждений на станцию с одним свободным местом
// пройдет ровно одно. Уведомление пользователю отправляется после
// коммита транзакции, сбой доставки подтверждение не откатывает
func (uc *UseCase) Execute(ctx context.Context, bookingID int64) error {
	uc.logger.Info("ApproveBooking: approving booking id=%d", bookingID)

	if bookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	var approved *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Бронирование существует и pending, строка блокируется (FOR UPDATE)
		booking, err := uc.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ApproveBooking: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ApproveBooking: failed to get booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if !booking.CanBeDecided() {
			uc.logger.Warn("ApproveBooking: booking id=%d has status=%s", bookingID, booking.Status)
			return ErrNotPending
		}

		// 2. Станция еще существует - висячие бронирования не подтверждаются
		if _, err := uc.stationRepo.GetByID(txCtx, booking.StationID); err != nil {
			if errors.Is(err, stationRepo.ErrStationNotFound) {
				uc.logger.Warn("ApproveBooking: station id=%d for booking id=%d no longer exists",
					booking.StationID, bookingID)
				return ErrStationDeleted
			}
			uc.logger.Error("ApproveBooking: failed to get station id=%d: %v", booking.StationID, err)
			return fmt.Errorf("%w: failed to get station: %v", ErrInternal, err)
		}

		// 3. Потребляем емкость станции атомарной условной записью
		if err := uc.stationRepo.ConsumeAvailableSlot(txCtx, booking.StationID); err != nil {
			if errors.Is(err, stationRepo.ErrNoCapacity) {
				uc.logger.Warn("ApproveBooking: station id=%d has no available slots for booking id=%d",
					booking.StationID, bookingID)
				return ErrNoCapacity
			}
			uc.logger.Error("ApproveBooking: failed to consume slot at station id=%d: %v", booking.StationID, err)
			return fmt.Errorf("%w: failed to consume available slot: %v", ErrInternal, err)
		}

		// 4. Переводим статус pending -> approved условной записью
		if err := uc.bookingRepo.TransitionStatus(txCtx, bookingID, domain.StatusPending, domain.StatusApproved); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				return ErrNotPending
			}
			uc.logger.Error("ApproveBooking: failed to transition booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: failed to transition status: %v", ErrInternal, err)
		}

		approved = booking
		return nil
	})

	if err != nil {
		return err
	}

	uc.logger.Info("ApproveBooking: successfully approved booking id=%d", bookingID)

	// Уведомление после коммита: сбой логируется, результат не меняется
	uc.notifyUser(ctx, approved)

	return nil
}

// notifyUser отправляет пользователю письмо о подтверждении бронирования
func (uc *UseCase) notifyUser(ctx context.Context, booking *domain.Booking) {
	user, err := uc.userClient.GetUser(ctx, booking.UserID)
	if err != nil {
		uc.logger.Warn("ApproveBooking: failed to get user id=%d for notification: %v", booking.UserID, err)
		return
	}

	message := &notifyservice.EmailMessage{
		To:      user.Email,
		Subject: "Booking approved",
		Body: fmt.Sprintf(
			"Your booking #%d on %s from %s to %s has been approved.",
			booking.ID,
			booking.BookingDate.Format(domain.DateFormat),
			booking.StartTime,
			booking.EndTime,
		),
	}

	if err := uc.notifyClient.SendEmail(ctx, message); err != nil {
		uc.logger.Warn("ApproveBooking: failed to send notification for booking id=%d: %v", booking.ID, err)
		return
	}

	uc.logger.Info("ApproveBooking: notification sent for booking id=%d", booking.ID)
}
