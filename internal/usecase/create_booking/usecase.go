package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	slotRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/slot"
	stationRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/station"
	userClient "github.com/m04kA/EVC-BookingService/internal/integrations/userservice"
	"github.com/m04kA/EVC-BookingService/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo BookingRepository
	stationRepo StationRepository
	slotRepo    SlotRepository
	userClient  UserServiceClient
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	stationRepo StationRepository,
	slotRepo SlotRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		stationRepo: stationRepo,
		slotRepo:    slotRepo,
		userClient:  userClient,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Проверки выполняются строго по порядку, первая ошибка останавливает
// обработку. Проверки пересечений и вставка выполняются в одной
// сериализуемой транзакции: две конкурентные заявки на один слот не могут
// обе пройти проверку. Счетчик доступности станции при создании НЕ
// изменяется - емкость потребляется только при подтверждении
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, station=%d, slot=%d, date=%s, window=%s-%s",
		req.UserID, req.StationID, req.SlotID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем пользователя: заблокированный не может бронировать
	user, err := uc.userClient.GetUser(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CreateBooking: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateBooking: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}

	if user.IsBlocked {
		uc.logger.Warn("CreateBooking: user id=%d is blocked", req.UserID)
		return nil, ErrUserBlocked
	}

	var result *domain.Booking

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Станция существует и активна, строка блокируется (FOR UPDATE)
		station, err := uc.stationRepo.GetByID(txCtx, req.StationID)
		if err != nil {
			if errors.Is(err, stationRepo.ErrStationNotFound) {
				uc.logger.Warn("CreateBooking: station id=%d not found", req.StationID)
				return ErrStationNotFound
			}
			uc.logger.Error("CreateBooking: failed to get station id=%d: %v", req.StationID, err)
			return fmt.Errorf("%w: failed to get station: %v", ErrInternal, err)
		}

		if !station.IsActive() {
			uc.logger.Warn("CreateBooking: station id=%d is inactive", req.StationID)
			return ErrStationInactive
		}

		// 3.2. У станции есть свободная емкость
		if !station.HasAvailableSlots() {
			uc.logger.Warn("CreateBooking: station id=%d has no available slots", req.StationID)
			return ErrNoAvailableSlots
		}

		// 3.3. Слот существует и принадлежит станции
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateBooking: slot id=%d not found at station id=%d", req.SlotID, req.StationID)
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateBooking: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		if slot.StationID != req.StationID {
			uc.logger.Warn("CreateBooking: slot id=%d belongs to station id=%d, not id=%d",
				req.SlotID, slot.StationID, req.StationID)
			return ErrSlotNotFound
		}

		// 3.4. У пользователя нет активного бронирования на этой станции
		// с пересекающимся окном
		userBookings, err := uc.bookingRepo.ListActive(txCtx, domain.OverlapFilter{
			StationID: req.StationID,
			UserID:    ptr.Ptr(req.UserID),
			Date:      req.Date,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list user bookings: %v", err)
			return fmt.Errorf("%w: failed to list user bookings: %v", ErrInternal, err)
		}

		if hasOverlap(req.StartTime, req.EndTime, userBookings) {
			uc.logger.Warn("CreateBooking: user id=%d already has a booking at station id=%d during %s-%s",
				req.UserID, req.StationID, req.StartTime, req.EndTime)
			return ErrUserTimeConflict
		}

		// 3.5. Слот не забронирован на пересекающееся окно
		slotBookings, err := uc.bookingRepo.ListActive(txCtx, domain.OverlapFilter{
			StationID: req.StationID,
			SlotID:    ptr.Ptr(req.SlotID),
			Date:      req.Date,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list slot bookings: %v", err)
			return fmt.Errorf("%w: failed to list slot bookings: %v", ErrInternal, err)
		}

		if hasOverlap(req.StartTime, req.EndTime, slotBookings) {
			uc.logger.Warn("CreateBooking: slot id=%d already booked during %s-%s",
				req.SlotID, req.StartTime, req.EndTime)
			return ErrSlotTimeConflict
		}

		// 3.6. Сохраняем бронирование в статусе pending
		booking := &domain.Booking{
			UserID:        req.UserID,
			SlotID:        req.SlotID,
			StationID:     req.StationID,
			BookingDate:   req.Date,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			Status:        domain.StatusPending,
			PaymentStatus: domain.PaymentPending,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

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
