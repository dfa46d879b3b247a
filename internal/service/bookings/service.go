package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/EVC-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
// Покрывает чтение и простые статусные переходы (cancel/reject);
// создание, перенос и подтверждение живут в отдельных usecase
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только свои бронирования, админ - любые
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, isAdmin bool) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID && !isAdmin {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// ListPending получает все заявки, ожидающие решения админа
func (s *Service) ListPending(ctx context.Context) (*models.BookingListResponse, error) {
	bookings, err := s.bookingRepo.ListByStatus(ctx, domain.StatusPending)
	if err != nil {
		s.logger.Error("ListPending: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListPending - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListPending: successfully fetched %d pending bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Доступно только владельцу и только пока заявка в статусе pending.
// Счетчик доступности станции не меняется: pending заявка емкость
// не потребляла (счетчик уменьшается только при подтверждении)
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Отменять может только владелец
	if booking.UserID != req.UserID {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Условный переход: если статус успел измениться, отмена не проходит
	if err := s.bookingRepo.TransitionStatus(ctx, bookingID, domain.StatusPending, domain.StatusCancelled); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("Cancel: booking id=%d left pending status concurrently", bookingID)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// Reject отклоняет заявку на бронирование
// Доступно только админу (гарантируется на границе API) и только для
// статуса pending. Счетчик доступности не меняется
func (s *Service) Reject(ctx context.Context, bookingID int64) error {
	s.logger.Info("Reject: rejecting booking id=%d", bookingID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Reject: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Reject: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeDecided() {
		s.logger.Warn("Reject: booking id=%d is not pending, status=%s", bookingID, booking.Status)
		return ErrNotPending
	}

	if err := s.bookingRepo.TransitionStatus(ctx, bookingID, domain.StatusPending, domain.StatusRejected); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("Reject: booking id=%d left pending status concurrently", bookingID)
			return ErrNotPending
		}
		s.logger.Error("Reject: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Reject - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Reject: successfully rejected booking id=%d", bookingID)
	return nil
}
