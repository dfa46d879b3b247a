package bookings_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/EVC-BookingService/internal/service/bookings"
	"github.com/m04kA/EVC-BookingService/internal/service/bookings/models"
	"github.com/m04kA/EVC-BookingService/pkg/ptr"
	"github.com/m04kA/EVC-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	booking       *domain.Booking
	getErr        error
	userBookings  []*domain.Booking
	lastStatus    *domain.BookingStatus
	pending       []*domain.Booking
	transitionErr error
	transitioned  bool
	from, to      domain.BookingStatus
}

func (f *fakeBookingRepo) GetByID(context.Context, int64) (*domain.Booking, error) {
	return f.booking, f.getErr
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, _ int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	f.lastStatus = status
	return f.userBookings, nil
}

func (f *fakeBookingRepo) ListByStatus(context.Context, domain.BookingStatus) ([]*domain.Booking, error) {
	return f.pending, nil
}

func (f *fakeBookingRepo) TransitionStatus(_ context.Context, _ int64, from, to domain.BookingStatus) error {
	if f.transitionErr != nil {
		return f.transitionErr
	}
	f.transitioned = true
	f.from = from
	f.to = to
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustTime(t *testing.T, v string) types.TimeString {
	t.Helper()
	parsed, err := types.NewTimeStringFromString(v)
	require.NoError(t, err)
	return parsed
}

func pendingBooking(t *testing.T) *domain.Booking {
	t.Helper()
	return &domain.Booking{
		ID:            5,
		UserID:        1,
		StationID:     10,
		SlotID:        100,
		BookingDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		StartTime:     mustTime(t, "09:00"),
		EndTime:       mustTime(t, "10:00"),
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentPending,
	}
}

func TestService_GetByID(t *testing.T) {
	t.Run("owner can read", func(t *testing.T) {
		svc := bookings.NewService(&fakeBookingRepo{booking: pendingBooking(t)}, nopLogger{})

		resp, err := svc.GetByID(context.Background(), 5, 1, false)

		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.ID)
		assert.Equal(t, "2026-03-15", resp.BookingDate)
		assert.Equal(t, "09:00", resp.StartTime)
	})

	t.Run("admin can read any booking", func(t *testing.T) {
		svc := bookings.NewService(&fakeBookingRepo{booking: pendingBooking(t)}, nopLogger{})

		_, err := svc.GetByID(context.Background(), 5, 999, true)
		require.NoError(t, err)
	})

	t.Run("other user denied", func(t *testing.T) {
		svc := bookings.NewService(&fakeBookingRepo{booking: pendingBooking(t)}, nopLogger{})

		_, err := svc.GetByID(context.Background(), 5, 2, false)
		assert.ErrorIs(t, err, bookings.ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		svc := bookings.NewService(&fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}, nopLogger{})

		_, err := svc.GetByID(context.Background(), 5, 1, false)
		assert.ErrorIs(t, err, bookings.ErrBookingNotFound)
	})
}

func TestService_GetUserBookings(t *testing.T) {
	t.Run("passes status filter through", func(t *testing.T) {
		repo := &fakeBookingRepo{userBookings: []*domain.Booking{pendingBooking(t)}}
		svc := bookings.NewService(repo, nopLogger{})

		resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			UserID: 1,
			Status: ptr.Ptr("approved"),
		})

		require.NoError(t, err)
		require.NotNil(t, repo.lastStatus)
		assert.Equal(t, domain.StatusApproved, *repo.lastStatus)
		assert.Len(t, resp.Bookings, 1)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		svc := bookings.NewService(&fakeBookingRepo{}, nopLogger{})

		_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
			UserID: 1,
			Status: ptr.Ptr("in-progress"),
		})

		assert.ErrorIs(t, err, bookings.ErrInvalidInput)
	})

	t.Run("empty history yields empty list", func(t *testing.T) {
		svc := bookings.NewService(&fakeBookingRepo{}, nopLogger{})

		resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 1})

		require.NoError(t, err)
		assert.Empty(t, resp.Bookings)
	})
}

func TestService_Cancel(t *testing.T) {
	t.Run("owner cancels pending", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: pendingBooking(t)}
		svc := bookings.NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{UserID: 1})

		require.NoError(t, err)
		assert.True(t, repo.transitioned)
		assert.Equal(t, domain.StatusPending, repo.from)
		assert.Equal(t, domain.StatusCancelled, repo.to)
	})

	t.Run("non-owner denied", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: pendingBooking(t)}
		svc := bookings.NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{UserID: 2})

		assert.ErrorIs(t, err, bookings.ErrAccessDenied)
		assert.False(t, repo.transitioned)
	})

	t.Run("already decided", func(t *testing.T) {
		for _, status := range []domain.BookingStatus{domain.StatusApproved, domain.StatusRejected, domain.StatusCancelled} {
			booking := pendingBooking(t)
			booking.Status = status
			svc := bookings.NewService(&fakeBookingRepo{booking: booking}, nopLogger{})

			err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{UserID: 1})
			assert.ErrorIs(t, err, bookings.ErrCannotCancel, "status=%s", status)
		}
	})

	t.Run("concurrent decision on write", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: pendingBooking(t), transitionErr: bookingRepo.ErrStatusConflict}
		svc := bookings.NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{UserID: 1})
		assert.ErrorIs(t, err, bookings.ErrCannotCancel)
	})
}

func TestService_Reject(t *testing.T) {
	t.Run("rejects pending", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: pendingBooking(t)}
		svc := bookings.NewService(repo, nopLogger{})

		err := svc.Reject(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, repo.to)
	})

	t.Run("not pending", func(t *testing.T) {
		booking := pendingBooking(t)
		booking.Status = domain.StatusCancelled
		svc := bookings.NewService(&fakeBookingRepo{booking: booking}, nopLogger{})

		err := svc.Reject(context.Background(), 5)
		assert.ErrorIs(t, err, bookings.ErrNotPending)
	})

	t.Run("repository failure", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: pendingBooking(t), transitionErr: errors.New("connection reset")}
		svc := bookings.NewService(repo, nopLogger{})

		err := svc.Reject(context.Background(), 5)
		assert.ErrorIs(t, err, bookings.ErrInternal)
	})
}
