package approve_booking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/booking"
	stationRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/station"
	"github.com/m04kA/EVC-BookingService/internal/integrations/notifyservice"
	"github.com/m04kA/EVC-BookingService/internal/integrations/userservice"
	approveBooking "github.com/m04kA/EVC-BookingService/internal/usecase/approve_booking"
	"github.com/m04kA/EVC-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	booking       *domain.Booking
	getErr        error
	transitionErr error
	transitioned  bool
	from, to      domain.BookingStatus
}

func (f *fakeBookingRepo) GetByID(context.Context, int64) (*domain.Booking, error) {
	return f.booking, f.getErr
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

type fakeStationRepo struct {
	getErr     error
	consumeErr error
	consumed   int
}

func (f *fakeStationRepo) GetByID(context.Context, int64) (*domain.Station, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &domain.Station{ID: 10, Status: domain.StationActive}, nil
}

func (f *fakeStationRepo) ConsumeAvailableSlot(context.Context, int64) error {
	if f.consumeErr != nil {
		return f.consumeErr
	}
	f.consumed++
	return nil
}

type fakeUserClient struct {
	err error
}

func (f *fakeUserClient) GetUser(_ context.Context, userID int64) (*userservice.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &userservice.User{ID: userID, Email: "user@example.com"}, nil
}

type fakeNotifyClient struct {
	err  error
	sent []*notifyservice.EmailMessage
}

func (f *fakeNotifyClient) SendEmail(_ context.Context, message *notifyservice.EmailMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, message)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func TestApproveBooking_Success(t *testing.T) {
	bookings := &fakeBookingRepo{booking: pendingBooking(t)}
	stations := &fakeStationRepo{}
	notify := &fakeNotifyClient{}

	uc := approveBooking.NewUseCase(bookings, stations, &fakeUserClient{}, notify, fakeTxManager{}, nopLogger{})

	err := uc.Execute(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, 1, stations.consumed)
	assert.True(t, bookings.transitioned)
	assert.Equal(t, domain.StatusPending, bookings.from)
	assert.Equal(t, domain.StatusApproved, bookings.to)

	require.Len(t, notify.sent, 1)
	assert.Equal(t, "user@example.com", notify.sent[0].To)
	assert.Contains(t, notify.sent[0].Body, "2026-03-15")
}

func TestApproveBooking_Failures(t *testing.T) {
	t.Run("booking not found", func(t *testing.T) {
		uc := approveBooking.NewUseCase(
			&fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound},
			&fakeStationRepo{}, &fakeUserClient{}, &fakeNotifyClient{}, fakeTxManager{}, nopLogger{},
		)

		err := uc.Execute(context.Background(), 5)
		assert.ErrorIs(t, err, approveBooking.ErrBookingNotFound)
	})

	t.Run("already decided", func(t *testing.T) {
		booking := pendingBooking(t)
		booking.Status = domain.StatusApproved
		stations := &fakeStationRepo{}

		uc := approveBooking.NewUseCase(
			&fakeBookingRepo{booking: booking},
			stations, &fakeUserClient{}, &fakeNotifyClient{}, fakeTxManager{}, nopLogger{},
		)

		err := uc.Execute(context.Background(), 5)
		assert.ErrorIs(t, err, approveBooking.ErrNotPending)
		assert.Zero(t, stations.consumed)
	})

	t.Run("station deleted", func(t *testing.T) {
		uc := approveBooking.NewUseCase(
			&fakeBookingRepo{booking: pendingBooking(t)},
			&fakeStationRepo{getErr: stationRepo.ErrStationNotFound},
			&fakeUserClient{}, &fakeNotifyClient{}, fakeTxManager{}, nopLogger{},
		)

		err := uc.Execute(context.Background(), 5)
		assert.ErrorIs(t, err, approveBooking.ErrStationDeleted)
	})

	t.Run("no capacity", func(t *testing.T) {
		bookings := &fakeBookingRepo{booking: pendingBooking(t)}

		uc := approveBooking.NewUseCase(
			bookings,
			&fakeStationRepo{consumeErr: stationRepo.ErrNoCapacity},
			&fakeUserClient{}, &fakeNotifyClient{}, fakeTxManager{}, nopLogger{},
		)

		err := uc.Execute(context.Background(), 5)
		assert.ErrorIs(t, err, approveBooking.ErrNoCapacity)
		assert.False(t, bookings.transitioned)
	})

	t.Run("concurrent decision on write", func(t *testing.T) {
		uc := approveBooking.NewUseCase(
			&fakeBookingRepo{booking: pendingBooking(t), transitionErr: bookingRepo.ErrStatusConflict},
			&fakeStationRepo{}, &fakeUserClient{}, &fakeNotifyClient{}, fakeTxManager{}, nopLogger{},
		)

		err := uc.Execute(context.Background(), 5)
		assert.ErrorIs(t, err, approveBooking.ErrNotPending)
	})

	t.Run("invalid id", func(t *testing.T) {
		uc := approveBooking.NewUseCase(
			&fakeBookingRepo{}, &fakeStationRepo{}, &fakeUserClient{}, &fakeNotifyClient{}, fakeTxManager{}, nopLogger{},
		)

		err := uc.Execute(context.Background(), 0)
		assert.ErrorIs(t, err, approveBooking.ErrInvalidInput)
	})
}

func TestApproveBooking_NotificationFailureTolerated(t *testing.T) {
	t.Run("send fails", func(t *testing.T) {
		bookings := &fakeBookingRepo{booking: pendingBooking(t)}

		uc := approveBooking.NewUseCase(
			bookings, &fakeStationRepo{}, &fakeUserClient{},
			&fakeNotifyClient{err: errors.New("smtp unavailable")},
			fakeTxManager{}, nopLogger{},
		)

		err := uc.Execute(context.Background(), 5)
		require.NoError(t, err)
		assert.True(t, bookings.transitioned)
	})

	t.Run("user lookup fails", func(t *testing.T) {
		notify := &fakeNotifyClient{}

		uc := approveBooking.NewUseCase(
			&fakeBookingRepo{booking: pendingBooking(t)}, &fakeStationRepo{},
			&fakeUserClient{err: errors.New("user service down")},
			notify, fakeTxManager{}, nopLogger{},
		)

		err := uc.Execute(context.Background(), 5)
		require.NoError(t, err)
		assert.Empty(t, notify.sent)
	})
}
