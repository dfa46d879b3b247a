package update_booking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/booking"
	slotStorage "github.com/m04kA/EVC-BookingService/internal/infra/storage/slot"
	updateBooking "github.com/m04kA/EVC-BookingService/internal/usecase/update_booking"
	"github.com/m04kA/EVC-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	booking      *domain.Booking
	getErr       error
	userBookings []*domain.Booking
	slotBookings []*domain.Booking
	updateErr    error
	updated      *domain.Booking
	lastFilters  []domain.OverlapFilter
}

func (f *fakeBookingRepo) GetByID(context.Context, int64) (*domain.Booking, error) {
	return f.booking, f.getErr
}

func (f *fakeBookingRepo) ListActive(_ context.Context, filter domain.OverlapFilter) ([]*domain.Booking, error) {
	f.lastFilters = append(f.lastFilters, filter)
	if filter.UserID != nil {
		return f.userBookings, nil
	}
	if filter.SlotID != nil {
		return f.slotBookings, nil
	}
	return nil, nil
}

func (f *fakeBookingRepo) UpdateSchedule(_ context.Context, booking *domain.Booking) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = booking
	return nil
}

type fakeStationRepo struct {
	station *domain.Station
	err     error
}

func (f *fakeStationRepo) GetByID(context.Context, int64) (*domain.Station, error) {
	return f.station, f.err
}

type fakeSlotRepo struct {
	slot *domain.Slot
	err  error
}

func (f *fakeSlotRepo) GetByID(context.Context, int64) (*domain.Slot, error) {
	return f.slot, f.err
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

func validRequest(t *testing.T) *updateBooking.Request {
	t.Helper()
	return &updateBooking.Request{
		BookingID: 5,
		UserID:    1,
		StationID: 10,
		SlotID:    101,
		Date:      time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		StartTime: mustTime(t, "14:00"),
		EndTime:   mustTime(t, "15:00"),
	}
}

func newUseCase(bookings *fakeBookingRepo, stations *fakeStationRepo, slots *fakeSlotRepo) *updateBooking.UseCase {
	return updateBooking.NewUseCase(bookings, stations, slots, fakeTxManager{}, nopLogger{})
}

func TestUpdateBooking_Success(t *testing.T) {
	bookings := &fakeBookingRepo{booking: pendingBooking(t)}
	uc := newUseCase(
		bookings,
		&fakeStationRepo{station: &domain.Station{ID: 10, Status: domain.StationActive}},
		&fakeSlotRepo{slot: &domain.Slot{ID: 101, StationID: 10, SlotNumber: 2}},
	)

	resp, err := uc.Execute(context.Background(), validRequest(t))

	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.SlotID)
	assert.Equal(t, "14:00", resp.StartTime.String())
	assert.Equal(t, string(domain.StatusPending), resp.Status)

	require.NotNil(t, bookings.updated)
	assert.Equal(t, "2026-03-16", bookings.updated.BookingDate.Format(domain.DateFormat))

	// Проверки пересечений исключают само переносимое бронирование
	require.Len(t, bookings.lastFilters, 2)
	for _, filter := range bookings.lastFilters {
		require.NotNil(t, filter.ExcludeID)
		assert.Equal(t, int64(5), *filter.ExcludeID)
	}
}

func TestUpdateBooking_OwnershipAndState(t *testing.T) {
	t.Run("booking not found", func(t *testing.T) {
		uc := newUseCase(
			&fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound},
			&fakeStationRepo{station: &domain.Station{ID: 10, Status: domain.StationActive}},
			&fakeSlotRepo{slot: &domain.Slot{ID: 101, StationID: 10}},
		)

		_, err := uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, updateBooking.ErrBookingNotFound)
	})

	t.Run("belongs to another user", func(t *testing.T) {
		booking := pendingBooking(t)
		booking.UserID = 999

		uc := newUseCase(
			&fakeBookingRepo{booking: booking},
			&fakeStationRepo{station: &domain.Station{ID: 10, Status: domain.StationActive}},
			&fakeSlotRepo{slot: &domain.Slot{ID: 101, StationID: 10}},
		)

		_, err := uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, updateBooking.ErrAccessDenied)
	})

	t.Run("already decided", func(t *testing.T) {
		for _, status := range []domain.BookingStatus{domain.StatusApproved, domain.StatusRejected, domain.StatusCancelled} {
			booking := pendingBooking(t)
			booking.Status = status

			uc := newUseCase(
				&fakeBookingRepo{booking: booking},
				&fakeStationRepo{station: &domain.Station{ID: 10, Status: domain.StationActive}},
				&fakeSlotRepo{slot: &domain.Slot{ID: 101, StationID: 10}},
			)

			_, err := uc.Execute(context.Background(), validRequest(t))
			assert.ErrorIs(t, err, updateBooking.ErrNotPending, "status=%s", status)
		}
	})
}

func TestUpdateBooking_Conflicts(t *testing.T) {
	t.Run("user overlap on new window", func(t *testing.T) {
		other := pendingBooking(t)
		other.ID = 6
		other.StartTime = mustTime(t, "14:30")
		other.EndTime = mustTime(t, "15:30")

		uc := newUseCase(
			&fakeBookingRepo{booking: pendingBooking(t), userBookings: []*domain.Booking{other}},
			&fakeStationRepo{station: &domain.Station{ID: 10, Status: domain.StationActive}},
			&fakeSlotRepo{slot: &domain.Slot{ID: 101, StationID: 10}},
		)

		_, err := uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, updateBooking.ErrUserTimeConflict)
	})

	t.Run("slot overlap on new window", func(t *testing.T) {
		other := pendingBooking(t)
		other.ID = 6
		other.StartTime = mustTime(t, "14:30")
		other.EndTime = mustTime(t, "15:30")

		uc := newUseCase(
			&fakeBookingRepo{booking: pendingBooking(t), slotBookings: []*domain.Booking{other}},
			&fakeStationRepo{station: &domain.Station{ID: 10, Status: domain.StationActive}},
			&fakeSlotRepo{slot: &domain.Slot{ID: 101, StationID: 10}},
		)

		_, err := uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, updateBooking.ErrSlotTimeConflict)
	})
}

func TestUpdateBooking_SlotChecks(t *testing.T) {
	t.Run("slot missing", func(t *testing.T) {
		uc := newUseCase(
			&fakeBookingRepo{booking: pendingBooking(t)},
			&fakeStationRepo{station: &domain.Station{ID: 10, Status: domain.StationActive}},
			&fakeSlotRepo{err: slotStorage.ErrSlotNotFound},
		)

		_, err := uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, updateBooking.ErrSlotNotFound)
	})

	t.Run("slot belongs to another station", func(t *testing.T) {
		uc := newUseCase(
			&fakeBookingRepo{booking: pendingBooking(t)},
			&fakeStationRepo{station: &domain.Station{ID: 10, Status: domain.StationActive}},
			&fakeSlotRepo{slot: &domain.Slot{ID: 101, StationID: 99}},
		)

		_, err := uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, updateBooking.ErrSlotNotFound)
	})

	t.Run("slot repository failure is not a not-found", func(t *testing.T) {
		uc := newUseCase(
			&fakeBookingRepo{booking: pendingBooking(t)},
			&fakeStationRepo{station: &domain.Station{ID: 10, Status: domain.StationActive}},
			&fakeSlotRepo{err: errors.New("connection refused")},
		)

		_, err := uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, updateBooking.ErrInternal)
		assert.NotErrorIs(t, err, updateBooking.ErrSlotNotFound)
	})
}

func TestUpdateBooking_StatusConflictOnWrite(t *testing.T) {
	// Конкурентное решение администратора между чтением и записью:
	// условная запись не срабатывает
	uc := newUseCase(
		&fakeBookingRepo{booking: pendingBooking(t), updateErr: bookingRepo.ErrStatusConflict},
		&fakeStationRepo{station: &domain.Station{ID: 10, Status: domain.StationActive}},
		&fakeSlotRepo{slot: &domain.Slot{ID: 101, StationID: 10}},
	)

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, updateBooking.ErrNotPending)
}
