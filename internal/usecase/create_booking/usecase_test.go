package create_booking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	slotRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/slot"
	stationRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/station"
	"github.com/m04kA/EVC-BookingService/internal/integrations/userservice"
	createBooking "github.com/m04kA/EVC-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/EVC-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	userBookings []*domain.Booking
	slotBookings []*domain.Booking
	created      *domain.Booking
	createErr    error
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	booking.ID = 42
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	f.created = booking
	return booking, nil
}

func (f *fakeBookingRepo) ListActive(_ context.Context, filter domain.OverlapFilter) ([]*domain.Booking, error) {
	if filter.UserID != nil {
		return f.userBookings, nil
	}
	if filter.SlotID != nil {
		return f.slotBookings, nil
	}
	return nil, nil
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

type fakeUserClient struct {
	user *userservice.User
	err  error
}

func (f *fakeUserClient) GetUser(context.Context, int64) (*userservice.User, error) {
	return f.user, f.err
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

func activeBooking(t *testing.T, start, end string) *domain.Booking {
	t.Helper()
	return &domain.Booking{
		ID:        7,
		Status:    domain.StatusPending,
		StartTime: mustTime(t, start),
		EndTime:   mustTime(t, end),
	}
}

func validRequest(t *testing.T) *createBooking.Request {
	t.Helper()
	return &createBooking.Request{
		UserID:    1,
		StationID: 10,
		SlotID:    100,
		Date:      time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		StartTime: mustTime(t, "09:00"),
		EndTime:   mustTime(t, "10:00"),
	}
}

func activeStation() *domain.Station {
	return &domain.Station{
		ID:             10,
		Name:           "Central",
		TotalSlots:     4,
		AvailableSlots: 2,
		Status:         domain.StationActive,
	}
}

func newUseCase(bookings *fakeBookingRepo, stations *fakeStationRepo, slots *fakeSlotRepo, users *fakeUserClient) *createBooking.UseCase {
	return createBooking.NewUseCase(bookings, stations, slots, users, fakeTxManager{}, nopLogger{})
}

func TestCreateBooking_Success(t *testing.T) {
	bookings := &fakeBookingRepo{}
	uc := newUseCase(
		bookings,
		&fakeStationRepo{station: activeStation()},
		&fakeSlotRepo{slot: &domain.Slot{ID: 100, StationID: 10, SlotNumber: 1}},
		&fakeUserClient{user: &userservice.User{ID: 1}},
	)

	resp, err := uc.Execute(context.Background(), validRequest(t))

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, string(domain.PaymentPending), resp.PaymentStatus)
	require.NotNil(t, bookings.created)
	assert.Equal(t, domain.StatusPending, bookings.created.Status)
}

func TestCreateBooking_ValidationErrors(t *testing.T) {
	uc := newUseCase(
		&fakeBookingRepo{},
		&fakeStationRepo{station: activeStation()},
		&fakeSlotRepo{slot: &domain.Slot{ID: 100, StationID: 10}},
		&fakeUserClient{user: &userservice.User{ID: 1}},
	)

	tests := []struct {
		name   string
		mutate func(req *createBooking.Request)
	}{
		{name: "missing user", mutate: func(r *createBooking.Request) { r.UserID = 0 }},
		{name: "missing station", mutate: func(r *createBooking.Request) { r.StationID = 0 }},
		{name: "missing slot", mutate: func(r *createBooking.Request) { r.SlotID = 0 }},
		{name: "missing date", mutate: func(r *createBooking.Request) { r.Date = time.Time{} }},
		{name: "missing start time", mutate: func(r *createBooking.Request) { r.StartTime = "" }},
		{name: "missing end time", mutate: func(r *createBooking.Request) { r.EndTime = "" }},
		{name: "start equals end", mutate: func(r *createBooking.Request) { r.EndTime = r.StartTime }},
		{name: "start after end", mutate: func(r *createBooking.Request) {
			r.StartTime = mustTime(t, "11:00")
			r.EndTime = mustTime(t, "10:00")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(t)
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, createBooking.ErrInvalidInput)
		})
	}
}

func TestCreateBooking_BlockedUser(t *testing.T) {
	uc := newUseCase(
		&fakeBookingRepo{},
		&fakeStationRepo{station: activeStation()},
		&fakeSlotRepo{slot: &domain.Slot{ID: 100, StationID: 10}},
		&fakeUserClient{user: &userservice.User{ID: 1, IsBlocked: true}},
	)

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, createBooking.ErrUserBlocked)
}

func TestCreateBooking_UserNotFound(t *testing.T) {
	uc := newUseCase(
		&fakeBookingRepo{},
		&fakeStationRepo{station: activeStation()},
		&fakeSlotRepo{slot: &domain.Slot{ID: 100, StationID: 10}},
		&fakeUserClient{err: userservice.ErrUserNotFound},
	)

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, createBooking.ErrUserNotFound)
}

func TestCreateBooking_StationChecks(t *testing.T) {
	t.Run("station not found", func(t *testing.T) {
		uc := newUseCase(
			&fakeBookingRepo{},
			&fakeStationRepo{err: stationRepo.ErrStationNotFound},
			&fakeSlotRepo{slot: &domain.Slot{ID: 100, StationID: 10}},
			&fakeUserClient{user: &userservice.User{ID: 1}},
		)

		_, err := uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, createBooking.ErrStationNotFound)
	})

	t.Run("station inactive", func(t *testing.T) {
		station := activeStation()
		station.Status = domain.StationInactive

		uc := newUseCase(
			&fakeBookingRepo{},
			&fakeStationRepo{station: station},
			&fakeSlotRepo{slot: &domain.Slot{ID: 100, StationID: 10}},
			&fakeUserClient{user: &userservice.User{ID: 1}},
		)

		_, err := uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, createBooking.ErrStationInactive)
	})

	t.Run("no available slots", func(t *testing.T) {
		station := activeStation()
		station.AvailableSlots = 0

		uc := newUseCase(
			&fakeBookingRepo{},
			&fakeStationRepo{station: station},
			&fakeSlotRepo{slot: &domain.Slot{ID: 100, StationID: 10}},
			&fakeUserClient{user: &userservice.User{ID: 1}},
		)

		_, err := uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, createBooking.ErrNoAvailableSlots)
	})

	t.Run("slot belongs to another station", func(t *testing.T) {
		uc := newUseCase(
			&fakeBookingRepo{},
			&fakeStationRepo{station: activeStation()},
			&fakeSlotRepo{slot: &domain.Slot{ID: 100, StationID: 99}},
			&fakeUserClient{user: &userservice.User{ID: 1}},
		)

		_, err := uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, createBooking.ErrSlotNotFound)
	})

	t.Run("slot missing", func(t *testing.T) {
		uc := newUseCase(
			&fakeBookingRepo{},
			&fakeStationRepo{station: activeStation()},
			&fakeSlotRepo{err: slotRepo.ErrSlotNotFound},
			&fakeUserClient{user: &userservice.User{ID: 1}},
		)

		_, err := uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, createBooking.ErrSlotNotFound)
	})

	t.Run("slot repository failure is not a not-found", func(t *testing.T) {
		uc := newUseCase(
			&fakeBookingRepo{},
			&fakeStationRepo{station: activeStation()},
			&fakeSlotRepo{err: errors.New("connection refused")},
			&fakeUserClient{user: &userservice.User{ID: 1}},
		)

		_, err := uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, createBooking.ErrInternal)
		assert.NotErrorIs(t, err, createBooking.ErrSlotNotFound)
	})
}

func TestCreateBooking_Conflicts(t *testing.T) {
	t.Run("user window overlap", func(t *testing.T) {
		uc := newUseCase(
			&fakeBookingRepo{userBookings: []*domain.Booking{activeBooking(t, "09:30", "10:30")}},
			&fakeStationRepo{station: activeStation()},
			&fakeSlotRepo{slot: &domain.Slot{ID: 100, StationID: 10}},
			&fakeUserClient{user: &userservice.User{ID: 1}},
		)

		_, err := uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, createBooking.ErrUserTimeConflict)
	})

	t.Run("slot window overlap", func(t *testing.T) {
		uc := newUseCase(
			&fakeBookingRepo{slotBookings: []*domain.Booking{activeBooking(t, "09:30", "10:30")}},
			&fakeStationRepo{station: activeStation()},
			&fakeSlotRepo{slot: &domain.Slot{ID: 100, StationID: 10}},
			&fakeUserClient{user: &userservice.User{ID: 1}},
		)

		_, err := uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, createBooking.ErrSlotTimeConflict)
	})

	t.Run("back to back windows do not conflict", func(t *testing.T) {
		bookings := &fakeBookingRepo{
			userBookings: []*domain.Booking{activeBooking(t, "10:00", "11:00")},
			slotBookings: []*domain.Booking{activeBooking(t, "08:00", "09:00")},
		}

		uc := newUseCase(
			bookings,
			&fakeStationRepo{station: activeStation()},
			&fakeSlotRepo{slot: &domain.Slot{ID: 100, StationID: 10}},
			&fakeUserClient{user: &userservice.User{ID: 1}},
		)

		resp, err := uc.Execute(context.Background(), validRequest(t))
		require.NoError(t, err)
		assert.Equal(t, int64(42), resp.ID)
	})
}

func TestCreateBooking_RepositoryFailure(t *testing.T) {
	uc := newUseCase(
		&fakeBookingRepo{createErr: errors.New("connection reset")},
		&fakeStationRepo{station: activeStation()},
		&fakeSlotRepo{slot: &domain.Slot{ID: 100, StationID: 10}},
		&fakeUserClient{user: &userservice.User{ID: 1}},
	)

	_, err := uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, createBooking.ErrInternal)
}
