package slots_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	slotRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/slot"
	stationRepo "github.com/m04kA/EVC-BookingService/internal/infra/storage/station"
	"github.com/m04kA/EVC-BookingService/internal/service/slots"
	"github.com/m04kA/EVC-BookingService/internal/service/slots/models"
	"github.com/m04kA/EVC-BookingService/pkg/ptr"
)

type fakeSlotRepo struct {
	slot         *domain.Slot
	getErr       error
	list         []*domain.Slot
	count        int
	numberExists bool
	created      *domain.Slot
	updated      *domain.Slot
	deletedID    int64
}

func (f *fakeSlotRepo) Create(_ context.Context, slot *domain.Slot) (*domain.Slot, error) {
	created := *slot
	created.ID = 100
	f.created = &created
	return &created, nil
}

func (f *fakeSlotRepo) GetByID(context.Context, int64) (*domain.Slot, error) {
	return f.slot, f.getErr
}

func (f *fakeSlotRepo) List(context.Context) ([]*domain.Slot, error) {
	return f.list, nil
}

func (f *fakeSlotRepo) ListByStation(context.Context, int64) ([]*domain.Slot, error) {
	return f.list, nil
}

func (f *fakeSlotRepo) CountByStation(context.Context, int64) (int, error) {
	return f.count, nil
}

func (f *fakeSlotRepo) ExistsNumber(context.Context, int64, int, *int64) (bool, error) {
	return f.numberExists, nil
}

func (f *fakeSlotRepo) Update(_ context.Context, slot *domain.Slot) error {
	f.updated = slot
	return nil
}

func (f *fakeSlotRepo) Delete(_ context.Context, id int64) error {
	f.deletedID = id
	return nil
}

type fakeStationRepo struct {
	station *domain.Station
	getErr  error
}

func (f *fakeStationRepo) GetByID(context.Context, int64) (*domain.Station, error) {
	return f.station, f.getErr
}

func (f *fakeStationRepo) Update(context.Context, *domain.Station) error {
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func station(total int) *domain.Station {
	return &domain.Station{
		ID:             10,
		Name:           "Downtown Fast Charge",
		TotalSlots:     total,
		AvailableSlots: total,
		ChargingType:   domain.ChargingFast,
		Status:         domain.StationActive,
	}
}

func newService(slotsRepo *fakeSlotRepo, stationsRepo *fakeStationRepo) *slots.Service {
	return slots.NewService(slotsRepo, stationsRepo, fakeTxManager{}, nopLogger{})
}

func TestService_AddSlot(t *testing.T) {
	t.Run("defaults to available status", func(t *testing.T) {
		repo := &fakeSlotRepo{count: 2}
		svc := newService(repo, &fakeStationRepo{station: station(5)})

		resp, err := svc.AddSlot(context.Background(), 10, &models.AddSlotRequest{SlotNumber: 3})

		require.NoError(t, err)
		assert.Equal(t, int64(100), resp.ID)
		assert.Equal(t, string(domain.SlotAvailable), resp.Status)
		assert.Equal(t, 3, repo.created.SlotNumber)
	})

	t.Run("station fully equipped", func(t *testing.T) {
		svc := newService(&fakeSlotRepo{count: 5}, &fakeStationRepo{station: station(5)})

		_, err := svc.AddSlot(context.Background(), 10, &models.AddSlotRequest{SlotNumber: 3})
		assert.ErrorIs(t, err, slots.ErrSlotLimitReached)
	})

	t.Run("number exceeds capacity", func(t *testing.T) {
		svc := newService(&fakeSlotRepo{}, &fakeStationRepo{station: station(5)})

		_, err := svc.AddSlot(context.Background(), 10, &models.AddSlotRequest{SlotNumber: 6})
		assert.ErrorIs(t, err, slots.ErrNumberExceedsCapacity)
	})

	t.Run("duplicate number", func(t *testing.T) {
		svc := newService(&fakeSlotRepo{count: 2, numberExists: true}, &fakeStationRepo{station: station(5)})

		_, err := svc.AddSlot(context.Background(), 10, &models.AddSlotRequest{SlotNumber: 2})
		assert.ErrorIs(t, err, slots.ErrDuplicateSlotNumber)
	})

	t.Run("station not found", func(t *testing.T) {
		svc := newService(&fakeSlotRepo{}, &fakeStationRepo{getErr: stationRepo.ErrStationNotFound})

		_, err := svc.AddSlot(context.Background(), 10, &models.AddSlotRequest{SlotNumber: 1})
		assert.ErrorIs(t, err, slots.ErrStationNotFound)
	})

	t.Run("invalid status", func(t *testing.T) {
		svc := newService(&fakeSlotRepo{}, &fakeStationRepo{station: station(5)})

		_, err := svc.AddSlot(context.Background(), 10, &models.AddSlotRequest{SlotNumber: 1, Status: "broken"})
		assert.ErrorIs(t, err, slots.ErrInvalidInput)
	})
}

func TestService_ListByStation(t *testing.T) {
	t.Run("returns slots", func(t *testing.T) {
		repo := &fakeSlotRepo{list: []*domain.Slot{
			{ID: 100, StationID: 10, SlotNumber: 1, Status: domain.SlotAvailable},
			{ID: 101, StationID: 10, SlotNumber: 2, Status: domain.SlotMaintenance},
		}}
		svc := newService(repo, &fakeStationRepo{station: station(5)})

		resp, err := svc.ListByStation(context.Background(), 10)

		require.NoError(t, err)
		require.Len(t, resp.Slots, 2)
		assert.Equal(t, string(domain.SlotMaintenance), resp.Slots[1].Status)
	})

	t.Run("station not found", func(t *testing.T) {
		svc := newService(&fakeSlotRepo{}, &fakeStationRepo{getErr: stationRepo.ErrStationNotFound})

		_, err := svc.ListByStation(context.Background(), 10)
		assert.ErrorIs(t, err, slots.ErrStationNotFound)
	})
}

func TestService_UpdateSlot(t *testing.T) {
	existing := func() *domain.Slot {
		return &domain.Slot{ID: 100, StationID: 10, SlotNumber: 2, Status: domain.SlotAvailable}
	}

	t.Run("status change", func(t *testing.T) {
		repo := &fakeSlotRepo{slot: existing()}
		svc := newService(repo, &fakeStationRepo{station: station(5)})

		resp, err := svc.UpdateSlot(context.Background(), 100, &models.UpdateSlotRequest{
			Status: ptr.Ptr("maintenance"),
		})

		require.NoError(t, err)
		assert.Equal(t, string(domain.SlotMaintenance), resp.Status)
		assert.Equal(t, domain.SlotMaintenance, repo.updated.Status)
	})

	t.Run("number change validates capacity", func(t *testing.T) {
		svc := newService(&fakeSlotRepo{slot: existing()}, &fakeStationRepo{station: station(5)})

		_, err := svc.UpdateSlot(context.Background(), 100, &models.UpdateSlotRequest{SlotNumber: ptr.Ptr(6)})
		assert.ErrorIs(t, err, slots.ErrNumberExceedsCapacity)
	})

	t.Run("number change validates uniqueness", func(t *testing.T) {
		svc := newService(&fakeSlotRepo{slot: existing(), numberExists: true}, &fakeStationRepo{station: station(5)})

		_, err := svc.UpdateSlot(context.Background(), 100, &models.UpdateSlotRequest{SlotNumber: ptr.Ptr(3)})
		assert.ErrorIs(t, err, slots.ErrDuplicateSlotNumber)
	})

	t.Run("empty update rejected", func(t *testing.T) {
		svc := newService(&fakeSlotRepo{slot: existing()}, &fakeStationRepo{station: station(5)})

		_, err := svc.UpdateSlot(context.Background(), 100, &models.UpdateSlotRequest{})
		assert.ErrorIs(t, err, slots.ErrInvalidInput)
	})
}

func TestService_DeleteSlot(t *testing.T) {
	t.Run("removes available slot", func(t *testing.T) {
		repo := &fakeSlotRepo{slot: &domain.Slot{ID: 100, StationID: 10, SlotNumber: 2, Status: domain.SlotAvailable}}
		svc := newService(repo, &fakeStationRepo{station: station(5)})

		err := svc.DeleteSlot(context.Background(), 100)

		require.NoError(t, err)
		assert.Equal(t, int64(100), repo.deletedID)
	})

	t.Run("occupied and maintenance slots are kept", func(t *testing.T) {
		for _, status := range []domain.SlotStatus{domain.SlotOccupied, domain.SlotMaintenance} {
			repo := &fakeSlotRepo{slot: &domain.Slot{ID: 100, StationID: 10, SlotNumber: 2, Status: status}}
			svc := newService(repo, &fakeStationRepo{station: station(5)})

			err := svc.DeleteSlot(context.Background(), 100)
			assert.ErrorIs(t, err, slots.ErrSlotNotRemovable, "status=%s", status)
			assert.Zero(t, repo.deletedID)
		}
	})

	t.Run("slot not found", func(t *testing.T) {
		svc := newService(&fakeSlotRepo{getErr: slotRepo.ErrSlotNotFound}, &fakeStationRepo{station: station(5)})

		err := svc.DeleteSlot(context.Background(), 100)
		assert.ErrorIs(t, err, slots.ErrSlotNotFound)
	})
}
