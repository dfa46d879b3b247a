package slots

import (
	"context"

	"github.com/m04kA/EVC-BookingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	List(ctx context.Context) ([]*domain.Slot, error)
	ListByStation(ctx context.Context, stationID int64) ([]*domain.Slot, error)
	CountByStation(ctx context.Context, stationID int64) (int, error)
	ExistsNumber(ctx context.Context, stationID int64, number int, excludeID *int64) (bool, error)
	Update(ctx context.Context, slot *domain.Slot) error
	Delete(ctx context.Context, id int64) error
}

// StationRepository интерфейс репозитория станций
type StationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Station, error)
	Update(ctx context.Context, station *domain.Station) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
