package stations

import (
	"context"

	"github.com/m04kA/EVC-BookingService/internal/domain"
)

// StationRepository интерфейс репозитория станций
type StationRepository interface {
	Create(ctx context.Context, station *domain.Station) (*domain.Station, error)
	GetByID(ctx context.Context, id int64) (*domain.Station, error)
	ExistsByName(ctx context.Context, name string, excludeID *int64) (bool, error)
	List(ctx context.Context, filter domain.StationFilter) ([]*domain.Station, error)
	Update(ctx context.Context, station *domain.Station) error
	Delete(ctx context.Context, id int64) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	BulkCreate(ctx context.Context, stationID int64, numbers []int) error
	ListByStation(ctx context.Context, stationID int64) ([]*domain.Slot, error)
	CountUnavailableByStation(ctx context.Context, stationID int64) (int, error)
	DeleteTopAvailable(ctx context.Context, stationID int64, n int) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
