package approve_booking

import (
	"context"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	"github.com/m04kA/EVC-BookingService/internal/integrations/notifyservice"
	"github.com/m04kA/EVC-BookingService/internal/integrations/userservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	TransitionStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error
}

// StationRepository интерфейс репозитория станций
type StationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Station, error)
	ConsumeAvailableSlot(ctx context.Context, id int64) error
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
}

// NotifyServiceClient интерфейс клиента для NotifyService
type NotifyServiceClient interface {
	SendEmail(ctx context.Context, message *notifyservice.EmailMessage) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
