package list_all_slots

import (
	"context"

	"github.com/m04kA/EVC-BookingService/internal/service/slots/models"
)

type SlotService interface {
	ListAll(ctx context.Context) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
