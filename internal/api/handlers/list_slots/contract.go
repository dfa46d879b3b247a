package list_slots

import (
	"context"

	"github.com/m04kA/EVC-BookingService/internal/service/slots/models"
)

type SlotService interface {
	ListByStation(ctx context.Context, stationID int64) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
