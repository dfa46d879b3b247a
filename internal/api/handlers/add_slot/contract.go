package add_slot

import (
	"context"

	"github.com/m04kA/EVC-BookingService/internal/service/slots/models"
)

type SlotService interface {
	AddSlot(ctx context.Context, stationID int64, req *models.AddSlotRequest) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
