package update_station

import (
	"context"

	"github.com/m04kA/EVC-BookingService/internal/service/stations/models"
)

type StationService interface {
	Update(ctx context.Context, id int64, req *models.UpdateStationRequest) (*models.StationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
