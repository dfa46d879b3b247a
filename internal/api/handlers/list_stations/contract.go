package list_stations

import (
	"context"

	"github.com/m04kA/EVC-BookingService/internal/service/stations/models"
)

type StationService interface {
	List(ctx context.Context, req *models.ListStationsRequest) (*models.StationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
