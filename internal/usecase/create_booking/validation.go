package create_booking

import (
	"fmt"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	"github.com/m04kA/EVC-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.StationID <= 0 {
		return fmt.Errorf("%w: stationID must be positive", ErrInvalidInput)
	}

	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return validateTimeWindow(req.StartTime, req.EndTime)
}

// validateTimeWindow проверяет корректность временного окна
func validateTimeWindow(startTime, endTime types.TimeString) error {
	if startTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if endTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	if err := startTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := endTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !startTime.IsBefore(endTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	return nil
}

// hasOverlap проверяет, пересекается ли запрошенное окно хотя бы с одним
// из бронирований. Границы полуоткрытые: окна, соприкасающиеся концами,
// пересечением не считаются
func hasOverlap(startTime, endTime types.TimeString, bookings []*domain.Booking) bool {
	for _, booking := range bookings {
		if domain.Overlaps(booking.StartTime, booking.EndTime, startTime, endTime) {
			return true
		}
	}
	return false
}
