package update_booking

import (
	"time"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	updateBooking "github.com/m04kA/EVC-BookingService/internal/usecase/update_booking"
	"github.com/m04kA/EVC-BookingService/pkg/types"
)

// UpdateBookingRequest HTTP request model
// Окно перезаписывается целиком, все поля обязательны
type UpdateBookingRequest struct {
	StationID   int64  `json:"stationId"`
	SlotID      int64  `json:"slotId"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"userId"`
	StationID     int64  `json:"stationId"`
	SlotID        int64  `json:"slotId"`
	BookingDate   string `json:"bookingDate"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID, userID int64) (*updateBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &updateBooking.Request{
		BookingID: bookingID,
		UserID:    userID,
		StationID: r.StationID,
		SlotID:    r.SlotID,
		Date:      bookingDate,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		UserID:        resp.UserID,
		StationID:     resp.StationID,
		SlotID:        resp.SlotID,
		BookingDate:   resp.BookingDate.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		Status:        resp.Status,
		PaymentStatus: resp.PaymentStatus,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
