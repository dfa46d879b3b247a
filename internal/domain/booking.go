package domain

import (
	"time"

	"github.com/m04kA/EVC-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
)

// PaymentStatus represents the payment status of a booking.
// It is stored and exposed but never transitioned by this service.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Booking represents a reservation of a charging slot for a time window
type Booking struct {
	ID        int64
	UserID    int64
	SlotID    int64
	StationID int64 // денормализованная ссылка, должна совпадать со станцией слота

	BookingDate time.Time        // calendar date, time component is ignored
	StartTime   types.TimeString // "HH:MM", same-day window
	EndTime     types.TimeString // "HH:MM", strictly after StartTime

	Status        BookingStatus
	PaymentStatus PaymentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking holds or may still claim a slot.
// Active bookings participate in overlap checks.
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusApproved
}

// IsTerminal returns true if no further transition is accepted
func (b *Booking) IsTerminal() bool {
	return b.Status != StatusPending
}

// CanBeUpdated returns true if the booking can be rescheduled by its owner
func (b *Booking) CanBeUpdated() bool {
	return b.Status == StatusPending
}

// CanBeCancelled returns true if the booking can be cancelled by its owner
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending
}

// CanBeDecided returns true if an admin may approve or reject the booking
func (b *Booking) CanBeDecided() bool {
	return b.Status == StatusPending
}

// OverlapFilter задает область поиска активных бронирований на дату
// Ровно одно из полей UserID/SlotID должно быть задано:
// - UserID: бронирования пользователя на станции (правило "одно окно на станцию")
// - SlotID: бронирования конкретного слота
// Сравнение окон по времени выполняется вызывающим кодом через Overlaps
type OverlapFilter struct {
	StationID int64
	UserID    *int64
	SlotID    *int64
	Date      time.Time
	ExcludeID *int64 // исключить собственный ID при reschedule
}
