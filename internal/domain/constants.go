package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов бронирований, занимающих слот
// Используется при проверке пересечений временных окон
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
}

// TerminalStatuses список статусов, из которых нет переходов
var TerminalStatuses = []BookingStatus{
	StatusApproved,
	StatusRejected,
	StatusCancelled,
}
