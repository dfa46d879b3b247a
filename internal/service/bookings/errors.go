package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда бронирование нельзя отменить:
	// отмена доступна владельцу и только для статуса pending
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrNotPending возвращается, когда решение админа применяется
	// к бронированию, уже вышедшему из статуса pending
	ErrNotPending = errors.New("booking is not pending")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
