package approve_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("approve_booking: booking not found")

	// ErrNotPending возвращается, когда бронирование уже покинуло статус pending
	ErrNotPending = errors.New("approve_booking: booking is not pending")

	// ErrStationDeleted возвращается, когда станция бронирования была удалена:
	// висячее бронирование не может быть подтверждено
	ErrStationDeleted = errors.New("approve_booking: station no longer exists")

	// ErrNoCapacity возвращается, когда подтверждение опустило бы счетчик
	// доступности станции ниже нуля
	ErrNoCapacity = errors.New("approve_booking: station has no available slots")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("approve_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("approve_booking: internal error")
)
