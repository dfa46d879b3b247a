package update_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("update_booking: booking belongs to another user")

	// ErrNotPending возвращается, когда бронирование уже покинуло статус pending
	ErrNotPending = errors.New("update_booking: booking is not pending")

	// ErrStationNotFound возвращается, когда станция не найдена
	ErrStationNotFound = errors.New("update_booking: station not found")

	// ErrStationInactive возвращается, когда станция существует, но неактивна
	ErrStationInactive = errors.New("update_booking: station is inactive")

	// ErrSlotNotFound возвращается, когда слот не найден или принадлежит другой станции
	ErrSlotNotFound = errors.New("update_booking: slot not found at station")

	// ErrUserTimeConflict возвращается, когда у пользователя уже есть другое
	// активное бронирование на этой станции с пересекающимся окном
	ErrUserTimeConflict = errors.New("update_booking: user already has a booking at this station during this time")

	// ErrSlotTimeConflict возвращается, когда слот уже забронирован
	// на пересекающееся окно
	ErrSlotTimeConflict = errors.New("update_booking: slot already booked for the given time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
