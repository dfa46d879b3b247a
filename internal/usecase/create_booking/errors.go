package create_booking

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден в UserService
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrUserBlocked возвращается, когда пользователь заблокирован администратором
	ErrUserBlocked = errors.New("create_booking: user is blocked")

	// ErrStationNotFound возвращается, когда станция не найдена
	ErrStationNotFound = errors.New("create_booking: station not found")

	// ErrStationInactive возвращается, когда станция существует, но неактивна
	ErrStationInactive = errors.New("create_booking: station is inactive")

	// ErrNoAvailableSlots возвращается, когда у станции не осталось доступной емкости
	ErrNoAvailableSlots = errors.New("create_booking: no available slots at station")

	// ErrSlotNotFound возвращается, когда слот не найден или принадлежит другой станции
	ErrSlotNotFound = errors.New("create_booking: slot not found at station")

	// ErrUserTimeConflict возвращается, когда у пользователя уже есть активное
	// бронирование на этой станции с пересекающимся временным окном
	ErrUserTimeConflict = errors.New("create_booking: user already has a booking at this station during this time")

	// ErrSlotTimeConflict возвращается, когда слот уже забронирован
	// на пересекающееся временное окно
	ErrSlotTimeConflict = errors.New("create_booking: slot already booked for the given time")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
