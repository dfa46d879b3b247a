package stations

import "errors"

var (
	// ErrStationNotFound возвращается, когда станция не найдена
	ErrStationNotFound = errors.New("station not found")

	// ErrStationNameTaken возвращается, когда имя станции уже занято
	ErrStationNameTaken = errors.New("station name already exists")

	// ErrCapacityExceeded возвращается, когда новая емкость меньше числа
	// слотов, занятых бронированием или обслуживанием
	ErrCapacityExceeded = errors.New("total slots below non-available slots count")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
