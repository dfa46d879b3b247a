package slots

import "errors"

var (
	// ErrSlotNotFound слот не найден
	ErrSlotNotFound = errors.New("slot not found")
	// ErrStationNotFound станция не найдена
	ErrStationNotFound = errors.New("station not found")
	// ErrSlotLimitReached число слотов станции достигло total_slots
	ErrSlotLimitReached = errors.New("slot limit reached for station")
	// ErrDuplicateSlotNumber слот с таким номером уже существует на станции
	ErrDuplicateSlotNumber = errors.New("slot number already exists for station")
	// ErrNumberExceedsCapacity номер слота выходит за пределы емкости станции
	ErrNumberExceedsCapacity = errors.New("slot number exceeds station capacity")
	// ErrSlotNotRemovable слот занят или на обслуживании
	ErrSlotNotRemovable = errors.New("slot is not available for removal")
	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("invalid input")
	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("internal service error")
)
