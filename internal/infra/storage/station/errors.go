package station

import "errors"

var (
	// ErrStationNotFound возвращается, когда станция не найдена
	ErrStationNotFound = errors.New("station.repository: station not found")

	// ErrNoCapacity возвращается, когда условный декремент счетчика доступности
	// не сработал: свободных слотов не осталось
	ErrNoCapacity = errors.New("station.repository: no available slots to consume")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("station.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("station.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("station.repository: failed to scan row")
)
