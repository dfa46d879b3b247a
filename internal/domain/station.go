package domain

import "time"

// ChargingType represents the charging speed class of a station
type ChargingType string

const (
	ChargingFast ChargingType = "fast"
	ChargingSlow ChargingType = "slow"
)

// StationStatus represents the operational status of a station
type StationStatus string

const (
	StationActive   StationStatus = "active"
	StationInactive StationStatus = "inactive"
)

// Station represents a physical charging station with a fixed capacity.
// AvailableSlots is a cached counter: TotalSlots minus the number of slots
// currently held by an approved booking. It is mutated only by approval
// of a booking or an explicit capacity resize.
type Station struct {
	ID             int64
	Name           string // unique
	Location       string
	TotalSlots     int // fixed capacity, positive
	AvailableSlots int // 0 <= AvailableSlots <= TotalSlots
	ChargingType   ChargingType
	Status         StationStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the station accepts new bookings
func (s *Station) IsActive() bool {
	return s.Status == StationActive
}

// HasAvailableSlots returns true if at least one slot is not consumed
// by an approved booking
func (s *Station) HasAvailableSlots() bool {
	return s.AvailableSlots > 0
}

// ValidChargingType reports whether the given value is a known charging type
func ValidChargingType(t ChargingType) bool {
	return t == ChargingFast || t == ChargingSlow
}

// ValidStationStatus reports whether the given value is a known station status
func ValidStationStatus(s StationStatus) bool {
	return s == StationActive || s == StationInactive
}

// StationFilter фильтр для поиска станций
type StationFilter struct {
	Location     *string       // подстрока локации (case-insensitive)
	ChargingType *ChargingType // фильтр по типу зарядки
	OnlyActive   bool          // только активные станции
}
