package domain

import "time"

// SlotStatus represents the physical status of a charging slot
type SlotStatus string

const (
	SlotAvailable   SlotStatus = "available"
	SlotOccupied    SlotStatus = "occupied"
	SlotMaintenance SlotStatus = "maintenance"
)

// Slot represents a single charging bay belonging to exactly one station.
// SlotNumber is unique within the station and never exceeds the station's
// declared capacity.
type Slot struct {
	ID         int64
	StationID  int64
	SlotNumber int
	Status     SlotStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRemovable returns true if the slot may be removed implicitly on a
// capacity shrink. Occupied and maintenance slots are never removed
// implicitly.
func (s *Slot) IsRemovable() bool {
	return s.Status == SlotAvailable
}

// ValidSlotStatus reports whether the given value is a known slot status
func ValidSlotStatus(s SlotStatus) bool {
	return s == SlotAvailable || s == SlotOccupied || s == SlotMaintenance
}
