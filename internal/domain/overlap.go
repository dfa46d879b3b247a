package domain

import "github.com/m04kA/EVC-BookingService/pkg/types"

// Overlaps reports whether two half-open time windows on the same calendar
// date share at least one instant. Boundaries touching exactly
// (aEnd == bStart) do not count as an overlap, so back-to-back bookings
// are allowed.
//
// Times are compared as zero-padded "HH:MM" strings, for which
// lexicographic order matches chronological order.
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}
