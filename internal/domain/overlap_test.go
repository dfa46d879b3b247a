package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/EVC-BookingService/internal/domain"
	"github.com/m04kA/EVC-BookingService/pkg/types"
)

func ts(t *testing.T, v string) types.TimeString {
	t.Helper()
	parsed, err := types.NewTimeStringFromString(v)
	if err != nil {
		t.Fatalf("bad time literal %q: %v", v, err)
	}
	return parsed
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		aStart string
		aEnd   string
		bStart string
		bEnd   string
		want   bool
	}{
		{
			name:   "partial overlap",
			aStart: "09:00", aEnd: "10:00",
			bStart: "09:30", bEnd: "10:30",
			want: true,
		},
		{
			name:   "identical windows",
			aStart: "09:00", aEnd: "10:00",
			bStart: "09:00", bEnd: "10:00",
			want: true,
		},
		{
			name:   "one window inside another",
			aStart: "09:00", aEnd: "12:00",
			bStart: "10:00", bEnd: "11:00",
			want: true,
		},
		{
			name:   "touching boundary is not an overlap",
			aStart: "09:00", aEnd: "10:00",
			bStart: "10:00", bEnd: "11:00",
			want: false,
		},
		{
			name:   "disjoint windows",
			aStart: "09:00", aEnd: "10:00",
			bStart: "14:00", bEnd: "15:00",
			want: false,
		},
		{
			name:   "one minute of overlap",
			aStart: "09:00", aEnd: "10:00",
			bStart: "09:59", bEnd: "11:00",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aStart, aEnd := ts(t, tt.aStart), ts(t, tt.aEnd)
			bStart, bEnd := ts(t, tt.bStart), ts(t, tt.bEnd)

			got := domain.Overlaps(aStart, aEnd, bStart, bEnd)
			assert.Equal(t, tt.want, got)

			// Пересечение симметрично
			mirrored := domain.Overlaps(bStart, bEnd, aStart, aEnd)
			assert.Equal(t, got, mirrored, "Overlaps must be symmetric")
		})
	}
}

func TestBookingStatusTransitions(t *testing.T) {
	pending := domain.Booking{Status: domain.StatusPending}
	approved := domain.Booking{Status: domain.StatusApproved}
	rejected := domain.Booking{Status: domain.StatusRejected}
	cancelled := domain.Booking{Status: domain.StatusCancelled}

	assert.True(t, pending.CanBeUpdated())
	assert.True(t, pending.CanBeCancelled())
	assert.True(t, pending.CanBeDecided())
	assert.True(t, pending.IsActive())

	// Терминальные статусы закрыты для любых переходов
	for _, b := range []domain.Booking{approved, rejected, cancelled} {
		assert.False(t, b.CanBeUpdated(), "status=%s", b.Status)
		assert.False(t, b.CanBeCancelled(), "status=%s", b.Status)
		assert.False(t, b.CanBeDecided(), "status=%s", b.Status)
	}

	// approved остается активным для проверок пересечений
	assert.True(t, approved.IsActive())
	assert.False(t, rejected.IsActive())
	assert.False(t, cancelled.IsActive())
}
