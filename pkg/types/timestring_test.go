package types_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EVC-BookingService/pkg/types"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "valid morning time", input: "09:30", want: "09:30"},
		{name: "valid midnight", input: "00:00", want: "00:00"},
		{name: "valid end of day", input: "23:59", want: "23:59"},
		{name: "missing zero padding", input: "9:30", wantErr: true},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "garbage", input: "banana", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "with seconds", input: "09:30:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := types.NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, types.ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestTimeString_Ordering(t *testing.T) {
	early, err := types.NewTimeStringFromString("08:00")
	require.NoError(t, err)
	late, err := types.NewTimeStringFromString("17:30")
	require.NoError(t, err)

	assert.True(t, early.IsBefore(late))
	assert.False(t, late.IsBefore(early))
	assert.True(t, late.IsAfter(early))
	assert.False(t, early.IsBefore(early))
	assert.False(t, early.IsAfter(early))
}

func TestTimeString_AddMinutes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		minutes int
		want    string
		wantErr bool
	}{
		{name: "add within hour", input: "09:00", minutes: 30, want: "09:30"},
		{name: "add across hour", input: "09:45", minutes: 30, want: "10:15"},
		{name: "add to exactly midnight", input: "23:00", minutes: 60, want: "24:00"},
		{name: "crossing midnight rejected", input: "23:30", minutes: 60, wantErr: true},
		{name: "negative result rejected", input: "00:10", minutes: -20, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := types.NewTimeStringFromString(tt.input)
			require.NoError(t, err)

			got, err := input.AddMinutes(tt.minutes)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, types.ErrTimeOutOfDay)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2026, 3, 15, 7, 5, 59, 0, time.UTC)
	assert.Equal(t, "07:05", types.NewTimeString(moment).String())
}

func TestTimeString_Minutes(t *testing.T) {
	input, err := types.NewTimeStringFromString("10:15")
	require.NoError(t, err)

	minutes, err := input.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 615, minutes)
}
