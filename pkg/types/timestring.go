package types

import (
	"errors"
	"fmt"
	"time"
)

// TimeString represents a wall-clock time of day in "HH:MM" format.
// The zero-padded representation guarantees that lexicographic order
// matches chronological order within a single day.
type TimeString string

const timeStringLayout = "15:04"

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format, expected HH:MM")

	// ErrTimeOutOfDay возвращается, когда результат операции выходит за пределы суток
	ErrTimeOutOfDay = errors.New("time is out of day range")
)

// NewTimeString creates a TimeString from a time.Time, keeping only the
// hour and minute components.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeStringLayout))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// String returns the underlying "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}

// IsZero returns true if the time string is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks that the value is a well-formed zero-padded "HH:MM" time.
func (t TimeString) Validate() error {
	parsed, err := time.Parse(timeStringLayout, string(t))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	// time.Parse принимает незападдированные значения ("9:05"),
	// поэтому дополнительно сверяем каноническую форму
	if parsed.Format(timeStringLayout) != string(t) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// IsBefore reports whether t is strictly earlier than other.
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// Minutes returns the number of minutes since midnight.
// The value must be validated beforehand.
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeStringLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes returns the time shifted forward by the given number of
// minutes. Crossing midnight is not allowed: bookable windows are
// same-day by design.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}

	total += minutes
	if total < 0 || total > 24*60 {
		return "", fmt.Errorf("%w: %q + %d minutes", ErrTimeOutOfDay, string(t), minutes)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}
