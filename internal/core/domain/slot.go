package domain

import (
	"fmt"
	"time"
)

// The clinic runs a single shared calendar from 09:00 to 17:00 in half-hour
// steps, giving 16 bookable slots per day. Slots are derived values and are
// never persisted.
const (
	clinicOpenHour  = 9
	clinicCloseHour = 17
	slotStep        = 30 * time.Minute
)

const timeOfDayLayout = "15:04:05"

// DailySlots returns the canonical ordered slot grid for any clinic day,
// rendered as "HH:MM:SS" strings. The grid is independent of the date and of
// existing bookings.
func DailySlots() []string {
	open := time.Duration(clinicOpenHour) * time.Hour
	close := time.Duration(clinicCloseHour) * time.Hour

	var slots []string
	for d := open; d < close; d += slotStep {
		hh := int(d.Hours())
		mm := int(d.Minutes()) % 60
		slots = append(slots, fmt.Sprintf("%02d:%02d:00", hh, mm))
	}
	return slots
}

// ParseTimeOfDay validates an "HH:MM:SS" string.
func ParseTimeOfDay(s string) (time.Time, error) {
	return time.Parse(timeOfDayLayout, s)
}

// CombineDateTime merges a calendar date and an "HH:MM:SS" time of day into a
// single instant in the host's local time. Scheduling is done on the clinic's
// wall clock; there is no cross-timezone handling.
func CombineDateTime(date time.Time, timeOfDay string) (time.Time, error) {
	tod, err := ParseTimeOfDay(timeOfDay)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q: %w", timeOfDay, err)
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		tod.Hour(), tod.Minute(), tod.Second(), 0,
		time.Local,
	), nil
}
