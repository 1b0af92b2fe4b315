// Package clubtz converts between club-local wall time and UTC. It is the
// single implementation of that conversion: it relies on the IANA tz
// database through time.LoadLocation, so DST transitions are handled by
// tzdata rather than offset arithmetic.
package clubtz

import (
	"fmt"
	"time"

	"github.com/ihor-metko/courtbook/services/court-service/internal/timeutil"
)

// Validate reports whether name resolves to a known IANA timezone.
func Validate(name string) bool {
	if name == "" {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

// ToUTC converts a club-local date + clock to the corresponding UTC
// instant.
func ToUTC(date, clock, tzName string) (time.Time, error) {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return time.Time{}, fmt.Errorf("unknown timezone %q: %w", tzName, err)
	}
	local, err := timeutil.CreateUTCDate(date, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), local.Minute(), 0, 0, loc).UTC(), nil
}

// FromUTC converts a UTC instant into the club-local date and HH:MM clock.
func FromUTC(t time.Time, tzName string) (date, clock string, err error) {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return "", "", fmt.Errorf("unknown timezone %q: %w", tzName, err)
	}
	local := t.In(loc)
	return local.Format("2006-01-02"), local.Format("15:04"), nil
}

// DayWindowUTC returns the UTC interval covering the club-local calendar
// date: local midnight to the next local midnight, half-open. Across DST
// transitions the window is 23 or 25 hours long.
func DayWindowUTC(date, tzName string) (time.Time, time.Time, error) {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("unknown timezone %q: %w", tzName, err)
	}
	if !timeutil.IsValidDateString(date) {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q", date)
	}
	day, _ := time.Parse("2006-01-02", date)
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return start.UTC(), end.UTC(), nil
}
