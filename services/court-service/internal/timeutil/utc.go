// Package timeutil is the single source of truth for date/time validation,
// UTC day boundaries, and interval overlap. Every component that reasons
// about time goes through it so booking-conflict and pricing math agree on
// one convention: half-open [start, end) intervals in UTC.
package timeutil

import (
	"fmt"
	"regexp"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

var (
	utcInstantRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?Z$`)
	dateRe       = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	clockRe      = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// IsValidUTCString reports whether s is an ISO-8601 instant with a literal
// "Z" suffix. Offset forms ("+02:00") and bare local timestamps are
// rejected, as are calendar-invalid values that merely match the shape.
func IsValidUTCString(s string) bool {
	if !utcInstantRe.MatchString(s) {
		return false
	}
	_, err := time.Parse(time.RFC3339Nano, s)
	return err == nil
}

// IsValidDateString reports whether s is a real calendar date in
// YYYY-MM-DD form.
func IsValidDateString(s string) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// IsValidTimeString reports whether s is an H:MM or HH:MM clock value with
// hour 0-23 and minute 0-59. Seconds are not accepted.
func IsValidTimeString(s string) bool {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	hour := atoi2(m[1])
	minute := atoi2(m[2])
	return hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59
}

// CreateUTCDate combines a YYYY-MM-DD date and an HH:MM clock into one UTC
// instant. Invalid input fails fast.
func CreateUTCDate(date, clock string) (time.Time, error) {
	if !IsValidDateString(date) {
		return time.Time{}, fmt.Errorf("invalid date %q", date)
	}
	if !IsValidTimeString(clock) {
		return time.Time{}, fmt.Errorf("invalid time %q", clock)
	}
	day, _ := time.Parse(dateLayout, date)
	m := clockRe.FindStringSubmatch(clock)
	return time.Date(day.Year(), day.Month(), day.Day(), atoi2(m[1]), atoi2(m[2]), 0, 0, time.UTC), nil
}

// UTCDayBounds returns the first and last instants of the given date in
// UTC: 00:00:00.000Z and 23:59:59.999Z.
func UTCDayBounds(date string) (time.Time, time.Time, error) {
	if !IsValidDateString(date) {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q", date)
	}
	day, _ := time.Parse(dateLayout, date)
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Millisecond)
	return start, end, nil
}

// RangesOverlap is the half-open overlap test: [startA, endA) overlaps
// [startB, endB) iff startA < endB && startB < endA. Ranges that only touch
// at an endpoint do not overlap.
func RangesOverlap(startA, endA, startB, endB time.Time) bool {
	return startA.Before(endB) && startB.Before(endA)
}

// UTCDateString extracts the YYYY-MM-DD component of t in UTC.
func UTCDateString(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// UTCTimeString extracts the HH:MM component of t in UTC.
func UTCTimeString(t time.Time) string {
	return t.UTC().Format(clockLayout)
}

// AddMinutes adds mins minutes to t. Negative values are supported and
// hour/day boundaries roll over.
func AddMinutes(t time.Time, mins int) time.Time {
	return t.Add(time.Duration(mins) * time.Minute)
}

// DurationMinutes returns the whole minutes between start and end.
func DurationMinutes(start, end time.Time) int {
	return int(end.Sub(start) / time.Minute)
}

// IsValidRange reports whether end is strictly after start. Zero-length
// ranges are invalid.
func IsValidRange(start, end time.Time) bool {
	return end.After(start)
}

// TodayUTC returns the current date computed from UTC now, not the local
// calendar.
func TodayUTC() string {
	return time.Now().UTC().Format(dateLayout)
}

func atoi2(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
