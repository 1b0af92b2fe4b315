package availability

import "time"

// Interval is a half-open [Start, End) UTC interval, typically built from
// a reservation or slot lock.
type Interval struct {
	Start time.Time
	End   time.Time
}

// FreeSlots returns slot start times within [windowStart, windowEnd) where
// holding a court for duration would not overlap any busy interval. Slots
// that would start in the past (before now) are skipped.
//
// All times must be UTC; busy intervals come from reservations and
// unexpired slot locks.
func FreeSlots(windowStart, windowEnd time.Time, duration, step time.Duration, busy []Interval, now time.Time) []time.Time {
	if duration <= 0 || step <= 0 {
		return nil
	}
	if !windowEnd.After(windowStart) {
		return nil
	}
	if windowStart.Add(duration).After(windowEnd) {
		return nil
	}

	var slots []time.Time
	for t := windowStart; !t.Add(duration).After(windowEnd); t = t.Add(step) {
		if t.Before(now) {
			continue
		}
		if !overlapsAny(t, t.Add(duration), busy) {
			slots = append(slots, t)
		}
	}
	return slots
}

// IsFree reports whether the candidate [start, end) interval avoids every
// busy interval.
func IsFree(start, end time.Time, busy []Interval) bool {
	return !overlapsAny(start, end, busy)
}

func overlapsAny(start, end time.Time, busy []Interval) bool {
	for _, b := range busy {
		// Half-open intervals: [start,end) overlaps [b.Start,b.End) iff start < b.End && b.Start < end.
		if start.Before(b.End) && b.Start.Before(end) {
			return true
		}
	}
	return false
}
