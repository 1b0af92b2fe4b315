package pricing

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Segment is one entry of a day's price timeline: a half-open
// [Start, End) time-of-day interval with a single resolved hourly rate.
type Segment struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	PriceCents int    `json:"price_cents"`
}

// span is a half-open [start, end) interval in minutes from midnight.
type span struct {
	start, end int
}

func clockMinutes(clock string) (int, error) {
	sep := strings.IndexByte(clock, ':')
	if sep < 0 {
		return 0, fmt.Errorf("invalid clock %q", clock)
	}
	hour, err := strconv.Atoi(clock[:sep])
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q", clock)
	}
	minute, err := strconv.Atoi(clock[sep+1:])
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q", clock)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("clock %q out of range", clock)
	}
	return hour*60 + minute, nil
}

func minutesClock(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// subtract returns the portions of s not covered by any interval in
// covered. covered must be sorted and disjoint; the input is not modified.
func subtract(s span, covered []span) []span {
	remaining := []span{s}
	for _, c := range covered {
		var next []span
		for _, r := range remaining {
			if c.end <= r.start || c.start >= r.end {
				next = append(next, r)
				continue
			}
			if c.start > r.start {
				next = append(next, span{r.start, c.start})
			}
			if c.end < r.end {
				next = append(next, span{c.end, r.end})
			}
		}
		remaining = next
	}
	return remaining
}

// addCovered merges s into the covered set, returning a new sorted
// disjoint list.
func addCovered(covered []span, s span) []span {
	out := make([]span, 0, len(covered)+1)
	out = append(out, covered...)
	out = append(out, s)
	sort.Slice(out, func(i, j int) bool { return out[i].start < out[j].start })

	merged := out[:1]
	for _, c := range out[1:] {
		last := &merged[len(merged)-1]
		if c.start <= last.end {
			if c.end > last.end {
				last.end = c.end
			}
			continue
		}
		merged = append(merged, c)
	}
	return merged
}

// DayTimeline merges the rules applicable to date into a sorted,
// non-overlapping price timeline. Rules are processed in descending
// priority; each rule contributes only the portions of its range not
// already claimed by a higher-priority rule. Adjacent segments with the
// same price are merged. Portions of the day no rule covers are absent
// from the timeline; callers fall back to the court's default rate there.
func DayTimeline(rules []PriceRule, holidays []HolidayDate, date string) ([]Segment, error) {
	weekday, err := Weekday(date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", date)
	}
	matched := MatchingHolidays(holidays, date)

	var applicable []PriceRule
	for _, r := range rules {
		if Applies(r, date, weekday, matched) {
			applicable = append(applicable, r)
		}
	}
	sort.SliceStable(applicable, func(i, j int) bool {
		pi, pj := applicable[i].Type.Priority(), applicable[j].Type.Priority()
		if pi != pj {
			return pi > pj
		}
		return applicable[i].StartClock < applicable[j].StartClock
	})

	type pricedSpan struct {
		span
		priceCents int
	}
	var covered []span
	var pieces []pricedSpan
	for _, r := range applicable {
		start, err := clockMinutes(r.StartClock)
		if err != nil {
			return nil, err
		}
		end, err := clockMinutes(r.EndClock)
		if err != nil {
			return nil, err
		}
		if start >= end {
			continue
		}
		for _, part := range subtract(span{start, end}, covered) {
			pieces = append(pieces, pricedSpan{span: part, priceCents: r.PriceCents})
			covered = addCovered(covered, part)
		}
	}

	sort.Slice(pieces, func(i, j int) bool { return pieces[i].start < pieces[j].start })

	var segments []Segment
	for _, p := range pieces {
		if n := len(segments); n > 0 {
			last := &segments[n-1]
			if last.End == minutesClock(p.start) && last.PriceCents == p.priceCents {
				last.End = minutesClock(p.end)
				continue
			}
		}
		segments = append(segments, Segment{
			Start:      minutesClock(p.start),
			End:        minutesClock(p.end),
			PriceCents: p.priceCents,
		})
	}
	return segments, nil
}
