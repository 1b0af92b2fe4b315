package pricing

import (
	"fmt"
	"math"
)

// LineItem is one priced portion of a slot: a half-open [Start, End)
// window billed at RateCents per hour. AmountCents is the rounded charge
// for this portion alone.
type LineItem struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	Minutes     int    `json:"minutes"`
	RateCents   int    `json:"rate_cents"`
	AmountCents int    `json:"amount_cents"`
}

// SlotPrice resolves the total price for a slot of durationMinutes
// starting at startClock, walking the day's timeline in order. Minutes
// covered by a segment are billed at that segment's hourly rate; minutes
// in timeline gaps fall back to defaultPriceCents. The sum is rounded
// once, at the end.
func SlotPrice(timeline []Segment, defaultPriceCents int, startClock string, durationMinutes int) (int, error) {
	portions, err := slotPortions(timeline, defaultPriceCents, startClock, durationMinutes)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, p := range portions {
		total += float64(p.priceCents) / 60 * float64(p.end-p.start)
	}
	return int(math.Round(total)), nil
}

// SlotBreakdown resolves the same walk as SlotPrice but returns the
// itemized portions, each rounded individually, plus their sum. The
// segment boundaries are identical to the ones SlotPrice charges over.
func SlotBreakdown(timeline []Segment, defaultPriceCents int, startClock string, durationMinutes int) ([]LineItem, int, error) {
	portions, err := slotPortions(timeline, defaultPriceCents, startClock, durationMinutes)
	if err != nil {
		return nil, 0, err
	}
	items := make([]LineItem, 0, len(portions))
	total := 0
	for _, p := range portions {
		minutes := p.end - p.start
		amount := int(math.Round(float64(p.priceCents) / 60 * float64(minutes)))
		items = append(items, LineItem{
			Start:       minutesClock(p.start),
			End:         minutesClock(p.end),
			Minutes:     minutes,
			RateCents:   p.priceCents,
			AmountCents: amount,
		})
		total += amount
	}
	return items, total, nil
}

type slotPortion struct {
	start, end int
	priceCents int
}

// slotPortions splits the slot window [start, start+duration) into
// ordered portions, one per overlapped timeline segment, with gaps
// between segments priced at the default rate.
func slotPortions(timeline []Segment, defaultPriceCents int, startClock string, durationMinutes int) ([]slotPortion, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %d", durationMinutes)
	}
	windowStart, err := clockMinutes(startClock)
	if err != nil {
		return nil, err
	}
	windowEnd := windowStart + durationMinutes

	var portions []slotPortion
	cursor := windowStart
	for _, seg := range timeline {
		segStart, err := clockMinutes(seg.Start)
		if err != nil {
			return nil, err
		}
		segEnd, err := clockMinutes(seg.End)
		if err != nil {
			return nil, err
		}
		if segEnd <= cursor || segStart >= windowEnd {
			continue
		}
		if segStart > cursor {
			portions = append(portions, slotPortion{cursor, segStart, defaultPriceCents})
			cursor = segStart
		}
		end := segEnd
		if end > windowEnd {
			end = windowEnd
		}
		portions = append(portions, slotPortion{cursor, end, seg.PriceCents})
		cursor = end
	}
	if cursor < windowEnd {
		portions = append(portions, slotPortion{cursor, windowEnd, defaultPriceCents})
	}
	return portions, nil
}
