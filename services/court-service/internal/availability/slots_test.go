package availability

import (
	"testing"
	"time"
)

func TestFreeSlots_Basic(t *testing.T) {
	day := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	windowStart := day.Add(9 * time.Hour)
	windowEnd := day.Add(10 * time.Hour)

	busy := []Interval{
		{Start: day.Add(9*time.Hour + 15*time.Minute), End: day.Add(9*time.Hour + 45*time.Minute)},
	}

	slots := FreeSlots(windowStart, windowEnd, 15*time.Minute, 15*time.Minute, busy, day)
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if !slots[0].Equal(day.Add(9 * time.Hour)) {
		t.Fatalf("expected first slot 09:00, got %s", slots[0].Format(time.RFC3339))
	}
	if !slots[1].Equal(day.Add(9*time.Hour + 45*time.Minute)) {
		t.Fatalf("expected second slot 09:45, got %s", slots[1].Format(time.RFC3339))
	}
}

func TestFreeSlots_SkipsPast(t *testing.T) {
	day := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	windowStart := day.Add(9 * time.Hour)
	windowEnd := day.Add(10 * time.Hour)

	now := day.Add(9*time.Hour + 31*time.Minute)
	slots := FreeSlots(windowStart, windowEnd, 15*time.Minute, 15*time.Minute, nil, now)
	// 09:00, 09:15, 09:30 are in the past (start < now). 09:45 is future.
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if !slots[0].Equal(day.Add(9*time.Hour + 45*time.Minute)) {
		t.Fatalf("expected slot 09:45, got %s", slots[0].Format(time.RFC3339))
	}
}

func TestFreeSlots_BackToBackDoesNotBlock(t *testing.T) {
	day := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	windowStart := day.Add(10 * time.Hour)
	windowEnd := day.Add(12 * time.Hour)

	// A reservation ending exactly at 11:00 does not block the 11:00 slot.
	busy := []Interval{
		{Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour)},
	}
	slots := FreeSlots(windowStart, windowEnd, time.Hour, time.Hour, busy, day)
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if !slots[0].Equal(day.Add(11 * time.Hour)) {
		t.Fatalf("expected slot 11:00, got %s", slots[0].Format(time.RFC3339))
	}
}

func TestIsFree(t *testing.T) {
	day := time.Date(2026, 1, 28, 0, 0, 0, 0, time.UTC)
	busy := []Interval{
		{Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour)},
	}

	if IsFree(day.Add(10*time.Hour+30*time.Minute), day.Add(11*time.Hour+30*time.Minute), busy) {
		t.Fatal("overlapping candidate must not be free")
	}
	if !IsFree(day.Add(11*time.Hour), day.Add(12*time.Hour), busy) {
		t.Fatal("candidate starting at a busy interval's end must be free")
	}
}
