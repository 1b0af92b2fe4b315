package timeutil

import (
	"testing"
	"time"
)

func TestIsValidUTCString(t *testing.T) {
	valid := []string{
		"2026-01-06T10:00:00Z",
		"2026-01-06T10:00:00.000Z",
		"2026-12-31T23:59:59.999Z",
	}
	for _, s := range valid {
		if !IsValidUTCString(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}

	invalid := []string{
		"",
		"2026-01-06T10:00:00+02:00",
		"2026-01-06T10:00:00",
		"2026-01-06 10:00:00Z",
		"2026-13-01T10:00:00.000Z", // month 13 matches the shape but not the calendar
		"2026-02-30T10:00:00Z",
		"not-a-date",
	}
	for _, s := range invalid {
		if IsValidUTCString(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}

func TestIsValidDateString(t *testing.T) {
	if !IsValidDateString("2026-01-06") {
		t.Fatal("expected 2026-01-06 to be valid")
	}
	for _, s := range []string{"2026-13-01", "2026-01-32", "2026-1-6", "06-01-2026", "2026-01-06T00:00:00Z"} {
		if IsValidDateString(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
	// 2024 is a leap year, 2026 is not.
	if !IsValidDateString("2024-02-29") {
		t.Fatal("expected 2024-02-29 to be valid")
	}
	if IsValidDateString("2026-02-29") {
		t.Fatal("expected 2026-02-29 to be invalid")
	}
}

func TestIsValidTimeString(t *testing.T) {
	for _, s := range []string{"0:00", "9:30", "09:30", "23:59"} {
		if !IsValidTimeString(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "24:00", "12:60", "12:5", "12:00:00", "12h30", "-1:00"} {
		if IsValidTimeString(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}

func TestCreateUTCDate(t *testing.T) {
	got, err := CreateUTCDate("2026-01-06", "10:30")
	if err != nil {
		t.Fatalf("CreateUTCDate failed: %v", err)
	}
	want := time.Date(2026, 1, 6, 10, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}

	if _, err := CreateUTCDate("2026-13-01", "10:30"); err == nil {
		t.Fatal("expected error for invalid date")
	}
	if _, err := CreateUTCDate("2026-01-06", "25:00"); err == nil {
		t.Fatal("expected error for invalid time")
	}
}

func TestUTCDayBounds(t *testing.T) {
	start, end, err := UTCDayBounds("2026-01-06")
	if err != nil {
		t.Fatalf("UTCDayBounds failed: %v", err)
	}
	if !start.Equal(time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start of day: %s", start)
	}
	if !end.Equal(time.Date(2026, 1, 6, 23, 59, 59, 999_000_000, time.UTC)) {
		t.Fatalf("unexpected end of day: %s", end)
	}
	if UTCDateString(start) != "2026-01-06" || UTCDateString(end) != "2026-01-06" {
		t.Fatal("day bounds left the requested date")
	}

	if _, _, err := UTCDayBounds("2026-02-30"); err == nil {
		t.Fatal("expected error for invalid date")
	}
}

func TestRangesOverlap(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2026, 1, 6, h, m, 0, 0, time.UTC)
	}

	cases := []struct {
		name                           string
		startA, endA, startB, endB     time.Time
		want                           bool
	}{
		{"disjoint", at(8, 0), at(9, 0), at(10, 0), at(11, 0), false},
		{"touching endpoints do not overlap", at(10, 0), at(11, 0), at(11, 0), at(12, 0), false},
		{"partial overlap", at(10, 0), at(11, 30), at(11, 0), at(12, 0), true},
		{"nested", at(10, 0), at(14, 0), at(11, 0), at(12, 0), true},
		{"identical", at(10, 0), at(11, 0), at(10, 0), at(11, 0), true},
	}
	for _, tc := range cases {
		got := RangesOverlap(tc.startA, tc.endA, tc.startB, tc.endB)
		if got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
		// Overlap is symmetric.
		if RangesOverlap(tc.startB, tc.endB, tc.startA, tc.endA) != got {
			t.Fatalf("%s: overlap is not symmetric", tc.name)
		}
	}
}

func TestAddMinutes(t *testing.T) {
	base := time.Date(2026, 1, 6, 23, 45, 0, 0, time.UTC)

	next := AddMinutes(base, 30)
	if UTCDateString(next) != "2026-01-07" || UTCTimeString(next) != "00:15" {
		t.Fatalf("expected rollover to 2026-01-07 00:15, got %s %s", UTCDateString(next), UTCTimeString(next))
	}

	prev := AddMinutes(base, -60)
	if UTCTimeString(prev) != "22:45" {
		t.Fatalf("expected 22:45, got %s", UTCTimeString(prev))
	}
}

func TestDurationMinutes(t *testing.T) {
	start := time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 6, 11, 30, 0, 0, time.UTC)
	if got := DurationMinutes(start, end); got != 90 {
		t.Fatalf("expected 90 minutes, got %d", got)
	}
}

func TestIsValidRange(t *testing.T) {
	start := time.Date(2026, 1, 6, 10, 0, 0, 0, time.UTC)
	if !IsValidRange(start, start.Add(time.Minute)) {
		t.Fatal("expected forward range to be valid")
	}
	if IsValidRange(start, start) {
		t.Fatal("zero-length range must be invalid")
	}
	if IsValidRange(start, start.Add(-time.Minute)) {
		t.Fatal("reversed range must be invalid")
	}
}

func TestTodayUTC(t *testing.T) {
	if !IsValidDateString(TodayUTC()) {
		t.Fatalf("TodayUTC returned malformed date %q", TodayUTC())
	}
}
