package clubtz

import (
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	if !Validate("Europe/Warsaw") || !Validate("UTC") {
		t.Fatal("expected known zones to validate")
	}
	if Validate("") || Validate("Mars/Olympus") {
		t.Fatal("expected unknown zones to fail validation")
	}
}

func TestToUTC_WinterAndSummerOffsets(t *testing.T) {
	// Warsaw is UTC+1 in January and UTC+2 in July.
	winter, err := ToUTC("2026-01-10", "10:00", "Europe/Warsaw")
	if err != nil {
		t.Fatalf("ToUTC failed: %v", err)
	}
	if !winter.Equal(time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected 09:00Z in winter, got %s", winter)
	}

	summer, err := ToUTC("2026-07-10", "10:00", "Europe/Warsaw")
	if err != nil {
		t.Fatalf("ToUTC failed: %v", err)
	}
	if !summer.Equal(time.Date(2026, 7, 10, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected 08:00Z in summer, got %s", summer)
	}
}

func TestFromUTC_RoundTrip(t *testing.T) {
	instant := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	date, clock, err := FromUTC(instant, "Europe/Warsaw")
	if err != nil {
		t.Fatalf("FromUTC failed: %v", err)
	}
	if date != "2026-01-10" || clock != "10:00" {
		t.Fatalf("expected 2026-01-10 10:00 local, got %s %s", date, clock)
	}

	back, err := ToUTC(date, clock, "Europe/Warsaw")
	if err != nil {
		t.Fatalf("ToUTC failed: %v", err)
	}
	if !back.Equal(instant) {
		t.Fatalf("round trip drifted: %s vs %s", back, instant)
	}
}

func TestDayWindowUTC(t *testing.T) {
	start, end, err := DayWindowUTC("2026-01-10", "Europe/Warsaw")
	if err != nil {
		t.Fatalf("DayWindowUTC failed: %v", err)
	}
	if !start.Equal(time.Date(2026, 1, 9, 23, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected window start %s", start)
	}
	if !end.Equal(time.Date(2026, 1, 10, 23, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected window end %s", end)
	}

	// Spring-forward day in Warsaw (2026-03-29) is 23 hours long.
	start, end, err = DayWindowUTC("2026-03-29", "Europe/Warsaw")
	if err != nil {
		t.Fatalf("DayWindowUTC failed: %v", err)
	}
	if got := end.Sub(start); got != 23*time.Hour {
		t.Fatalf("expected a 23h spring-forward day, got %s", got)
	}

	if _, _, err := DayWindowUTC("2026-13-01", "Europe/Warsaw"); err == nil {
		t.Fatal("expected error for invalid date")
	}
}
