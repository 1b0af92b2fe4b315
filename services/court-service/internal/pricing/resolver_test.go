package pricing

import "testing"

func TestSlotPrice_SingleSegment(t *testing.T) {
	timeline := []Segment{{Start: "08:00", End: "22:00", PriceCents: 3000}}

	got, err := SlotPrice(timeline, 2000, "10:00", 60)
	if err != nil {
		t.Fatalf("SlotPrice failed: %v", err)
	}
	if got != 3000 {
		t.Fatalf("expected 3000, got %d", got)
	}

	got, err = SlotPrice(timeline, 2000, "10:00", 90)
	if err != nil {
		t.Fatalf("SlotPrice failed: %v", err)
	}
	if got != 4500 {
		t.Fatalf("expected 4500 for 90 minutes at 3000/h, got %d", got)
	}
}

func TestSlotPrice_SpanningTwoSegments(t *testing.T) {
	timeline := []Segment{
		{Start: "08:00", End: "10:30", PriceCents: 3000},
		{Start: "10:30", End: "22:00", PriceCents: 6000},
	}

	// 30 min at 3000/h + 30 min at 6000/h = 1500 + 3000.
	got, err := SlotPrice(timeline, 2000, "10:00", 60)
	if err != nil {
		t.Fatalf("SlotPrice failed: %v", err)
	}
	if got != 4500 {
		t.Fatalf("expected 4500, got %d", got)
	}
}

func TestSlotPrice_FallsBackToDefault(t *testing.T) {
	// No rules at all: every minute is billed at the court default.
	got, err := SlotPrice(nil, 2400, "09:00", 75)
	if err != nil {
		t.Fatalf("SlotPrice failed: %v", err)
	}
	if got != 3000 {
		t.Fatalf("expected 3000 for 75 minutes at 2400/h, got %d", got)
	}

	// A gap before the first segment is billed at the default.
	timeline := []Segment{{Start: "10:00", End: "22:00", PriceCents: 6000}}
	got, err = SlotPrice(timeline, 2400, "09:30", 60)
	if err != nil {
		t.Fatalf("SlotPrice failed: %v", err)
	}
	if got != 1200+3000 {
		t.Fatalf("expected 4200, got %d", got)
	}
}

func TestSlotPrice_RoundsOnceAtTheEnd(t *testing.T) {
	// 1000/h for 20 min is 333.33...; three such portions in one slot sum
	// to 1000.0 exactly, so a single final rounding yields 1000.
	timeline := []Segment{
		{Start: "10:00", End: "10:20", PriceCents: 1000},
		{Start: "10:20", End: "10:40", PriceCents: 1000},
		{Start: "10:40", End: "11:00", PriceCents: 1000},
	}
	got, err := SlotPrice(timeline, 0, "10:00", 60)
	if err != nil {
		t.Fatalf("SlotPrice failed: %v", err)
	}
	if got != 1000 {
		t.Fatalf("expected 1000, got %d", got)
	}
}

func TestSlotPrice_RejectsBadInput(t *testing.T) {
	if _, err := SlotPrice(nil, 2000, "10:00", 0); err == nil {
		t.Fatal("expected error for zero duration")
	}
	if _, err := SlotPrice(nil, 2000, "25:00", 60); err == nil {
		t.Fatal("expected error for invalid clock")
	}
}

func TestSlotBreakdown_MatchesSlotPriceBoundaries(t *testing.T) {
	timeline := []Segment{
		{Start: "08:00", End: "10:30", PriceCents: 3000},
		{Start: "10:30", End: "12:00", PriceCents: 6000},
	}

	items, total, err := SlotBreakdown(timeline, 2400, "10:00", 180)
	if err != nil {
		t.Fatalf("SlotBreakdown failed: %v", err)
	}

	want := []LineItem{
		{Start: "10:00", End: "10:30", Minutes: 30, RateCents: 3000, AmountCents: 1500},
		{Start: "10:30", End: "12:00", Minutes: 90, RateCents: 6000, AmountCents: 9000},
		{Start: "12:00", End: "13:00", Minutes: 60, RateCents: 2400, AmountCents: 2400},
	}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d: %v", len(want), len(items), items)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("item %d: expected %v, got %v", i, want[i], items[i])
		}
	}
	if total != 12900 {
		t.Fatalf("expected total 12900, got %d", total)
	}

	price, err := SlotPrice(timeline, 2400, "10:00", 180)
	if err != nil {
		t.Fatalf("SlotPrice failed: %v", err)
	}
	if price != total {
		t.Fatalf("price %d diverged from breakdown total %d on whole-cent amounts", price, total)
	}
}

func TestSlotBreakdown_ItemsRoundIndividually(t *testing.T) {
	// Each 20-minute portion of 1000/h rounds to 333; the itemized total is
	// 999 while the single-price path rounds the exact sum to 1000.
	timeline := []Segment{
		{Start: "10:00", End: "10:20", PriceCents: 1000},
		{Start: "10:20", End: "10:40", PriceCents: 500},
		{Start: "10:40", End: "11:00", PriceCents: 1000},
	}
	items, total, err := SlotBreakdown(timeline, 0, "10:00", 60)
	if err != nil {
		t.Fatalf("SlotBreakdown failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].AmountCents != 333 || items[1].AmountCents != 167 || items[2].AmountCents != 333 {
		t.Fatalf("unexpected per-item rounding: %v", items)
	}
	if total != 833 {
		t.Fatalf("expected total 833, got %d", total)
	}
}
