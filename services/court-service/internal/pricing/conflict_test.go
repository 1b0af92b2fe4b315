package pricing

import "testing"

func dayRule(id string, dayOfWeek int, start, end string) PriceRule {
	return PriceRule{
		ID:         id,
		CourtID:    "court-1",
		Type:       RuleSpecificDay,
		DayOfWeek:  dayOfWeek,
		StartClock: start,
		EndClock:   end,
		PriceCents: 3000,
	}
}

func TestFindConflictingRule_SameDayOverlap(t *testing.T) {
	existing := []PriceRule{dayRule("rule-1", 1, "11:00", "13:00")}

	candidate := dayRule("", 1, "09:00", "12:00")
	got := FindConflictingRule(existing, candidate, "")
	if got == nil {
		t.Fatal("expected a conflict for overlapping Monday rules")
	}
	if got.ID != "rule-1" {
		t.Fatalf("expected rule-1, got %s", got.ID)
	}
}

func TestFindConflictingRule_DifferentDayIsFine(t *testing.T) {
	existing := []PriceRule{dayRule("rule-1", 1, "11:00", "13:00")}

	candidate := dayRule("", 2, "09:00", "12:00")
	if got := FindConflictingRule(existing, candidate, ""); got != nil {
		t.Fatalf("Tuesday candidate must not conflict with Monday rule, got %v", got)
	}
}

func TestFindConflictingRule_TouchingEndpointsAllowed(t *testing.T) {
	existing := []PriceRule{dayRule("rule-1", 1, "09:00", "12:00")}

	candidate := dayRule("", 1, "12:00", "14:00")
	if got := FindConflictingRule(existing, candidate, ""); got != nil {
		t.Fatalf("back-to-back ranges must not conflict, got %v", got)
	}
}

func TestFindConflictingRule_ExcludesRuleBeingUpdated(t *testing.T) {
	existing := []PriceRule{dayRule("rule-1", 1, "09:00", "12:00")}

	// Updating rule-1 in place must not conflict with itself.
	candidate := dayRule("rule-1", 1, "10:00", "12:00")
	if got := FindConflictingRule(existing, candidate, "rule-1"); got != nil {
		t.Fatalf("update must skip the excluded rule, got %v", got)
	}
	if got := FindConflictingRule(existing, candidate, ""); got == nil {
		t.Fatal("without exclusion the overlap must be reported")
	}
}

func TestFindConflictingRule_ScopeSelectors(t *testing.T) {
	holidayA := PriceRule{ID: "hol-a", Type: RuleHoliday, HolidayID: "hol-1", StartClock: "08:00", EndClock: "20:00"}
	holidayB := PriceRule{Type: RuleHoliday, HolidayID: "hol-2", StartClock: "08:00", EndClock: "20:00"}
	if got := FindConflictingRule([]PriceRule{holidayA}, holidayB, ""); got != nil {
		t.Fatal("rules for different holidays are different scopes")
	}
	holidayB.HolidayID = "hol-1"
	if got := FindConflictingRule([]PriceRule{holidayA}, holidayB, ""); got == nil {
		t.Fatal("same holiday and overlapping range must conflict")
	}

	dateA := PriceRule{ID: "date-a", Type: RuleSpecificDate, Date: "2026-01-05", StartClock: "08:00", EndClock: "20:00"}
	dateB := PriceRule{Type: RuleSpecificDate, Date: "2026-01-06", StartClock: "08:00", EndClock: "20:00"}
	if got := FindConflictingRule([]PriceRule{dateA}, dateB, ""); got != nil {
		t.Fatal("rules for different dates are different scopes")
	}

	allA := PriceRule{ID: "all-a", Type: RuleAllDays, StartClock: "08:00", EndClock: "20:00"}
	allB := PriceRule{Type: RuleAllDays, StartClock: "19:00", EndClock: "22:00"}
	if got := FindConflictingRule([]PriceRule{allA}, allB, ""); got == nil {
		t.Fatal("ALL_DAYS rules share one scope; overlap must conflict")
	}

	// Different types never share a scope, even with identical ranges.
	weekA := PriceRule{ID: "week-a", Type: RuleWeekdays, StartClock: "08:00", EndClock: "20:00"}
	if got := FindConflictingRule([]PriceRule{weekA}, allB, ""); got != nil {
		t.Fatal("WEEKDAYS and ALL_DAYS are separate scopes")
	}
}

func TestValidateClocks(t *testing.T) {
	r := dayRule("", 1, "09:00", "12:00")
	if !r.ValidateClocks() {
		t.Fatal("expected valid clocks")
	}
	r.EndClock = "09:00"
	if r.ValidateClocks() {
		t.Fatal("zero-length range must be invalid")
	}
	r.EndClock = "08:00"
	if r.ValidateClocks() {
		t.Fatal("reversed range must be invalid")
	}
	r.EndClock = "24:00"
	if r.ValidateClocks() {
		t.Fatal("out-of-range clock must be invalid")
	}
}

func TestParseRuleType(t *testing.T) {
	for _, rt := range []RuleType{RuleSpecificDate, RuleHoliday, RuleSpecificDay, RuleWeekdays, RuleWeekends, RuleAllDays} {
		parsed, err := ParseRuleType(rt.String())
		if err != nil {
			t.Fatalf("ParseRuleType(%s) failed: %v", rt, err)
		}
		if parsed != rt {
			t.Fatalf("round trip mismatch: %s -> %s", rt, parsed)
		}
	}
	if _, err := ParseRuleType("SOMETIMES"); err == nil {
		t.Fatal("expected error for unknown rule type")
	}
}

func TestRuleTypePriorityOrder(t *testing.T) {
	order := []RuleType{RuleAllDays, RuleWeekends, RuleWeekdays, RuleSpecificDay, RuleHoliday, RuleSpecificDate}
	for i := 1; i < len(order); i++ {
		if order[i].Priority() <= order[i-1].Priority() {
			t.Fatalf("%s must outrank %s", order[i], order[i-1])
		}
	}
}
