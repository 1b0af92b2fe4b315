package pricing

// SameScope reports whether two rules compete for the same dates: same
// type plus the same selector (day of week, exact date, or holiday
// reference). Only same-scope rules may not have overlapping time ranges.
func SameScope(a, b PriceRule) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case RuleSpecificDate:
		return a.Date == b.Date
	case RuleHoliday:
		return a.HolidayID == b.HolidayID
	case RuleSpecificDay:
		return a.DayOfWeek == b.DayOfWeek
	case RuleWeekdays, RuleWeekends, RuleAllDays:
		return true
	}
	return false
}

// FindConflictingRule returns the first existing rule whose half-open
// [StartClock, EndClock) range overlaps the candidate's within the same
// scope, or nil when the candidate is safe to persist. excludeID skips the
// rule being updated. Absence of a conflict is a normal value, not an
// error; the caller decides how to reject.
func FindConflictingRule(existing []PriceRule, candidate PriceRule, excludeID string) *PriceRule {
	candStart, err := clockMinutes(candidate.StartClock)
	if err != nil {
		return nil
	}
	candEnd, err := clockMinutes(candidate.EndClock)
	if err != nil {
		return nil
	}

	for i := range existing {
		r := existing[i]
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		if !SameScope(r, candidate) {
			continue
		}
		start, err := clockMinutes(r.StartClock)
		if err != nil {
			continue
		}
		end, err := clockMinutes(r.EndClock)
		if err != nil {
			continue
		}
		// Half-open: ranges that only touch at an endpoint do not conflict.
		if candStart < end && start < candEnd {
			return &existing[i]
		}
	}
	return nil
}
