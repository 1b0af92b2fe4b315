package pricing

import "fmt"

// RuleType discriminates how a price rule matches a calendar date. The set
// is closed: every switch over it in this package handles all six values,
// so adding a new type fails compilation until the matching and priority
// logic are extended.
type RuleType uint8

const (
	RuleSpecificDate RuleType = iota
	RuleHoliday
	RuleSpecificDay
	RuleWeekdays
	RuleWeekends
	RuleAllDays
)

// Priority orders rule types for timeline resolution, highest first.
// When two applicable rules cover the same minute, the higher-priority
// type wins that minute entirely.
func (t RuleType) Priority() int {
	switch t {
	case RuleSpecificDate:
		return 6
	case RuleHoliday:
		return 5
	case RuleSpecificDay:
		return 4
	case RuleWeekdays:
		return 3
	case RuleWeekends:
		return 2
	case RuleAllDays:
		return 1
	}
	return 0
}

func (t RuleType) String() string {
	switch t {
	case RuleSpecificDate:
		return "SPECIFIC_DATE"
	case RuleHoliday:
		return "HOLIDAY"
	case RuleSpecificDay:
		return "SPECIFIC_DAY"
	case RuleWeekdays:
		return "WEEKDAYS"
	case RuleWeekends:
		return "WEEKENDS"
	case RuleAllDays:
		return "ALL_DAYS"
	}
	return fmt.Sprintf("RuleType(%d)", uint8(t))
}

// ParseRuleType maps the persisted discriminator back to a RuleType.
func ParseRuleType(s string) (RuleType, error) {
	switch s {
	case "SPECIFIC_DATE":
		return RuleSpecificDate, nil
	case "HOLIDAY":
		return RuleHoliday, nil
	case "SPECIFIC_DAY":
		return RuleSpecificDay, nil
	case "WEEKDAYS":
		return RuleWeekdays, nil
	case "WEEKENDS":
		return RuleWeekends, nil
	case "ALL_DAYS":
		return RuleAllDays, nil
	}
	return 0, fmt.Errorf("unknown rule type %q", s)
}
