// Package pricing resolves court price rules into a deterministic per-day
// timeline and slot-level prices. It is pure: callers fetch rules and
// holidays from storage and hand them in; the same inputs always produce
// the same timeline.
package pricing

import (
	"time"

	"github.com/ihor-metko/courtbook/services/court-service/internal/timeutil"
)

// PriceRule is one pricing override for a court. StartClock/EndClock are
// HH:MM with the half-open convention [StartClock, EndClock); the
// StartClock < EndClock invariant is enforced at create/update time.
type PriceRule struct {
	ID         string
	CourtID    string
	Type       RuleType
	DayOfWeek  int    // 0=Sunday .. 6=Saturday, SPECIFIC_DAY only
	Date       string // YYYY-MM-DD, SPECIFIC_DATE only
	HolidayID  string // HOLIDAY only
	StartClock string
	EndClock   string
	PriceCents int // non-negative hourly rate
}

// HolidayDate is a named club-scoped date. A recurring holiday matches on
// month and day, ignoring the year.
type HolidayDate struct {
	ID        string
	ClubID    string
	Name      string
	Date      string // YYYY-MM-DD
	Recurring bool
}

// Matches reports whether the holiday falls on the given date.
func (h HolidayDate) Matches(date string) bool {
	if !h.Recurring {
		return h.Date == date
	}
	hd, err := time.Parse("2006-01-02", h.Date)
	if err != nil {
		return false
	}
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	return hd.Month() == d.Month() && hd.Day() == d.Day()
}

// Weekday returns the 0-6 weekday (Sunday=0) of a YYYY-MM-DD date.
func Weekday(date string) (int, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, err
	}
	return int(d.Weekday()), nil
}

// Applies reports whether the rule is in effect on the given date.
// A HOLIDAY rule applies only when the specific holiday it references
// matched the date; some other holiday falling on the same day is not
// enough.
func Applies(rule PriceRule, date string, weekday int, matched []HolidayDate) bool {
	switch rule.Type {
	case RuleSpecificDate:
		return rule.Date == date
	case RuleHoliday:
		for _, h := range matched {
			if h.ID == rule.HolidayID {
				return true
			}
		}
		return false
	case RuleSpecificDay:
		return rule.DayOfWeek == weekday
	case RuleWeekdays:
		return weekday >= 1 && weekday <= 5
	case RuleWeekends:
		return weekday == 0 || weekday == 6
	case RuleAllDays:
		return true
	}
	return false
}

// MatchingHolidays filters the club's holidays down to those falling on
// the given date.
func MatchingHolidays(holidays []HolidayDate, date string) []HolidayDate {
	var matched []HolidayDate
	for _, h := range holidays {
		if h.Matches(date) {
			matched = append(matched, h)
		}
	}
	return matched
}

// ValidateClocks checks the rule's time range: both clocks well-formed and
// StartClock strictly before EndClock.
func (r PriceRule) ValidateClocks() bool {
	if !timeutil.IsValidTimeString(r.StartClock) || !timeutil.IsValidTimeString(r.EndClock) {
		return false
	}
	start, _ := clockMinutes(r.StartClock)
	end, _ := clockMinutes(r.EndClock)
	return start < end
}
