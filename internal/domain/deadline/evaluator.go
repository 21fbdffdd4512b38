package deadline

import (
	"sort"
	"time"

	"github.com/loctime/controldoc/internal/domain/entities"
	"github.com/loctime/controldoc/pkg/errors"
)

// IsExpired reports whether a requirement last satisfied at lastApproved has
// lapsed as of today under the given recurrence rule. A nil lastApproved is
// not evaluated here; the scanner treats it as "missing" which is a distinct
// state from "expired". Comparisons are date-only in UTC.
func IsExpired(lastApproved *time.Time, rule entities.RecurrenceRule, today time.Time) (bool, error) {
	if err := rule.Validate(); err != nil {
		return false, err
	}
	if lastApproved == nil {
		return false, nil
	}

	last := dateOnly(*lastApproved)
	now := dateOnly(today)

	switch rule.Type {
	case entities.RecurrenceMonthly:
		next, err := NextDeadline(last, rule)
		if err != nil {
			return false, err
		}
		return now.After(next), nil

	case entities.RecurrenceBiannual:
		target, wrapped := nextTargetMonth(rule.Months, int(last.Month()))
		if wrapped {
			// Target falls in the following year; any later year means expired.
			return now.Year() > last.Year(), nil
		}
		if now.Year() > last.Year() {
			return true, nil
		}
		return now.Year() == last.Year() && int(now.Month()) >= target, nil

	case entities.RecurrenceCustom:
		return now.After(dateOnly(*rule.Date)), nil
	}

	return false, errors.NewInvalidRuleError("unknown recurrence type: " + string(rule.Type))
}

// NextDeadline computes the next due date after lastApproved. Only monthly
// and custom rules have a single concrete next date; biannual deadlines are
// month-granular and handled directly in IsExpired.
func NextDeadline(lastApproved time.Time, rule entities.RecurrenceRule) (time.Time, error) {
	if err := rule.Validate(); err != nil {
		return time.Time{}, err
	}
	switch rule.Type {
	case entities.RecurrenceMonthly:
		last := dateOnly(lastApproved)
		year, month := last.Year(), last.Month()+1
		if month > time.December {
			month = time.January
			year++
		}
		// Clamp the configured day to the target month's length, so a
		// day-31 rule lands on Feb 28/29 rather than rolling into March.
		day := rule.Day
		if end := daysIn(year, month); day > end {
			day = end
		}
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
	case entities.RecurrenceCustom:
		return dateOnly(*rule.Date), nil
	}
	return time.Time{}, errors.NewInvalidRuleError("next deadline undefined for rule type: " + string(rule.Type))
}

// nextTargetMonth finds the smallest configured month strictly greater than
// lastMonth. When none exists the schedule wraps to the first configured
// month of the next year.
func nextTargetMonth(months []int, lastMonth int) (target int, wrapped bool) {
	sorted := make([]int, len(months))
	copy(sorted, months)
	sort.Ints(sorted)

	for _, m := range sorted {
		if m > lastMonth {
			return m, false
		}
	}
	return sorted[0], true
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
