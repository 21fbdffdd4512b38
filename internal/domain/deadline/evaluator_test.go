package deadline

import (
	"testing"
	"time"

	"github.com/loctime/controldoc/internal/domain/entities"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func monthly(day int) entities.RecurrenceRule {
	return entities.RecurrenceRule{Type: entities.RecurrenceMonthly, Day: day}
}

func biannual(months ...int) entities.RecurrenceRule {
	return entities.RecurrenceRule{Type: entities.RecurrenceBiannual, Months: months}
}

func custom(y int, m time.Month, d int) entities.RecurrenceRule {
	return entities.RecurrenceRule{Type: entities.RecurrenceCustom, Date: datePtr(y, m, d)}
}

func TestIsExpired(t *testing.T) {
	tests := []struct {
		name         string
		lastApproved *time.Time
		rule         entities.RecurrenceRule
		today        time.Time
		want         bool
	}{
		{
			name:         "monthly not yet due",
			lastApproved: datePtr(2024, time.January, 10),
			rule:         monthly(15),
			today:        date(2024, time.February, 10),
			want:         false,
		},
		{
			name:         "monthly on deadline day",
			lastApproved: datePtr(2024, time.January, 10),
			rule:         monthly(15),
			today:        date(2024, time.February, 15),
			want:         false,
		},
		{
			name:         "monthly past deadline",
			lastApproved: datePtr(2024, time.January, 10),
			rule:         monthly(15),
			today:        date(2024, time.February, 16),
			want:         true,
		},
		{
			name:         "monthly day 31 clamps to end of february",
			lastApproved: datePtr(2024, time.January, 20),
			rule:         monthly(31),
			today:        date(2024, time.February, 29),
			want:         false,
		},
		{
			name:         "monthly day 31 expired in march",
			lastApproved: datePtr(2024, time.January, 20),
			rule:         monthly(31),
			today:        date(2024, time.March, 1),
			want:         true,
		},
		{
			name:         "biannual before target month",
			lastApproved: datePtr(2024, time.January, 5),
			rule:         biannual(1, 7),
			today:        date(2024, time.June, 30),
			want:         false,
		},
		{
			name:         "biannual in target month",
			lastApproved: datePtr(2024, time.January, 5),
			rule:         biannual(1, 7),
			today:        date(2024, time.July, 5),
			want:         true,
		},
		{
			name:         "biannual wraps to next year, same year not expired",
			lastApproved: datePtr(2024, time.August, 1),
			rule:         biannual(1, 7),
			today:        date(2024, time.December, 31),
			want:         false,
		},
		{
			name:         "biannual wraps to next year, next year expired",
			lastApproved: datePtr(2024, time.August, 1),
			rule:         biannual(1, 7),
			today:        date(2025, time.January, 2),
			want:         true,
		},
		{
			name:         "biannual multi-year gap always expired",
			lastApproved: datePtr(2021, time.March, 1),
			rule:         biannual(1, 7),
			today:        date(2024, time.February, 1),
			want:         true,
		},
		{
			name:         "biannual unsorted months behaves like sorted",
			lastApproved: datePtr(2024, time.January, 5),
			rule:         biannual(7, 1),
			today:        date(2024, time.June, 30),
			want:         false,
		},
		{
			name:         "custom before date",
			lastApproved: datePtr(2024, time.January, 1),
			rule:         custom(2024, time.June, 1),
			today:        date(2024, time.January, 1),
			want:         false,
		},
		{
			name:         "custom on date",
			lastApproved: datePtr(2024, time.January, 1),
			rule:         custom(2024, time.June, 1),
			today:        date(2024, time.June, 1),
			want:         false,
		},
		{
			name:         "custom after date",
			lastApproved: datePtr(2024, time.January, 1),
			rule:         custom(2024, time.June, 1),
			today:        date(2024, time.June, 2),
			want:         true,
		},
		{
			name:         "custom ignores last approved entirely",
			lastApproved: datePtr(2030, time.January, 1),
			rule:         custom(2024, time.June, 1),
			today:        date(2024, time.July, 1),
			want:         true,
		},
		{
			name:         "nil last approved is never expired here",
			lastApproved: nil,
			rule:         monthly(15),
			today:        date(2024, time.February, 16),
			want:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsExpired(tt.lastApproved, tt.rule, tt.today)
			if err != nil {
				t.Fatalf("IsExpired: %v", err)
			}
			if got != tt.want {
				t.Fatalf("IsExpired = %v, want %v", got, tt.want)
			}
		})
	}
}

// Once expired, a later as-of date must never un-expire the requirement.
func TestIsExpiredMonotonic(t *testing.T) {
	rules := []entities.RecurrenceRule{
		monthly(15),
		biannual(1, 7),
		custom(2024, time.June, 1),
	}
	last := datePtr(2024, time.January, 10)

	for _, rule := range rules {
		expiredSeen := false
		day := date(2024, time.January, 11)
		for i := 0; i < 900; i++ {
			expired, err := IsExpired(last, rule, day)
			if err != nil {
				t.Fatalf("rule %s: %v", rule.Type, err)
			}
			if expiredSeen && !expired {
				t.Fatalf("rule %s un-expired at %s", rule.Type, day.Format("2006-01-02"))
			}
			if expired {
				expiredSeen = true
			}
			day = day.AddDate(0, 0, 1)
		}
		if !expiredSeen {
			t.Fatalf("rule %s never expired", rule.Type)
		}
	}
}

func TestIsExpiredInvalidRule(t *testing.T) {
	tests := []struct {
		name string
		rule entities.RecurrenceRule
	}{
		{"monthly without day", entities.RecurrenceRule{Type: entities.RecurrenceMonthly}},
		{"monthly day out of range", monthly(32)},
		{"biannual without months", entities.RecurrenceRule{Type: entities.RecurrenceBiannual}},
		{"biannual month out of range", biannual(0, 7)},
		{"custom without date", entities.RecurrenceRule{Type: entities.RecurrenceCustom}},
		{"unknown type", entities.RecurrenceRule{Type: "weekly"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := IsExpired(datePtr(2024, time.January, 1), tt.rule, date(2024, time.June, 1))
			if err == nil {
				t.Fatal("expected invalid rule error")
			}
		})
	}
}

func TestNextDeadlineMonthly(t *testing.T) {
	tests := []struct {
		name         string
		lastApproved time.Time
		day          int
		want         time.Time
	}{
		{"plain next month", date(2024, time.January, 10), 15, date(2024, time.February, 15)},
		{"december rolls into january", date(2024, time.December, 3), 10, date(2025, time.January, 10)},
		{"day 31 clamped in leap february", date(2024, time.January, 5), 31, date(2024, time.February, 29)},
		{"day 31 clamped in non-leap february", date(2025, time.January, 5), 31, date(2025, time.February, 28)},
		{"day 31 clamped in april", date(2024, time.March, 12), 31, date(2024, time.April, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextDeadline(tt.lastApproved, monthly(tt.day))
			if err != nil {
				t.Fatalf("NextDeadline: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("NextDeadline = %s, want %s", got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

func TestIsExpiredIgnoresTimeOfDay(t *testing.T) {
	last := time.Date(2024, time.January, 10, 23, 59, 0, 0, time.UTC)
	today := time.Date(2024, time.February, 15, 23, 59, 59, 0, time.UTC)

	expired, err := IsExpired(&last, monthly(15), today)
	if err != nil {
		t.Fatalf("IsExpired: %v", err)
	}
	if expired {
		t.Fatal("deadline day at 23:59 should not count as expired")
	}
}
