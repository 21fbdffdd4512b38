package entities

import (
	"testing"
	"time"
)

func TestRecurrenceRuleValidate(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		rule    RecurrenceRule
		wantErr bool
	}{
		{"monthly valid", RecurrenceRule{Type: RecurrenceMonthly, Day: 15}, false},
		{"monthly day 31", RecurrenceRule{Type: RecurrenceMonthly, Day: 31}, false},
		{"monthly day zero", RecurrenceRule{Type: RecurrenceMonthly, Day: 0}, true},
		{"monthly day too large", RecurrenceRule{Type: RecurrenceMonthly, Day: 32}, true},
		{"biannual valid", RecurrenceRule{Type: RecurrenceBiannual, Months: []int{1, 7}}, false},
		{"biannual empty months", RecurrenceRule{Type: RecurrenceBiannual}, true},
		{"biannual month out of range", RecurrenceRule{Type: RecurrenceBiannual, Months: []int{13}}, true},
		{"custom valid", RecurrenceRule{Type: RecurrenceCustom, Date: &date}, false},
		{"custom missing date", RecurrenceRule{Type: RecurrenceCustom}, true},
		{"unknown type", RecurrenceRule{Type: "weekly"}, true},
		{"empty type", RecurrenceRule{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
