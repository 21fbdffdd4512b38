package entities

import (
	"fmt"
	"time"

	"github.com/loctime/controldoc/pkg/errors"
)

type RecurrenceType string

const (
	RecurrenceMonthly  RecurrenceType = "monthly"
	RecurrenceBiannual RecurrenceType = "biannual"
	RecurrenceCustom   RecurrenceType = "custom"
)

// RecurrenceRule describes how often a required document must be resubmitted.
// Exactly one payload field is meaningful depending on Type:
//
//	monthly  -> Day (1..31)
//	biannual -> Months (subset of 1..12)
//	custom   -> Date (a fixed calendar date)
type RecurrenceRule struct {
	Type   RecurrenceType `json:"type"`
	Day    int            `json:"day,omitempty"`
	Months []int          `json:"months,omitempty"`
	Date   *time.Time     `json:"date,omitempty"`
}

// Validate checks that the rule's tag matches its payload. Malformed rules
// are rejected at the store boundary, not coerced.
func (r RecurrenceRule) Validate() error {
	switch r.Type {
	case RecurrenceMonthly:
		if r.Day < 1 || r.Day > 31 {
			return errors.NewInvalidRuleError(fmt.Sprintf("monthly rule requires day in 1..31, got %d", r.Day))
		}
	case RecurrenceBiannual:
		if len(r.Months) == 0 {
			return errors.NewInvalidRuleError("biannual rule requires at least one month")
		}
		for _, m := range r.Months {
			if m < 1 || m > 12 {
				return errors.NewInvalidRuleError(fmt.Sprintf("biannual rule month out of range: %d", m))
			}
		}
	case RecurrenceCustom:
		if r.Date == nil {
			return errors.NewInvalidRuleError("custom rule requires a date")
		}
	default:
		return errors.NewInvalidRuleError(fmt.Sprintf("unknown recurrence type: %q", r.Type))
	}
	return nil
}

type RequiredDocument struct {
	ID               string         `json:"id"`
	CompanyID        string         `json:"company_id"`
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	Deadline         RecurrenceRule `json:"deadline"`
	AllowedFileTypes []string       `json:"allowed_file_types"`
	ExampleFileRef   *string        `json:"example_file_ref,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
}
