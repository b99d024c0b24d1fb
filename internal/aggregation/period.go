// Package aggregation computes the derived values shown in summaries
// and charts. All functions work on a snapshot of the data and do not
// modify their input.
package aggregation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/expense-tracker/backend/internal/models"
)

var ErrPeriodUnknown = errors.New("unknown period")

// Period is the calendar granularity transactions are filtered by.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

// ParsePeriod parses a period name. The empty string is the current month.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case "":
		return PeriodMonth, nil
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear, PeriodAll:
		return p, nil
	}

	return "", fmt.Errorf("%w '%s', must be one of day, week, month, year, all", ErrPeriodUnknown, s)
}

// Contains reports if t is in the same calendar period as the reference.
//
// Both are compared in the location of the reference. Weeks are ISO 8601
// weeks, starting on Monday.
func (p Period) Contains(t, reference time.Time) bool {
	t = t.In(reference.Location())

	switch p {
	case PeriodAll:
		return true
	case PeriodYear:
		return t.Year() == reference.Year()
	case PeriodMonth:
		return t.Year() == reference.Year() && t.Month() == reference.Month()
	case PeriodWeek:
		ty, tw := t.ISOWeek()
		ry, rw := reference.ISOWeek()
		return ty == ry && tw == rw
	case PeriodDay:
		return t.Year() == reference.Year() && t.YearDay() == reference.YearDay()
	}

	return false
}

// FilterByPeriod returns the transactions in the same period as the reference.
func FilterByPeriod(transactions []models.Transaction, period Period, reference time.Time) []models.Transaction {
	if period == PeriodAll {
		return transactions
	}

	filtered := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if period.Contains(t.Date, reference) {
			filtered = append(filtered, t)
		}
	}

	return filtered
}
