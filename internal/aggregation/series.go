package aggregation

import (
	"time"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

const (
	// DefaultMonthsBack is the number of months MonthlySeries covers by default.
	DefaultMonthsBack = 6

	// MaxMonthsBack is the largest number of months MonthlySeries covers.
	MaxMonthsBack = 120
)

// MonthTotal is the sum of expenses in a month.
type MonthTotal struct {
	Month  types.Month     `json:"month" example:"2024-04"`
	Label  string          `json:"label" example:"Apr"` // Short month name in the requested language
	Amount decimal.Decimal `json:"amount" example:"842.17"`
}

// MonthlySeries sums the expenses for each of the monthsBack calendar months
// up to and including the month of the reference, oldest first.
//
// monthsBack is capped at MaxMonthsBack.
func MonthlySeries(transactions []models.Transaction, monthsBack int, reference time.Time, tag language.Tag) []MonthTotal {
	if monthsBack <= 0 {
		return []MonthTotal{}
	}
	monthsBack = min(monthsBack, MaxMonthsBack)

	current := types.MonthOf(reference)
	first := current.AddDate(0, -(monthsBack - 1))

	series := make([]MonthTotal, monthsBack)
	for i := range series {
		month := first.AddDate(0, i)
		series[i] = MonthTotal{
			Month:  month,
			Label:  MonthLabel(month.Month(), tag),
			Amount: decimal.Zero,
		}
	}

	for _, t := range transactions {
		if !t.IsExpense() {
			continue
		}

		date := t.Date.In(reference.Location())
		for i := range series {
			if series[i].Month.Contains(date) {
				series[i].Amount = series[i].Amount.Add(t.Amount)
				break
			}
		}
	}

	return series
}
