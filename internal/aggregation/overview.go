package aggregation

import (
	"time"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// DefaultRecent is the number of transactions Recent returns by default.
const DefaultRecent = 5

// Level describes how much of a budget has been used.
type Level string

const (
	LevelOK      Level = "ok"
	LevelWarning Level = "warning"
	LevelOver    Level = "over"
)

var (
	warningThreshold = decimal.RequireFromString("0.7")
	overThreshold    = decimal.RequireFromString("0.9")
)

// LevelFor returns the level for a progress ratio.
func LevelFor(progress decimal.Decimal) Level {
	if progress.LessThan(warningThreshold) {
		return LevelOK
	}

	if progress.LessThan(overThreshold) {
		return LevelWarning
	}

	return LevelOver
}

// BudgetOverview is the spending of a period compared to a budget limit.
type BudgetOverview struct {
	Period    Period          `json:"period" example:"month"`
	Spent     decimal.Decimal `json:"spent" example:"750"`
	Income    decimal.Decimal `json:"income" example:"2100"`
	Limit     decimal.Decimal `json:"limit" example:"1500"`
	Remaining decimal.Decimal `json:"remaining" example:"750"` // Negative when over budget
	Progress  decimal.Decimal `json:"progress" example:"0.5"`
	Level     Level           `json:"level" example:"ok"`
}

// Overview compares the expenses in the period of the reference to the limit.
func Overview(transactions []models.Transaction, limit decimal.Decimal, period Period, reference time.Time) BudgetOverview {
	filtered := FilterByPeriod(transactions, period, reference)
	spent := TotalByType(filtered, models.TransactionTypeExpense)
	progress := Progress(spent, limit)

	return BudgetOverview{
		Period:    period,
		Spent:     spent,
		Income:    TotalByType(filtered, models.TransactionTypeIncome),
		Limit:     limit,
		Remaining: limit.Sub(spent),
		Progress:  progress,
		Level:     LevelFor(progress),
	}
}

// Recent returns up to n transactions, newest first.
func Recent(transactions []models.Transaction, n int) []models.Transaction {
	sorted := slices.Clone(transactions)
	slices.SortStableFunc(sorted, func(a, b models.Transaction) int {
		return b.Date.Compare(a.Date)
	})

	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}

	return sorted
}

// Scheduled returns the transactions dated after now, soonest first.
func Scheduled(transactions []models.Transaction, now time.Time) []models.Transaction {
	var scheduled []models.Transaction
	for _, t := range transactions {
		if t.Date.After(now) {
			scheduled = append(scheduled, t)
		}
	}

	slices.SortStableFunc(scheduled, func(a, b models.Transaction) int {
		return a.Date.Compare(b.Date)
	})

	return scheduled
}
