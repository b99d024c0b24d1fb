package aggregation

import (
	"github.com/expense-tracker/backend/internal/models"
	"github.com/shopspring/decimal"
)

// TotalByType sums the amounts of all transactions of the given type.
func TotalByType(transactions []models.Transaction, t models.TransactionType) decimal.Decimal {
	sum := decimal.Zero
	for _, transaction := range transactions {
		if transaction.Type == t {
			sum = sum.Add(transaction.Amount)
		}
	}

	return sum
}

// Progress is the ratio of spent to limit. A limit that is not
// positive is treated as 1. The ratio is not clamped.
func Progress(spent, limit decimal.Decimal) decimal.Decimal {
	if !limit.IsPositive() {
		limit = decimal.NewFromInt(1)
	}

	return spent.Div(limit)
}

// Totals are the sums for a list of subscriptions.
type Totals struct {
	Active  int             `json:"active" example:"4"`      // Number of active subscriptions
	Monthly decimal.Decimal `json:"monthly" example:"54.97"` // Sum of the monthly amounts of all active subscriptions
	Yearly  decimal.Decimal `json:"yearly" example:"659.64"` // Sum of the annual amounts of all active subscriptions
}

// SubscriptionTotals sums the amounts of all active subscriptions.
func SubscriptionTotals(subscriptions []models.Subscription) Totals {
	totals := Totals{
		Monthly: decimal.Zero,
		Yearly:  decimal.Zero,
	}

	for _, s := range subscriptions {
		if !s.IsActive {
			continue
		}

		totals.Active++
		totals.Yearly = totals.Yearly.Add(s.AnnualAmount())
	}

	totals.Monthly = totals.Yearly.Div(decimal.NewFromInt(12))
	return totals
}
