package v1

import (
	"github.com/expense-tracker/backend/internal/aggregation"
	"github.com/shopspring/decimal"
)

// Summary is the data for the overview screen.
type Summary struct {
	aggregation.BudgetOverview
	DisplaySpent     string             `json:"displaySpent" example:"€ 750,00"`
	DisplayRemaining string             `json:"displayRemaining" example:"€ 750,00"`
	Recent           []Transaction      `json:"recent"`        // The most recent transactions, newest first
	Scheduled        []Transaction      `json:"scheduled"`     // Transactions dated in the future, soonest first
	TopCategories    []CategoryTotal    `json:"topCategories"` // Categories with the highest spending in the period
	Subscriptions    SubscriptionTotals `json:"subscriptions"` // Totals over all active subscriptions
}

type SummaryResponse struct {
	Data  *Summary `json:"data"`
	Error *string  `json:"error" example:"unknown period 'decade', must be one of day, week, month, year, all"` // The error, if any occurred
}

// CategoryTotal is the sum for a category.
type CategoryTotal struct {
	Category      Category        `json:"category"`
	Amount        decimal.Decimal `json:"amount" example:"120"`
	DisplayAmount string          `json:"displayAmount" example:"€ 120,00"`
}

type TopCategoriesResponse struct {
	Data  []CategoryTotal `json:"data"`
	Error *string         `json:"error" example:"unknown period 'decade', must be one of day, week, month, year, all"` // The error, if any occurred
}

type TopCategoriesQuery struct {
	QueryPeriod
	Type  string `form:"type" example:"Expense"` // Expense or Income. Defaults to Expense
	Limit int    `form:"limit" example:"4"`      // Maximum number of categories. Defaults to 4
}

type MonthlySeriesQuery struct {
	QueryReference
	Months int `form:"months" example:"6"` // Number of months up to and including the month of the reference. Defaults to 6
}

type MonthlySeriesResponse struct {
	Data  []aggregation.MonthTotal `json:"data"`
	Error *string                  `json:"error" example:"an error occurred while saving or loading data"` // The error, if any occurred
}

type DistributionResponse struct {
	Data  []aggregation.Share `json:"data"`
	Error *string             `json:"error" example:"an error occurred while saving or loading data"` // The error, if any occurred
}
