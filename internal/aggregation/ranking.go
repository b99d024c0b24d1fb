package aggregation

import (
	"time"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// DefaultTopCategories is the number of categories TopCategories returns by default.
const DefaultTopCategories = 4

// UncategorizedLabel is the name transactions without a category are grouped under.
const UncategorizedLabel = "Other"

// CategoryTotal is the sum of transaction amounts for a category.
type CategoryTotal struct {
	Category models.Category `json:"category"`
	Amount   decimal.Decimal `json:"amount" example:"120"`
}

// TopCategories sums the amounts of the transactions of the given type per
// category and returns the categories with the highest sums first.
//
// Categories without any amount are dropped. Ties keep the order of
// categories. At most limit entries are returned, a limit that is not
// positive returns all of them.
func TopCategories(transactions []models.Transaction, categories []models.Category, t models.TransactionType, limit int) []CategoryTotal {
	sums := make(map[uuid.UUID]decimal.Decimal, len(categories))
	for _, transaction := range transactions {
		if transaction.Type != t || transaction.CategoryID == nil {
			continue
		}

		sums[*transaction.CategoryID] = sums[*transaction.CategoryID].Add(transaction.Amount)
	}

	totals := make([]CategoryTotal, 0, len(categories))
	for _, c := range categories {
		amount, ok := sums[c.ID]
		if !ok || amount.IsZero() {
			continue
		}

		totals = append(totals, CategoryTotal{Category: c, Amount: amount})
	}

	slices.SortStableFunc(totals, func(a, b CategoryTotal) int {
		return b.Amount.Cmp(a.Amount)
	})

	if limit > 0 && len(totals) > limit {
		totals = totals[:limit]
	}

	return totals
}

// Share is the part of the spending of a month that falls on one category.
type Share struct {
	Name       string          `json:"name" example:"Food"`
	CategoryID *uuid.UUID      `json:"categoryId" example:"2c566a88-cda6-4c1b-8cdd-a1b1dc7c2a00"` // Unset for uncategorized spending
	ColorHex   string          `json:"colorHex" example:"#34C759"`
	Amount     decimal.Decimal `json:"amount" example:"120"`
	Percent    *int64          `json:"percent,omitempty" example:"73"` // Rounded to an integer, omitted when there is no spending
}

// CategoryDistribution groups the expenses in the calendar month of the
// reference by category name and returns the groups with the highest
// amounts first.
//
// Expenses without a category, or with a category that is not in
// categories, are grouped under UncategorizedLabel. A category named
// like that shares the group, which then carries its ID and color.
func CategoryDistribution(transactions []models.Transaction, categories []models.Category, reference time.Time) []Share {
	byID := make(map[uuid.UUID]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	var shares []Share
	index := map[string]int{}
	total := decimal.Zero

	for _, t := range FilterByPeriod(transactions, PeriodMonth, reference) {
		if !t.IsExpense() {
			continue
		}

		share := Share{Name: UncategorizedLabel}
		if t.CategoryID != nil {
			if c, ok := byID[*t.CategoryID]; ok {
				id := c.ID
				share = Share{Name: c.Name, CategoryID: &id, ColorHex: c.ColorHex}
			}
		}

		i, ok := index[share.Name]
		if !ok {
			share.Amount = decimal.Zero
			shares = append(shares, share)
			i = len(shares) - 1
			index[share.Name] = i
		} else if shares[i].CategoryID == nil && share.CategoryID != nil {
			shares[i].CategoryID = share.CategoryID
			shares[i].ColorHex = share.ColorHex
		}

		shares[i].Amount = shares[i].Amount.Add(t.Amount)
		total = total.Add(t.Amount)
	}

	slices.SortStableFunc(shares, func(a, b Share) int {
		return b.Amount.Cmp(a.Amount)
	})

	if total.IsZero() {
		return shares
	}

	hundred := decimal.NewFromInt(100)
	for i := range shares {
		percent := shares[i].Amount.Mul(hundred).Div(total).Round(0).IntPart()
		shares[i].Percent = &percent
	}

	return shares
}
