package models

import (
	"strings"
	"time"

	"github.com/expense-tracker/backend/internal/color"
	"github.com/expense-tracker/backend/internal/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionTypeExpense TransactionType = "Expense"
	TransactionTypeIncome  TransactionType = "Income"
)

// Valid reports if t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// Transaction is a single expense or income.
type Transaction struct {
	DefaultModel
	Amount         decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"14.03" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"`
	Date           time.Time       `json:"date" gorm:"index" example:"1815-12-10T18:43:00.271152Z"`
	Merchant       string          `json:"merchant" example:"Corner Bakery"`
	Notes          string          `json:"notes" example:"Birthday cake"`
	Category       *Category       `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	CategoryID     *uuid.UUID      `json:"categoryId" gorm:"index" example:"2c566a88-cda6-4c1b-8cdd-a1b1dc7c2a00"`
	ColorHex       string          `json:"colorHex" example:"#FF9500"` // Overrides the category color when set
	Receipt        []byte          `json:"receipt,omitempty" swaggertype:"string" format:"base64"`
	Type           TransactionType `json:"type" example:"Expense"`
	Subscription   *Subscription   `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	SubscriptionID *uuid.UUID      `json:"subscriptionId" example:"9ab3af3e-3c98-4a52-9c24-c1d136f3c0d4"` // The subscription that billed this transaction
	ImportHash     string          `json:"importHash" example:"867e3a26dc0baf73f4bff506f31a97f6c32088917e9e5cf1a5ed6f3f84a6fa70"` // Hash of the imported statement line, used for duplicate detection
}

func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Merchant = strings.TrimSpace(t.Merchant)
	t.Notes = strings.TrimSpace(t.Notes)
	t.ColorHex = strings.TrimSpace(t.ColorHex)
	t.CategoryID = nilIfEmpty(t.CategoryID)
	t.SubscriptionID = nilIfEmpty(t.SubscriptionID)

	if t.Type == "" {
		t.Type = TransactionTypeExpense
	}

	if t.Date.IsZero() {
		t.Date = time.Now()
	}
	t.Date = t.Date.UTC()

	if !t.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	if t.Merchant == "" {
		return ErrTransactionMerchantEmpty
	}

	if !t.Amount.IsPositive() {
		return ErrTransactionAmountNotPositive
	}

	return nil
}

func (t *Transaction) AfterFind(tx *gorm.DB) error {
	t.Date = t.Date.In(time.UTC)
	return t.DefaultModel.AfterFind(tx)
}

// IsExpense reports if the transaction is an expense.
func (t Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// DisplayAmount is the formatted amount, prefixed with "-" for expenses
// and "+" for income.
func (t Transaction) DisplayAmount(f money.Formatter) string {
	return f.Signed(t.Amount, t.IsExpense())
}

// Color returns the color of the transaction if it has one, the color of
// the category otherwise. The category must have been loaded by the caller.
func (t Transaction) Color(category *Category) color.Color {
	if t.ColorHex != "" {
		if c, err := color.Decode(t.ColorHex); err == nil {
			return c
		}
	}

	if category != nil {
		return category.Color()
	}

	return color.Gray
}

// UpdateWith replaces all attributes of the transaction with the ones of
// other and saves it.
func (t *Transaction) UpdateWith(db *gorm.DB, other Transaction) error {
	other.DefaultModel = t.DefaultModel
	*t = other

	return db.Save(t).Error
}

// ParseAmount parses a decimal amount from user input. Both "." and ","
// are accepted as decimal separator. When both occur, the last one is the
// decimal separator and the other one groups thousands.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)

	comma, dot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	if comma > dot {
		s = strings.ReplaceAll(s[:comma], ".", "") + "." + s[comma+1:]
	} else if comma >= 0 {
		s = strings.ReplaceAll(s, ",", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrAmountUnparseable
	}

	return d, nil
}
