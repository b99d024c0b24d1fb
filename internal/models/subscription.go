package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// renewsSoonDays is the number of days before its due date in which a
// subscription is considered to renew soon.
const renewsSoonDays = 3

// maxBillings limits the number of billings a single BillDue call can
// create for one subscription.
const maxBillings = 1000

// Subscription is a recurring payment.
type Subscription struct {
	DefaultModel
	Name        string          `json:"name" example:"Streaming"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"12.99" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"`
	Frequency   Frequency       `json:"frequency" example:"Monthly"`
	NextDueDate time.Time       `json:"nextDueDate" gorm:"index" example:"2024-05-01T00:00:00Z"`
	Category    *Category       `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	CategoryID  *uuid.UUID      `json:"categoryId" example:"2c566a88-cda6-4c1b-8cdd-a1b1dc7c2a00"`
	IsActive    bool            `json:"isActive" example:"true"`
	Notes       string          `json:"notes" example:"Family plan"`
}

func (s *Subscription) BeforeSave(_ *gorm.DB) error {
	s.Name = strings.TrimSpace(s.Name)
	s.Notes = strings.TrimSpace(s.Notes)
	s.CategoryID = nilIfEmpty(s.CategoryID)

	if s.Frequency == "" {
		s.Frequency = FrequencyMonthly
	}

	if s.NextDueDate.IsZero() {
		s.NextDueDate = NextDate(s.Frequency, time.Now())
	}
	s.NextDueDate = s.NextDueDate.UTC()

	if s.Name == "" {
		return ErrSubscriptionNameEmpty
	}

	if !s.Amount.IsPositive() {
		return ErrSubscriptionAmountNotPositive
	}

	if !s.Frequency.Valid() {
		return ErrFrequencyInvalid
	}

	return nil
}

func (s *Subscription) AfterFind(tx *gorm.DB) error {
	s.NextDueDate = s.NextDueDate.In(time.UTC)
	return s.DefaultModel.AfterFind(tx)
}

// AnnualAmount is the amount paid for the subscription per year.
func (s Subscription) AnnualAmount() decimal.Decimal {
	return s.Amount.Mul(s.Frequency.Multiplier())
}

// MonthlyAmount is the annual amount spread evenly over twelve months.
func (s Subscription) MonthlyAmount() decimal.Decimal {
	return s.AnnualAmount().Div(decimal.NewFromInt(12))
}

// Advance moves the due date one interval forward.
func (s *Subscription) Advance() {
	s.NextDueDate = NextDate(s.Frequency, s.NextDueDate)
}

// DaysUntilDue is the number of calendar days from now until the due date.
// It is negative for overdue subscriptions.
func (s Subscription) DaysUntilDue(now time.Time) int {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	due := time.Date(s.NextDueDate.Year(), s.NextDueDate.Month(), s.NextDueDate.Day(), 0, 0, 0, 0, time.UTC)

	return int(due.Sub(today).Hours() / 24)
}

// RenewsSoon reports if an active subscription is due within the next days.
func (s Subscription) RenewsSoon(now time.Time) bool {
	days := s.DaysUntilDue(now)
	return s.IsActive && days >= 0 && days <= renewsSoonDays
}

// Bill records an expense for the current due date of the subscription
// and advances it. s is only changed when both are stored.
func (s *Subscription) Bill(db *gorm.DB) (Transaction, error) {
	if s.Frequency == FrequencyNever {
		return Transaction{}, ErrSubscriptionNeverBills
	}

	transaction := Transaction{
		Amount:         s.Amount,
		Date:           s.NextDueDate,
		Merchant:       s.Name,
		Notes:          s.Notes,
		CategoryID:     s.CategoryID,
		Type:           TransactionTypeExpense,
		SubscriptionID: &s.ID,
	}

	advanced := *s
	advanced.Advance()

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Create(&transaction).Error
		if err != nil {
			return err
		}

		return tx.Save(&advanced).Error
	})
	if err != nil {
		return Transaction{}, err
	}

	*s = advanced
	return transaction, nil
}

// BillDue bills all active subscriptions until their due date is after now.
func BillDue(db *gorm.DB, now time.Time) ([]Transaction, error) {
	var subscriptions []Subscription
	err := db.Where("is_active = ? AND frequency <> ? AND next_due_date <= ?", true, FrequencyNever, now.UTC()).Find(&subscriptions).Error
	if err != nil {
		return nil, err
	}

	var billed []Transaction
	for i := range subscriptions {
		s := &subscriptions[i]

		for n := 0; !s.NextDueDate.After(now); n++ {
			if n == maxBillings {
				return billed, fmt.Errorf("subscription %s: stopped billing after %d renewals", s.ID, maxBillings)
			}

			t, err := s.Bill(db)
			if err != nil {
				return billed, err
			}
			billed = append(billed, t)
		}
	}

	return billed, nil
}

// SubscriptionByID returns the subscription with the given ID.
func SubscriptionByID(db *gorm.DB, id uuid.UUID) (Subscription, error) {
	var subscription Subscription
	err := db.First(&subscription, "id = ?", id).Error
	return subscription, err
}
