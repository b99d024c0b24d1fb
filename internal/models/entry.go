package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Entry is the input of the quick entry form.
type Entry struct {
	Amount     decimal.Decimal
	Date       time.Time
	Merchant   string
	Notes      string
	CategoryID *uuid.UUID
	Type       TransactionType
	Recurrence Frequency
}

// AddEntry stores an entry.
//
// An entry that does not recur is recorded as a transaction. A recurring
// entry creates an active subscription instead, named after the merchant
// and due one interval after the date of the entry. Exactly one of
// the returned pointers is set when err is nil.
func AddEntry(db *gorm.DB, e Entry) (*Transaction, *Subscription, error) {
	if e.Recurrence == "" {
		e.Recurrence = FrequencyNever
	}

	if !e.Recurrence.Valid() {
		return nil, nil, ErrFrequencyInvalid
	}

	if e.Recurrence == FrequencyNever {
		transaction := Transaction{
			Amount:     e.Amount,
			Date:       e.Date,
			Merchant:   e.Merchant,
			Notes:      e.Notes,
			CategoryID: e.CategoryID,
			Type:       e.Type,
		}

		err := db.Create(&transaction).Error
		if err != nil {
			return nil, nil, err
		}
		return &transaction, nil, nil
	}

	if e.Date.IsZero() {
		e.Date = time.Now()
	}

	subscription := Subscription{
		Name:        e.Merchant,
		Amount:      e.Amount,
		Frequency:   e.Recurrence,
		NextDueDate: NextDate(e.Recurrence, e.Date),
		CategoryID:  e.CategoryID,
		IsActive:    true,
		Notes:       e.Notes,
	}

	err := db.Create(&subscription).Error
	if err != nil {
		return nil, nil, err
	}
	return nil, &subscription, nil
}
