package models

import (
	"errors"
	"time"

	"github.com/expense-tracker/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is the spending limit for a month, either for all spending or
// for a single category.
type Budget struct {
	DefaultModel
	Month      types.Month     `json:"month" gorm:"uniqueIndex:budget_month_category" example:"2024-04"`
	Limit      decimal.Decimal `json:"limit" gorm:"type:DECIMAL(20,8)" example:"1500" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"`
	Category   *Category       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CategoryID *uuid.UUID      `json:"categoryId" gorm:"uniqueIndex:budget_month_category" example:"2c566a88-cda6-4c1b-8cdd-a1b1dc7c2a00"` // Unset for the budget of all spending
}

// BeforeSave validates the limit and makes sure that there is only one
// budget per month and category.
//
// The unique index does not cover budgets without a category since
// SQLite considers NULL values distinct, so the check is done here.
func (b *Budget) BeforeSave(tx *gorm.DB) error {
	b.CategoryID = nilIfEmpty(b.CategoryID)

	if b.Month.IsZero() {
		b.Month = types.MonthOf(time.Now())
	}

	if b.Limit.IsNegative() {
		return ErrBudgetLimitNegative
	}

	query := fresh(tx).Model(&Budget{}).Where("month = ? AND id <> ?", b.Month, b.ID)
	if b.CategoryID == nil {
		query = query.Where("category_id IS NULL")
	} else {
		query = query.Where("category_id = ?", b.CategoryID)
	}

	var count int64
	err := query.Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrBudgetMonthNotUnique
	}

	return nil
}

// CurrentBudget returns the budget for the month. With a nil categoryID,
// this is the budget for all spending.
func CurrentBudget(db *gorm.DB, month types.Month, categoryID *uuid.UUID) (Budget, error) {
	query := db.Where("month = ?", month)
	if categoryID == nil {
		query = query.Where("category_id IS NULL")
	} else {
		query = query.Where("category_id = ?", categoryID)
	}

	var budget Budget
	err := query.First(&budget).Error
	return budget, err
}

// EnsureBudget returns the budget for all spending of the month,
// creating it with the given limit if it does not exist yet.
func EnsureBudget(db *gorm.DB, month types.Month, limit decimal.Decimal) (budget Budget, created bool, err error) {
	budget, err = CurrentBudget(db, month, nil)
	if err == nil || !errors.Is(err, ErrResourceNotFound) {
		return budget, false, err
	}

	budget = Budget{
		Month: month,
		Limit: limit,
	}

	err = db.Create(&budget).Error
	if err != nil {
		return Budget{}, false, err
	}

	return budget, true, nil
}
