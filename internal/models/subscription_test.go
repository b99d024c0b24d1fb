package models_test

import (
	"errors"
	"time"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func (suite *TestSuiteStandard) TestSubscriptionAmounts() {
	tests := []struct {
		frequency models.Frequency
		amount    string
		annual    string
		monthly   string
	}{
		{models.FrequencyMonthly, "10", "120", "10"},
		{models.FrequencyYearly, "120", "120", "10"},
		{models.FrequencyWeekly, "3", "156", "13"},
		{models.FrequencyNever, "50", "0", "0"},
	}

	for _, tt := range tests {
		s := models.Subscription{Frequency: tt.frequency, Amount: decimal.RequireFromString(tt.amount)}
		suite.Assert().True(decimal.RequireFromString(tt.annual).Equal(s.AnnualAmount()), "annual amount for %s is %s", tt.frequency, s.AnnualAmount())
		suite.Assert().True(decimal.RequireFromString(tt.monthly).Equal(s.MonthlyAmount()), "monthly amount for %s is %s", tt.frequency, s.MonthlyAmount())
	}
}

func (suite *TestSuiteStandard) TestSubscriptionValidation() {
	tests := []struct {
		name         string
		subscription models.Subscription
		err          error
	}{
		{"Empty name", models.Subscription{Name: " ", Amount: decimal.NewFromInt(1)}, models.ErrSubscriptionNameEmpty},
		{"Zero amount", models.Subscription{Name: "Streaming"}, models.ErrSubscriptionAmountNotPositive},
		{"Unknown frequency", models.Subscription{Name: "Streaming", Amount: decimal.NewFromInt(1), Frequency: "Hourly"}, models.ErrFrequencyInvalid},
	}

	for _, tt := range tests {
		err := models.DB.Create(&tt.subscription).Error
		suite.Assert().ErrorIs(err, tt.err, tt.name)
	}
}

func (suite *TestSuiteStandard) TestSubscriptionDefaults() {
	s := models.Subscription{Name: "Gym", Amount: decimal.NewFromInt(30)}
	suite.Require().Nil(models.DB.Create(&s).Error)

	suite.Assert().Equal(models.FrequencyMonthly, s.Frequency)
	suite.Assert().True(s.NextDueDate.After(time.Now()), "Due date must default to one interval from now")
}

func (suite *TestSuiteStandard) TestSubscriptionAdvance() {
	s := models.Subscription{Frequency: models.FrequencyMonthly, NextDueDate: date(2024, 1, 31)}

	s.Advance()
	suite.Assert().Equal(date(2024, 2, 29), s.NextDueDate)

	s.Advance()
	suite.Assert().Equal(date(2024, 3, 29), s.NextDueDate)

	never := models.Subscription{Frequency: models.FrequencyNever, NextDueDate: date(2024, 1, 31)}
	never.Advance()
	suite.Assert().Equal(date(2024, 1, 31), never.NextDueDate)
}

func (suite *TestSuiteStandard) TestSubscriptionDaysUntilDue() {
	now := time.Date(2024, 3, 10, 22, 0, 0, 0, time.UTC)

	tests := []struct {
		due    time.Time
		days   int
		active bool
		soon   bool
	}{
		{date(2024, 3, 10), 0, true, true},
		{date(2024, 3, 13), 3, true, true},
		{date(2024, 3, 14), 4, true, false},
		{date(2024, 3, 9), -1, true, false},
		{date(2024, 3, 11), 1, false, false},
	}

	for _, tt := range tests {
		s := models.Subscription{NextDueDate: tt.due, IsActive: tt.active}
		suite.Assert().Equal(tt.days, s.DaysUntilDue(now), "days until %s", tt.due)
		suite.Assert().Equal(tt.soon, s.RenewsSoon(now), "renews soon for %s", tt.due)
	}
}

func (suite *TestSuiteStandard) TestSubscriptionBill() {
	category := suite.createTestCategory(models.Category{Name: "Bills"})
	s := suite.createTestSubscription(models.Subscription{
		Name:        "Streaming",
		Amount:      decimal.RequireFromString("12.99"),
		Frequency:   models.FrequencyMonthly,
		NextDueDate: date(2024, 1, 31),
		CategoryID:  &category.ID,
		IsActive:    true,
	})

	transaction, err := s.Bill(models.DB)
	suite.Require().Nil(err)

	suite.Assert().Equal("Streaming", transaction.Merchant)
	suite.Assert().Equal(models.TransactionTypeExpense, transaction.Type)
	suite.Assert().Equal(date(2024, 1, 31), transaction.Date)
	suite.Assert().Equal(category.ID, *transaction.CategoryID)
	suite.Assert().Equal(s.ID, *transaction.SubscriptionID)
	suite.Assert().True(decimal.RequireFromString("12.99").Equal(transaction.Amount))

	reloaded, err := models.SubscriptionByID(models.DB, s.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal(date(2024, 2, 29), reloaded.NextDueDate)
}

func (suite *TestSuiteStandard) TestSubscriptionBillRollback() {
	s := suite.createTestSubscription(models.Subscription{
		Frequency:   models.FrequencyMonthly,
		NextDueDate: date(2024, 1, 31),
		IsActive:    true,
	})

	errUpdate := errors.New("update failed")
	err := models.DB.Callback().Update().Before("gorm:update").Register("test:fail_subscription_update", func(tx *gorm.DB) {
		if tx.Statement.Table == "subscriptions" {
			_ = tx.AddError(errUpdate)
		}
	})
	suite.Require().Nil(err)

	_, err = s.Bill(models.DB)
	suite.Require().ErrorIs(err, errUpdate)
	suite.Assert().Equal(date(2024, 1, 31), s.NextDueDate, "The due date must not move when billing fails")

	var count int64
	suite.Require().Nil(models.DB.Model(&models.Transaction{}).Where("subscription_id = ?", s.ID).Count(&count).Error)
	suite.Assert().Zero(count, "The expense must be rolled back")

	reloaded, err := models.SubscriptionByID(models.DB, s.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal(date(2024, 1, 31), reloaded.NextDueDate)
}

func (suite *TestSuiteStandard) TestSubscriptionBillNever() {
	s := suite.createTestSubscription(models.Subscription{Frequency: models.FrequencyNever})

	_, err := s.Bill(models.DB)
	suite.Assert().ErrorIs(err, models.ErrSubscriptionNeverBills)
}

func (suite *TestSuiteStandard) TestBillDue() {
	monthly := suite.createTestSubscription(models.Subscription{
		Name:        "Rent",
		Frequency:   models.FrequencyMonthly,
		NextDueDate: date(2024, 1, 15),
		IsActive:    true,
	})

	inactive := suite.createTestSubscription(models.Subscription{
		Name:        "Old Gym",
		Frequency:   models.FrequencyMonthly,
		NextDueDate: date(2024, 1, 1),
		IsActive:    false,
	})

	future := suite.createTestSubscription(models.Subscription{
		Name:        "Magazine",
		Frequency:   models.FrequencyYearly,
		NextDueDate: date(2024, 6, 1),
		IsActive:    true,
	})

	billed, err := models.BillDue(models.DB, date(2024, 3, 20))
	suite.Require().Nil(err)
	suite.Require().Len(billed, 3, "Rent must be billed for January, February and March")

	for i, want := range []time.Time{date(2024, 1, 15), date(2024, 2, 15), date(2024, 3, 15)} {
		suite.Assert().Equal(want, billed[i].Date)
		suite.Assert().Equal(monthly.ID, *billed[i].SubscriptionID)
	}

	reloaded, err := models.SubscriptionByID(models.DB, monthly.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal(date(2024, 4, 15), reloaded.NextDueDate)

	for _, s := range []models.Subscription{inactive, future} {
		reloaded, err := models.SubscriptionByID(models.DB, s.ID)
		suite.Require().Nil(err)
		suite.Assert().Equal(s.NextDueDate, reloaded.NextDueDate, "%s must not be billed", s.Name)
	}

	// Billing again does nothing
	billed, err = models.BillDue(models.DB, date(2024, 3, 20))
	suite.Require().Nil(err)
	suite.Assert().Len(billed, 0)
}
