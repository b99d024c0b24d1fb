package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/expense-tracker/backend/internal/controllers/v1"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestSubscriptionsCreate() {
	inactive := false

	tests := []struct {
		name   string
		body   []v1.SubscriptionEditable
		status int
		err    string
	}{
		{"Defaults", []v1.SubscriptionEditable{{Name: "Streaming", Amount: v1.NewAmount(decimal.NewFromFloat(12.99))}}, http.StatusCreated, ""},
		{"Inactive", []v1.SubscriptionEditable{{Name: "Gym", Amount: v1.NewAmount(decimal.NewFromInt(30)), IsActive: &inactive}}, http.StatusCreated, ""},
		{"No name", []v1.SubscriptionEditable{{Amount: v1.NewAmount(decimal.NewFromInt(30))}}, http.StatusBadRequest, models.ErrSubscriptionNameEmpty.Error()},
		{"No amount", []v1.SubscriptionEditable{{Name: "Gym"}}, http.StatusBadRequest, models.ErrSubscriptionAmountNotPositive.Error()},
		{"Invalid frequency", []v1.SubscriptionEditable{{Name: "Gym", Amount: v1.NewAmount(decimal.NewFromInt(1)), Frequency: "Hourly"}}, http.StatusBadRequest, models.ErrFrequencyInvalid.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/subscriptions", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.SubscriptionCreateResponse
			test.DecodeResponse(t, &r, &response)

			if tt.err != "" {
				assert.Equal(t, tt.err, *response.Data[0].Error)
				return
			}

			s := response.Data[0].Data
			assert.Equal(t, models.FrequencyMonthly, s.Frequency)
			assert.Equal(t, tt.body[0].IsActive == nil, *s.IsActive)
			assert.False(t, s.NextDueDate.IsZero())
			assert.Equal(t, fmt.Sprintf("http://example.com/v1/subscriptions/%s/bill", s.ID), s.Links.Bill)
		})
	}
}

func (suite *TestSuiteStandard) TestSubscriptionsComputedFields() {
	subscription := suite.createTestSubscription(models.Subscription{
		Amount:      decimal.NewFromInt(10),
		Frequency:   models.FrequencyWeekly,
		NextDueDate: time.Now().AddDate(0, 0, 2),
		IsActive:    true,
	})

	r := test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/subscriptions/%s", subscription.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SubscriptionResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().True(decimal.NewFromInt(520).Equal(response.Data.AnnualAmount), response.Data.AnnualAmount.String())
	suite.Assert().True(decimal.NewFromInt(520).Div(decimal.NewFromInt(12)).Equal(response.Data.MonthlyAmount), response.Data.MonthlyAmount.String())
	suite.Assert().Equal(2, response.Data.DaysUntilDue)
	suite.Assert().True(response.Data.RenewsSoon)
}

func (suite *TestSuiteStandard) TestSubscriptionsList() {
	suite.createTestSubscription(models.Subscription{Name: "Later", NextDueDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), IsActive: true})
	suite.createTestSubscription(models.Subscription{Name: "Sooner", NextDueDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), IsActive: true})
	suite.createTestSubscription(models.Subscription{Name: "Paused", NextDueDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)})

	tests := []struct {
		name  string
		query string
		names []string
	}{
		{"All by due date", "", []string{"Paused", "Sooner", "Later"}},
		{"Active", "?active=true", []string{"Sooner", "Later"}},
		{"Inactive", "?active=false", []string{"Paused"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/subscriptions"+tt.query, nil)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.SubscriptionListResponse
			test.DecodeResponse(t, &r, &response)

			names := make([]string, 0, len(response.Data))
			for _, s := range response.Data {
				names = append(names, s.Name)
			}
			assert.Equal(t, tt.names, names)
		})
	}
}

func (suite *TestSuiteStandard) TestSubscriptionsTotals() {
	suite.createTestSubscription(models.Subscription{Amount: decimal.NewFromInt(10), Frequency: models.FrequencyMonthly, IsActive: true})
	suite.createTestSubscription(models.Subscription{Amount: decimal.NewFromInt(30), Frequency: models.FrequencyYearly, IsActive: true})
	suite.createTestSubscription(models.Subscription{Amount: decimal.NewFromInt(99), Frequency: models.FrequencyMonthly})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/subscriptions/totals", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SubscriptionTotalsResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal(2, response.Data.Active)
	suite.Assert().True(decimal.NewFromInt(150).Equal(response.Data.Yearly), response.Data.Yearly.String())
	suite.Assert().True(decimal.RequireFromString("12.5").Equal(response.Data.Monthly), response.Data.Monthly.String())
	suite.Assert().NotEmpty(response.Data.DisplayMonthly)
}

func (suite *TestSuiteStandard) TestSubscriptionsUpdate() {
	subscription := suite.createTestSubscription(models.Subscription{Name: "Streaming", Notes: "Family plan", IsActive: true})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/subscriptions/%s", subscription.ID), map[string]any{
		"isActive": false,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SubscriptionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().False(*response.Data.IsActive)
	suite.Assert().Equal("Streaming", response.Data.Name)
	suite.Assert().Equal("Family plan", response.Data.Notes)
	suite.Assert().False(response.Data.RenewsSoon)

	r = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/subscriptions/%s", subscription.ID), map[string]any{
		"amount": "0",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestSubscriptionsAdvance() {
	subscription := suite.createTestSubscription(models.Subscription{
		Frequency:   models.FrequencyMonthly,
		NextDueDate: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		IsActive:    true,
	})

	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/subscriptions/%s/advance", subscription.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SubscriptionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), response.Data.NextDueDate.UTC())

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", nil)
	var transactions v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &transactions)
	suite.Assert().Len(transactions.Data, 0, "Advancing must not record a transaction")
}

func (suite *TestSuiteStandard) TestSubscriptionsBill() {
	category := suite.createTestCategory(models.Category{Name: "Bills"})
	subscription := suite.createTestSubscription(models.Subscription{
		Name:        "Streaming",
		Amount:      decimal.NewFromFloat(12.99),
		Frequency:   models.FrequencyMonthly,
		NextDueDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		CategoryID:  &category.ID,
		IsActive:    true,
	})

	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/subscriptions/%s/bill", subscription.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.SubscriptionBillResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal(time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC), response.Data.Subscription.NextDueDate.UTC())

	transaction := response.Data.Transaction
	suite.Assert().Equal("Streaming", transaction.Merchant)
	suite.Assert().Equal(models.TransactionTypeExpense, transaction.Type)
	suite.Assert().Equal(category.ID, *transaction.CategoryID)
	suite.Assert().Equal(subscription.ID, *transaction.SubscriptionID)
	suite.Assert().Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), transaction.Date.UTC())
	suite.Assert().True(decimal.NewFromFloat(12.99).Equal(transaction.Amount.Decimal))
}

func (suite *TestSuiteStandard) TestSubscriptionsBillNever() {
	subscription := suite.createTestSubscription(models.Subscription{Frequency: models.FrequencyNever, IsActive: true})

	r := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/subscriptions/%s/bill", subscription.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.SubscriptionBillResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(models.ErrSubscriptionNeverBills.Error(), *response.Error)
}

func (suite *TestSuiteStandard) TestSubscriptionsBillDue() {
	now := time.Now().UTC()
	suite.createTestSubscription(models.Subscription{
		Name:        "Overdue",
		Frequency:   models.FrequencyWeekly,
		NextDueDate: now.AddDate(0, 0, -10),
		IsActive:    true,
	})
	suite.createTestSubscription(models.Subscription{
		Name:        "Future",
		Frequency:   models.FrequencyMonthly,
		NextDueDate: now.AddDate(0, 0, 5),
		IsActive:    true,
	})
	suite.createTestSubscription(models.Subscription{
		Name:        "Paused",
		Frequency:   models.FrequencyMonthly,
		NextDueDate: now.AddDate(0, -1, 0),
	})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/subscriptions/bill-due", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SubscriptionBillDueResponse
	test.DecodeResponse(suite.T(), &r, &response)

	// Ten days overdue with a weekly cycle are two billings
	suite.Require().Len(response.Data, 2)
	for _, transaction := range response.Data {
		suite.Assert().Equal("Overdue", transaction.Merchant)
	}

	// Nothing is due anymore
	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/subscriptions/bill-due", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, 0)
}

func (suite *TestSuiteStandard) TestSubscriptionsDelete() {
	subscription := suite.createTestSubscription(models.Subscription{IsActive: true})
	transaction := suite.createTestTransaction(models.Transaction{SubscriptionID: &subscription.ID})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/subscriptions/%s", subscription.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions/%s", transaction.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodPost, fmt.Sprintf("http://example.com/v1/subscriptions/%s/bill", uuid.New()), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestSubscriptionsUpdateAmountWithComma() {
	subscription := suite.createTestSubscription(models.Subscription{Frequency: models.FrequencyMonthly, IsActive: true})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/subscriptions/%s", subscription.ID), `{"amount": "9,99"}`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SubscriptionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("9.99", response.Data.Amount.String())
}
