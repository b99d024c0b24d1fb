package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
	"github.com/expense-tracker/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestOptionsHeaderResources() {
	optionsHeaderTests := []struct {
		path     string
		response string
	}{
		{"http://example.com/v1/budgets", "OPTIONS, GET, POST"},
		{"http://example.com/v1/budgets/current", "OPTIONS, GET"},
		{"http://example.com/v1/categories", "OPTIONS, GET, POST"},
		{"http://example.com/v1/categories/seed", "OPTIONS, POST"},
		{"http://example.com/v1/category-rules", "OPTIONS, GET, POST"},
		{"http://example.com/v1/entries", "OPTIONS, POST"},
		{"http://example.com/v1/import/ofx", "OPTIONS, POST"},
		{"http://example.com/v1/stats/distribution", "OPTIONS, GET"},
		{"http://example.com/v1/stats/monthly", "OPTIONS, GET"},
		{"http://example.com/v1/stats/top-categories", "OPTIONS, GET"},
		{"http://example.com/v1/subscriptions", "OPTIONS, GET, POST"},
		{"http://example.com/v1/subscriptions/bill-due", "OPTIONS, POST"},
		{"http://example.com/v1/subscriptions/totals", "OPTIONS, GET"},
		{"http://example.com/v1/summary", "OPTIONS, GET"},
		{"http://example.com/v1/transactions", "OPTIONS, GET, POST"},
	}

	for _, tt := range optionsHeaderTests {
		suite.T().Run(tt.path, func(t *testing.T) {
			recorder := test.Request(t, http.MethodOptions, tt.path, "")

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			assert.Equal(t, tt.response, recorder.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestOptionsDetail() {
	category := suite.createTestCategory(models.Category{})
	transaction := suite.createTestTransaction(models.Transaction{})
	subscription := suite.createTestSubscription(models.Subscription{IsActive: true})
	budget := suite.createTestBudget(models.Budget{Month: types.NewMonth(2024, time.April), Limit: decimal.NewFromInt(1)})
	rule := models.CategoryRule{CategoryID: category.ID, Match: "*"}
	suite.Require().Nil(models.DB.Create(&rule).Error)

	tests := []struct {
		path     string
		response string
	}{
		{fmt.Sprintf("http://example.com/v1/budgets/%s", budget.ID), "OPTIONS, GET, PATCH, DELETE"},
		{fmt.Sprintf("http://example.com/v1/categories/%s", category.ID), "OPTIONS, GET, PATCH, DELETE"},
		{fmt.Sprintf("http://example.com/v1/category-rules/%s", rule.ID), "OPTIONS, GET, PATCH, DELETE"},
		{fmt.Sprintf("http://example.com/v1/subscriptions/%s", subscription.ID), "OPTIONS, GET, PATCH, DELETE"},
		{fmt.Sprintf("http://example.com/v1/subscriptions/%s/advance", subscription.ID), "OPTIONS, POST"},
		{fmt.Sprintf("http://example.com/v1/subscriptions/%s/bill", subscription.ID), "OPTIONS, POST"},
		{fmt.Sprintf("http://example.com/v1/transactions/%s", transaction.ID), "OPTIONS, GET, PATCH, DELETE"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.path, func(t *testing.T) {
			recorder := test.Request(t, http.MethodOptions, tt.path, "")

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			assert.Equal(t, tt.response, recorder.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestOptionsDetailErrors() {
	tests := []struct {
		path   string
		status int
	}{
		{fmt.Sprintf("http://example.com/v1/categories/%s", uuid.New()), http.StatusNotFound},
		{"http://example.com/v1/transactions/not-a-uuid", http.StatusBadRequest},
		{fmt.Sprintf("http://example.com/v1/subscriptions/%s/bill", uuid.New()), http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.path, func(t *testing.T) {
			recorder := test.Request(t, http.MethodOptions, tt.path, "")
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}
