package v1_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	v1 "github.com/expense-tracker/backend/internal/controllers/v1"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
	"github.com/expense-tracker/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) createTestBudget(b models.Budget) models.Budget {
	err := models.DB.Create(&b).Error
	suite.Require().Nil(err, "Creating the budget failed")
	return b
}

func (suite *TestSuiteStandard) TestBudgetsCreate() {
	category := suite.createTestCategory(models.Category{Name: "Food"})
	april := types.NewMonth(2024, time.April)

	tests := []struct {
		name   string
		body   []v1.BudgetEditable
		status int
		err    string
	}{
		{"All spending", []v1.BudgetEditable{{Month: april, Limit: decimal.NewFromInt(1200)}}, http.StatusCreated, ""},
		{"Category", []v1.BudgetEditable{{Month: april, Limit: decimal.NewFromInt(300), CategoryID: &category.ID}}, http.StatusCreated, ""},
		{"Duplicate", []v1.BudgetEditable{{Month: april, Limit: decimal.NewFromInt(1000)}}, http.StatusBadRequest, models.ErrBudgetMonthNotUnique.Error()},
		{"Negative", []v1.BudgetEditable{{Month: april.AddDate(0, 1), Limit: decimal.NewFromInt(-1)}}, http.StatusBadRequest, models.ErrBudgetLimitNegative.Error()},
	}

	// The cases depend on each other and run in order
	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/budgets", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.BudgetCreateResponse
			test.DecodeResponse(t, &r, &response)

			if tt.err != "" {
				assert.Equal(t, tt.err, *response.Data[0].Error)
				return
			}

			assert.Equal(t, "2024-04", response.Data[0].Data.Month.String())
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetsCreateMonthFormat() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budgets", `[{ "month": "2024-04", "limit": "900" }]`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/budgets", `[{ "month": "April", "limit": "900" }]`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBudgetsList() {
	category := suite.createTestCategory(models.Category{Name: "Food"})
	suite.createTestBudget(models.Budget{Month: types.NewMonth(2024, time.March), Limit: decimal.NewFromInt(1000)})
	suite.createTestBudget(models.Budget{Month: types.NewMonth(2024, time.April), Limit: decimal.NewFromInt(1100)})
	suite.createTestBudget(models.Budget{Month: types.NewMonth(2024, time.April), Limit: decimal.NewFromInt(200), CategoryID: &category.ID})

	tests := []struct {
		name   string
		query  string
		limits []string
	}{
		{"All, newest month first", "", []string{"1100", "200", "1000"}},
		{"Month", "?month=2024-03", []string{"1000"}},
		{"Category", fmt.Sprintf("?category=%s", category.ID), []string{"200"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/budgets"+tt.query, nil)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.BudgetListResponse
			test.DecodeResponse(t, &r, &response)

			limits := make([]string, 0, len(response.Data))
			for _, b := range response.Data {
				limits = append(limits, b.Limit.String())
			}
			assert.Equal(t, tt.limits, limits)
		})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets?month=March", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBudgetsCurrent() {
	suite.createTestBudget(models.Budget{Month: types.NewMonth(2024, time.April), Limit: decimal.NewFromInt(900)})

	tests := []struct {
		name      string
		query     string
		limit     decimal.Decimal
		isDefault bool
	}{
		{"Stored", "?month=2024-04", decimal.NewFromInt(900), false},
		{"Default", "?month=2024-05", decimal.NewFromInt(1500), true},
		{"Current month", "", decimal.NewFromInt(1500), true},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/budgets/current"+tt.query, nil)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.CurrentBudgetResponse
			test.DecodeResponse(t, &r, &response)
			assert.True(t, tt.limit.Equal(response.Data.Limit), response.Data.Limit.String())
			assert.Equal(t, tt.isDefault, response.Data.IsDefault)
			assert.Equal(t, tt.isDefault, response.Data.BudgetID == nil)
		})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets/current", nil)
	var response v1.CurrentBudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(types.MonthOf(time.Now()).String(), response.Data.Month.String())
}

func (suite *TestSuiteStandard) TestBudgetsUpdate() {
	budget := suite.createTestBudget(models.Budget{Month: types.NewMonth(2024, time.April), Limit: decimal.NewFromInt(900)})
	suite.createTestBudget(models.Budget{Month: types.NewMonth(2024, time.May), Limit: decimal.NewFromInt(900)})

	r := test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/budgets/%s", budget.ID), map[string]any{
		"limit": "1000",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().True(decimal.NewFromInt(1000).Equal(response.Data.Limit))
	suite.Assert().Equal("2024-04", response.Data.Month.String())

	// Moving the budget to a month that already has one fails
	r = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/budgets/%s", budget.ID), map[string]any{
		"month": "2024-05",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBudgetsDelete() {
	budget := suite.createTestBudget(models.Budget{Month: types.NewMonth(2024, time.April), Limit: decimal.NewFromInt(900)})

	r := test.Request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/budgets/%s", budget.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/budgets/current?month=2024-04", nil)
	var response v1.CurrentBudgetResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().True(response.Data.IsDefault)
}
