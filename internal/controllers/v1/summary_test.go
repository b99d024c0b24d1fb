package v1_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/expense-tracker/backend/internal/aggregation"
	v1 "github.com/expense-tracker/backend/internal/controllers/v1"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
	"github.com/expense-tracker/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// createTestData creates spending in February and March 2024 and a
// transaction scheduled for the end of March.
func (suite *TestSuiteStandard) createTestData() (food, transport models.Category) {
	food = suite.createTestCategory(models.Category{Name: "Food", ColorHex: "#34C759"})
	transport = suite.createTestCategory(models.Category{Name: "Transport", ColorHex: "#007AFF"})

	march := func(day int) time.Time {
		return time.Date(2024, 3, day, 12, 0, 0, 0, time.UTC)
	}

	suite.createTestTransaction(models.Transaction{Amount: decimal.NewFromInt(400), Date: march(2), CategoryID: &food.ID})
	suite.createTestTransaction(models.Transaction{Amount: decimal.NewFromInt(200), Date: march(8), CategoryID: &food.ID})
	suite.createTestTransaction(models.Transaction{Amount: decimal.NewFromInt(50), Date: march(10), CategoryID: &transport.ID})
	suite.createTestTransaction(models.Transaction{Amount: decimal.NewFromInt(50), Date: march(12)})
	suite.createTestTransaction(models.Transaction{Amount: decimal.NewFromInt(2100), Date: march(1), Type: models.TransactionTypeIncome})
	suite.createTestTransaction(models.Transaction{Amount: decimal.NewFromInt(80), Date: time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC), CategoryID: &transport.ID})
	suite.createTestTransaction(models.Transaction{Merchant: "Rent", Amount: decimal.NewFromInt(10), Date: march(28)})

	return food, transport
}

func (suite *TestSuiteStandard) TestSummary() {
	food, _ := suite.createTestData()
	suite.createTestBudget(models.Budget{Month: types.NewMonth(2024, time.March), Limit: decimal.NewFromInt(1000)})
	suite.createTestSubscription(models.Subscription{Amount: decimal.NewFromInt(10), Frequency: models.FrequencyMonthly, IsActive: true})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/summary?at=2024-03-15", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SummaryResponse
	test.DecodeResponse(suite.T(), &r, &response)
	s := response.Data

	suite.Assert().Equal(aggregation.PeriodMonth, s.Period)
	suite.Assert().True(decimal.NewFromInt(710).Equal(s.Spent), s.Spent.String())
	suite.Assert().True(decimal.NewFromInt(2100).Equal(s.Income), s.Income.String())
	suite.Assert().True(decimal.NewFromInt(1000).Equal(s.Limit), s.Limit.String())
	suite.Assert().True(decimal.NewFromInt(290).Equal(s.Remaining), s.Remaining.String())
	suite.Assert().Equal(aggregation.LevelWarning, s.Level)
	suite.Assert().NotEmpty(s.DisplaySpent)

	suite.Assert().Len(s.Recent, aggregation.DefaultRecent)
	suite.Assert().Equal("Rent", s.Recent[0].Merchant, "The newest transaction comes first")

	suite.Require().Len(s.Scheduled, 1)
	suite.Assert().Equal("Rent", s.Scheduled[0].Merchant)

	suite.Require().Len(s.TopCategories, 2)
	suite.Assert().Equal(food.ID, s.TopCategories[0].Category.ID)
	suite.Assert().True(decimal.NewFromInt(600).Equal(s.TopCategories[0].Amount))

	suite.Assert().Equal(1, s.Subscriptions.Active)
}

func (suite *TestSuiteStandard) TestSummaryDefaultLimit() {
	suite.createTestTransaction(models.Transaction{Amount: decimal.NewFromInt(1500), Date: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/summary?at=2024-05-10", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.SummaryResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().True(decimal.NewFromInt(1500).Equal(response.Data.Limit))
	suite.Assert().True(response.Data.Remaining.IsZero())
	suite.Assert().Equal(aggregation.LevelOver, response.Data.Level)
	suite.Assert().Len(response.Data.TopCategories, 0)
}

func (suite *TestSuiteStandard) TestSummaryPeriods() {
	suite.createTestData()

	tests := []struct {
		period string
		spent  int64
	}{
		{"day", 0},
		{"week", 50},
		{"month", 710},
		{"year", 790},
		{"all", 790},
	}

	for _, tt := range tests {
		suite.T().Run(tt.period, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/summary?at=2024-03-15&period="+tt.period, nil)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.SummaryResponse
			test.DecodeResponse(t, &r, &response)
			assert.True(t, decimal.NewFromInt(tt.spent).Equal(response.Data.Spent), response.Data.Spent.String())
		})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/summary?period=decade", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestStatsTopCategories() {
	food, transport := suite.createTestData()

	tests := []struct {
		name       string
		query      string
		categories []string
	}{
		{"Month", "at=2024-03-15", []string{food.Name, transport.Name}},
		{"Limit", "at=2024-03-15&limit=1", []string{food.Name}},
		{"February", "at=2024-02-10", []string{transport.Name}},
		{"Income has no categories", "at=2024-03-15&type=Income", []string{}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/stats/top-categories?"+tt.query, nil)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TopCategoriesResponse
			test.DecodeResponse(t, &r, &response)

			names := make([]string, 0, len(response.Data))
			for _, c := range response.Data {
				names = append(names, c.Category.Name)
			}
			assert.Equal(t, tt.categories, names)
		})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/stats/top-categories?type=Gift", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestStatsMonthly() {
	suite.createTestData()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/stats/monthly?at=2024-03-15&months=3", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthlySeriesResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 3)

	expected := []struct {
		month  string
		label  string
		amount int64
	}{
		{"2024-01", "Gen", 0},
		{"2024-02", "Feb", 80},
		{"2024-03", "Mar", 710},
	}

	for i, e := range expected {
		suite.Assert().Equal(e.month, response.Data[i].Month.String())
		suite.Assert().Equal(e.label, response.Data[i].Label)
		suite.Assert().True(decimal.NewFromInt(e.amount).Equal(response.Data[i].Amount), response.Data[i].Amount.String())
	}

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/stats/monthly", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Len(response.Data, aggregation.DefaultMonthsBack)
}

func (suite *TestSuiteStandard) TestStatsMonthlyMonths() {
	tests := []struct {
		months string
		status int
		length int
	}{
		{"1", http.StatusOK, 1},
		{"120", http.StatusOK, aggregation.MaxMonthsBack},
		{"121", http.StatusBadRequest, 0},
		{"-1", http.StatusBadRequest, 0},
		{"4611686018427387904", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.months, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/stats/monthly?at=2024-03-15&months="+tt.months, nil)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.MonthlySeriesResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.length)

			if tt.status == http.StatusBadRequest {
				assert.NotNil(t, response.Error)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestStatsDistribution() {
	suite.createTestData()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/stats/distribution?at=2024-03-15", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DistributionResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 3)
	suite.Assert().Equal("Food", response.Data[0].Name)
	suite.Assert().Equal(int64(85), *response.Data[0].Percent)
	suite.Assert().Equal(aggregation.UncategorizedLabel, response.Data[1].Name)
	suite.Assert().Nil(response.Data[1].CategoryID)
	suite.Assert().Equal("Transport", response.Data[2].Name)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/stats/distribution?at=2023-01-01", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().NotNil(response.Data)
	suite.Assert().Len(response.Data, 0)
}
