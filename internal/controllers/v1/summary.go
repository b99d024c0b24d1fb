package v1

import (
	"net/http"

	"github.com/expense-tracker/backend/internal/aggregation"
	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
	"github.com/gin-gonic/gin"
)

// RegisterSummaryRoutes registers the route for the summary with
// the RouterGroup that is passed.
func RegisterSummaryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSummary)
	r.GET("", GetSummary)
}

// RegisterStatsRoutes registers the routes for statistics with
// the RouterGroup that is passed.
func RegisterStatsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/top-categories", OptionsStats)
	r.GET("/top-categories", GetTopCategories)
	r.OPTIONS("/monthly", OptionsStats)
	r.GET("/monthly", GetMonthlySeries)
	r.OPTIONS("/distribution", OptionsStats)
	r.GET("/distribution", GetDistribution)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Summary
// @Success		204
// @Router			/v1/summary [options]
func OptionsSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Stats
// @Success		204
// @Router			/v1/stats/top-categories [options]
// @Router			/v1/stats/monthly [options]
// @Router			/v1/stats/distribution [options]
func OptionsStats(c *gin.Context) {
	httputil.OptionsGet(c)
}

// loadAll returns all transactions and categories.
func loadAll() ([]models.Transaction, []models.Category, error) {
	var transactions []models.Transaction
	err := models.DB.Order("date desc, created_at desc").Find(&transactions).Error
	if err != nil {
		return nil, nil, err
	}

	categories, err := models.Categories(models.DB, false)
	if err != nil {
		return nil, nil, err
	}

	return transactions, categories, nil
}

func newCategoryTotals(c *gin.Context, totals []aggregation.CategoryTotal) []CategoryTotal {
	formatter := settings(c).Formatter

	data := make([]CategoryTotal, 0, len(totals))
	for _, t := range totals {
		data = append(data, CategoryTotal{
			Category:      newCategory(c, t.Category),
			Amount:        t.Amount,
			DisplayAmount: formatter.Format(t.Amount),
		})
	}

	return data
}

// @Summary		Get summary
// @Description	Returns spending and income of the period compared to the budget of the month, the recent and scheduled transactions, the top spending categories and the subscription totals
// @Tags			Summary
// @Produce		json
// @Success		200		{object}	SummaryResponse
// @Failure		400		{object}	SummaryResponse
// @Failure		500		{object}	SummaryResponse
// @Param			period	query		string	false	"One of day, week, month, year, all. Defaults to month"
// @Param			at		query		string	false	"Reference date in YYYY-MM-DD format. Defaults to today"
// @Router			/v1/summary [get]
func GetSummary(c *gin.Context) {
	var query QueryPeriod
	err := httputil.BindQuery(c, &query)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	period, err := query.period()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	reference := query.reference()

	limit, err := defaultLimitForMonth(c, types.MonthOf(reference))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	transactions, categories, err := loadAll()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	var subscriptions []models.Subscription
	err = models.DB.Find(&subscriptions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	inPeriod := aggregation.FilterByPeriod(transactions, period, reference)

	recent, err := transactionsWithCategories(c, aggregation.Recent(transactions, aggregation.DefaultRecent))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	scheduled, err := transactionsWithCategories(c, aggregation.Scheduled(transactions, reference))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SummaryResponse{
			Error: &s,
		})
		return
	}

	formatter := settings(c).Formatter
	overview := aggregation.Overview(transactions, limit, period, reference)
	totals := aggregation.SubscriptionTotals(subscriptions)

	c.JSON(http.StatusOK, SummaryResponse{
		Data: &Summary{
			BudgetOverview:   overview,
			DisplaySpent:     formatter.Format(overview.Spent),
			DisplayRemaining: formatter.Format(overview.Remaining),
			Recent:           recent,
			Scheduled:        scheduled,
			TopCategories:    newCategoryTotals(c, aggregation.TopCategories(inPeriod, categories, models.TransactionTypeExpense, aggregation.DefaultTopCategories)),
			Subscriptions: SubscriptionTotals{
				Active:         totals.Active,
				Monthly:        totals.Monthly,
				Yearly:         totals.Yearly,
				DisplayMonthly: formatter.Format(totals.Monthly),
				DisplayYearly:  formatter.Format(totals.Yearly),
			},
		},
	})
}

// @Summary		Get top categories
// @Description	Returns the categories with the highest sums of transactions in the period
// @Tags			Stats
// @Produce		json
// @Success		200		{object}	TopCategoriesResponse
// @Failure		400		{object}	TopCategoriesResponse
// @Failure		500		{object}	TopCategoriesResponse
// @Param			period	query		string	false	"One of day, week, month, year, all. Defaults to month"
// @Param			at		query		string	false	"Reference date in YYYY-MM-DD format. Defaults to today"
// @Param			type	query		string	false	"Expense or Income. Defaults to Expense"
// @Param			limit	query		int		false	"Maximum number of categories. Defaults to 4"
// @Router			/v1/stats/top-categories [get]
func GetTopCategories(c *gin.Context) {
	var query TopCategoriesQuery
	err := httputil.BindQuery(c, &query)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TopCategoriesResponse{
			Error: &s,
		})
		return
	}

	period, err := query.period()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TopCategoriesResponse{
			Error: &s,
		})
		return
	}

	t := models.TransactionTypeExpense
	if query.Type != "" {
		t = models.TransactionType(query.Type)
	}

	if !t.Valid() {
		s := errTransactionTypeInvalid.Error()
		c.JSON(http.StatusBadRequest, TopCategoriesResponse{
			Error: &s,
		})
		return
	}

	limit := query.Limit
	if limit == 0 {
		limit = aggregation.DefaultTopCategories
	}

	transactions, categories, err := loadAll()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TopCategoriesResponse{
			Error: &s,
		})
		return
	}

	inPeriod := aggregation.FilterByPeriod(transactions, period, query.reference())
	totals := aggregation.TopCategories(inPeriod, categories, t, limit)

	c.JSON(http.StatusOK, TopCategoriesResponse{Data: newCategoryTotals(c, totals)})
}

// @Summary		Get monthly expenses
// @Description	Returns the sum of expenses for each month up to and including the month of the reference date, oldest first
// @Tags			Stats
// @Produce		json
// @Success		200		{object}	MonthlySeriesResponse
// @Failure		400		{object}	MonthlySeriesResponse
// @Failure		500		{object}	MonthlySeriesResponse
// @Param			months	query		int		false	"Number of months, at most 120. Defaults to 6"
// @Param			at		query		string	false	"Reference date in YYYY-MM-DD format. Defaults to today"
// @Router			/v1/stats/monthly [get]
func GetMonthlySeries(c *gin.Context) {
	var query MonthlySeriesQuery
	err := httputil.BindQuery(c, &query)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthlySeriesResponse{
			Error: &s,
		})
		return
	}

	months := query.Months
	if months == 0 {
		months = aggregation.DefaultMonthsBack
	}

	if months < 0 || months > aggregation.MaxMonthsBack {
		s := errMonthsOutOfRange.Error()
		c.JSON(http.StatusBadRequest, MonthlySeriesResponse{
			Error: &s,
		})
		return
	}

	var transactions []models.Transaction
	err = models.DB.Where("type = ?", models.TransactionTypeExpense).Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), MonthlySeriesResponse{
			Error: &s,
		})
		return
	}

	series := aggregation.MonthlySeries(transactions, months, query.reference(), settings(c).Formatter.Tag)
	c.JSON(http.StatusOK, MonthlySeriesResponse{Data: series})
}

// @Summary		Get category distribution
// @Description	Returns the expenses of the month of the reference date grouped by category, the highest first
// @Tags			Stats
// @Produce		json
// @Success		200	{object}	DistributionResponse
// @Failure		400	{object}	DistributionResponse
// @Failure		500	{object}	DistributionResponse
// @Param			at	query		string	false	"Reference date in YYYY-MM-DD format. Defaults to today"
// @Router			/v1/stats/distribution [get]
func GetDistribution(c *gin.Context) {
	var query QueryReference
	err := httputil.BindQuery(c, &query)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DistributionResponse{
			Error: &s,
		})
		return
	}

	transactions, categories, err := loadAll()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DistributionResponse{
			Error: &s,
		})
		return
	}

	shares := aggregation.CategoryDistribution(transactions, categories, query.reference())
	if shares == nil {
		shares = []aggregation.Share{}
	}

	c.JSON(http.StatusOK, DistributionResponse{Data: shares})
}
