package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgetList)
		r.GET("", GetBudgets)
		r.POST("", CreateBudgets)
		r.OPTIONS("/current", OptionsBudgetCurrent)
		r.GET("/current", GetCurrentBudget)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", OptionsBudgetDetail)
		r.GET("/:id", GetBudget)
		r.PATCH("/:id", UpdateBudget)
		r.DELETE("/:id", DeleteBudget)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets [options]
func OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets/current [options]
func OptionsBudgetCurrent(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [options]
func OptionsBudgetDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Budget{})
}

// @Summary		Create budgets
// @Description	Creates new budgets. There can only be one budget per month and category.
// @Tags			Budgets
// @Produce		json
// @Success		201		{object}	BudgetCreateResponse
// @Failure		400		{object}	BudgetCreateResponse
// @Failure		500		{object}	BudgetCreateResponse
// @Param			budgets	body		[]BudgetEditable	true	"Budgets"
// @Router			/v1/budgets [post]
func CreateBudgets(c *gin.Context) {
	var editables []BudgetEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := BudgetCreateResponse{}

	for _, editable := range editables {
		budget := editable.model()

		err = models.DB.Create(&budget).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newBudget(c, budget)
		r.Data = append(r.Data, BudgetResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get budgets
// @Description	Returns a list of budgets, the newest month first
// @Tags			Budgets
// @Produce		json
// @Success		200			{object}	BudgetListResponse
// @Failure		400			{object}	BudgetListResponse
// @Failure		500			{object}	BudgetListResponse
// @Param			month		query		string	false	"Filter by month, YYYY-MM"
// @Param			category	query		string	false	"Filter by category ID"
// @Router			/v1/budgets [get]
func GetBudgets(c *gin.Context) {
	var filter BudgetQueryFilter
	err := httputil.BindQuery(c, &filter)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.Order("month desc, created_at asc")
	if !filter.Month.IsZero() {
		q = q.Where("month = ?", filter.Month)
	}

	if id := filter.Category.Ptr(); id != nil {
		q = q.Where("category_id = ?", *id)
	}

	var budgets []models.Budget
	err = q.Find(&budgets).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Budget, 0, len(budgets))
	for _, budget := range budgets {
		data = append(data, newBudget(c, budget))
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: data})
}

// currentBudget returns the limit for the month and category. The
// configured default applies when no budget is stored.
func currentBudget(c *gin.Context, month types.Month, categoryID *uuid.UUID) (CurrentBudget, error) {
	current := CurrentBudget{
		Month:      month,
		CategoryID: categoryID,
	}

	budget, err := models.CurrentBudget(models.DB, month, categoryID)
	if errors.Is(err, models.ErrResourceNotFound) {
		current.Limit = settings(c).DefaultLimit
		current.IsDefault = true
		return current, nil
	}

	if err != nil {
		return CurrentBudget{}, err
	}

	current.Limit = budget.Limit
	current.BudgetID = &budget.ID
	return current, nil
}

// @Summary		Get current budget
// @Description	Returns the budget limit for a month. When no budget is stored for the month, the configured default limit is returned.
// @Tags			Budgets
// @Produce		json
// @Success		200			{object}	CurrentBudgetResponse
// @Failure		400			{object}	CurrentBudgetResponse
// @Failure		500			{object}	CurrentBudgetResponse
// @Param			month		query		string	false	"Month in YYYY-MM format. Defaults to the current month"
// @Param			category	query		string	false	"Category ID. Unset for the budget of all spending"
// @Router			/v1/budgets/current [get]
func GetCurrentBudget(c *gin.Context) {
	var filter BudgetQueryFilter
	err := httputil.BindQuery(c, &filter)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CurrentBudgetResponse{
			Error: &s,
		})
		return
	}

	month := filter.Month
	if month.IsZero() {
		month = types.MonthOf(time.Now())
	}

	current, err := currentBudget(c, month, filter.Category.Ptr())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CurrentBudgetResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, CurrentBudgetResponse{Data: &current})
}

// @Summary		Get budget
// @Description	Returns a specific budget
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		400	{object}	BudgetResponse
// @Failure		404	{object}	BudgetResponse
// @Failure		500	{object}	BudgetResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [get]
func GetBudget(c *gin.Context) {
	budget, err := getByID[models.Budget](c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	data := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Update budget
// @Description	Update an existing budget. Only values to be updated need to be specified.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		404		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budgets/{id} [patch]
func UpdateBudget(c *gin.Context) {
	budget, err := getByID[models.Budget](c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	// Fields not in the body keep their current value
	data := BudgetEditable{
		Month:      budget.Month,
		Limit:      budget.Limit,
		CategoryID: budget.CategoryID,
	}

	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	updated := data.model()
	updated.DefaultModel = budget.DefaultModel

	err = models.DB.Save(&updated).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{
			Error: &s,
		})
		return
	}

	r := newBudget(c, updated)
	c.JSON(http.StatusOK, BudgetResponse{Data: &r})
}

// @Summary		Delete budget
// @Description	Deletes a budget
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [delete]
func DeleteBudget(c *gin.Context) {
	budget, err := getByID[models.Budget](c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&budget).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// defaultLimitForMonth is the limit of the budget of all spending in the month.
func defaultLimitForMonth(c *gin.Context, month types.Month) (decimal.Decimal, error) {
	current, err := currentBudget(c, month, nil)
	if err != nil {
		return decimal.Zero, err
	}

	return current.Limit, nil
}
