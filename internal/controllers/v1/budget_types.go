package v1

import (
	"fmt"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/types"
	ez_uuid "github.com/expense-tracker/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetEditable represents all user configurable parameters
type BudgetEditable struct {
	Month      types.Month     `json:"month" example:"2024-04"`                                                                         // Month the budget is for. Defaults to the current month
	Limit      decimal.Decimal `json:"limit" example:"1500" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"`     // Maximum spending for the month
	CategoryID *uuid.UUID      `json:"categoryId" example:"2c566a88-cda6-4c1b-8cdd-a1b1dc7c2a00"`                                     // ID of the category. Unset for the budget of all spending
}

func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		Month:      editable.Month,
		Limit:      editable.Limit,
		CategoryID: editable.CategoryID,
	}
}

type BudgetLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // The budget itself
}

type Budget struct {
	models.DefaultModel
	BudgetEditable
	Links BudgetLinks `json:"links"`
}

func newBudget(c *gin.Context, model models.Budget) Budget {
	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			Month:      model.Month,
			Limit:      model.Limit,
			CategoryID: model.CategoryID,
		},
		Links: BudgetLinks{
			Self: fmt.Sprintf("%s/v1/budgets/%s", c.GetString(string(models.DBContextURL)), model.ID),
		},
	}
}

type BudgetListResponse struct {
	Data  []Budget `json:"data"`                                                          // List of budgets
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetCreateResponse struct {
	Data  []BudgetResponse `json:"data"`                                                          // List of created budgets or their respective error
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (b *BudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	b.Data = append(b.Data, BudgetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetResponse struct {
	Data  *Budget `json:"data"`                                                          // Data for the budget
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type BudgetQueryFilter struct {
	Month    types.Month  `form:"month"`    // Filter by month, YYYY-MM
	Category ez_uuid.UUID `form:"category"` // Filter by category ID
}

// CurrentBudget is the limit that applies to a month.
type CurrentBudget struct {
	Month      types.Month     `json:"month" example:"2024-04"`
	Limit      decimal.Decimal `json:"limit" example:"1500"`
	CategoryID *uuid.UUID      `json:"categoryId" example:"2c566a88-cda6-4c1b-8cdd-a1b1dc7c2a00"`
	BudgetID   *uuid.UUID      `json:"budgetId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // ID of the stored budget, unset when the default limit applies
	IsDefault  bool            `json:"isDefault" example:"false"`                               // Is the limit the configured default?
}

type CurrentBudgetResponse struct {
	Data  *CurrentBudget `json:"data"`
	Error *string        `json:"error" example:"an error occurred while saving or loading data"` // The error, if any occurred
}
