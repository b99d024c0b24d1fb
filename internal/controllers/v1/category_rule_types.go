package v1

import (
	"fmt"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CategoryRuleEditable represents all user configurable parameters
type CategoryRuleEditable struct {
	CategoryID uuid.UUID `json:"categoryId" example:"2c566a88-cda6-4c1b-8cdd-a1b1dc7c2a00"` // ID of the category imported transactions are assigned to
	Priority   uint      `json:"priority" example:"3"`                                      // Rules with lower priority are applied first
	Match      string    `json:"match" example:"Bakery*"`                                   // Matched against the merchant, "*" matches any number of characters
}

func (editable CategoryRuleEditable) model() models.CategoryRule {
	return models.CategoryRule{
		CategoryID: editable.CategoryID,
		Priority:   editable.Priority,
		Match:      editable.Match,
	}
}

type CategoryRuleLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/category-rules/95018a69-758b-46c6-8bab-db70d9bd2bc9"` // The category rule itself
}

type CategoryRule struct {
	models.DefaultModel
	CategoryRuleEditable
	Links CategoryRuleLinks `json:"links"`
}

func newCategoryRule(c *gin.Context, model models.CategoryRule) CategoryRule {
	return CategoryRule{
		DefaultModel: model.DefaultModel,
		CategoryRuleEditable: CategoryRuleEditable{
			CategoryID: model.CategoryID,
			Priority:   model.Priority,
			Match:      model.Match,
		},
		Links: CategoryRuleLinks{
			Self: fmt.Sprintf("%s/v1/category-rules/%s", c.GetString(string(models.DBContextURL)), model.ID),
		},
	}
}

type CategoryRuleListResponse struct {
	Data  []CategoryRule `json:"data"`                                                          // List of category rules
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryRuleCreateResponse struct {
	Data  []CategoryRuleResponse `json:"data"`                                                          // List of created category rules or their respective error
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *CategoryRuleCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, CategoryRuleResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryRuleResponse struct {
	Data  *CategoryRule `json:"data"`                                                          // Data for the category rule
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}
