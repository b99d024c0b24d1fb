package v1

import (
	"fmt"
	"time"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubscriptionEditable represents all user configurable parameters
type SubscriptionEditable struct {
	Name        string           `json:"name" example:"Streaming"`                                                                            // Name of the subscription
	Amount      Amount           `json:"amount" example:"12.99" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // Amount billed per cycle
	Frequency   models.Frequency `json:"frequency" example:"Monthly"`                                                                         // Billing frequency. Defaults to Monthly
	NextDueDate time.Time        `json:"nextDueDate" example:"2024-05-01T00:00:00Z"`                                                          // Date of the next billing. Defaults to one cycle from now
	CategoryID  *uuid.UUID       `json:"categoryId" example:"2c566a88-cda6-4c1b-8cdd-a1b1dc7c2a00"`                                           // ID of the category
	IsActive    *bool            `json:"isActive" example:"true" default:"true"`                                                              // Is the subscription active?
	Notes       string           `json:"notes" example:"Family plan"`                                                                         // Free text notes
}

func (editable SubscriptionEditable) model() models.Subscription {
	return models.Subscription{
		Name:        editable.Name,
		Amount:      editable.Amount.Decimal,
		Frequency:   editable.Frequency,
		NextDueDate: editable.NextDueDate,
		CategoryID:  editable.CategoryID,
		IsActive:    editable.IsActive == nil || *editable.IsActive,
		Notes:       editable.Notes,
	}
}

func subscriptionEditable(model models.Subscription) SubscriptionEditable {
	active := model.IsActive

	return SubscriptionEditable{
		Name:        model.Name,
		Amount:      NewAmount(model.Amount),
		Frequency:   model.Frequency,
		NextDueDate: model.NextDueDate,
		CategoryID:  model.CategoryID,
		IsActive:    &active,
		Notes:       model.Notes,
	}
}

type SubscriptionLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/subscriptions/9ab3af3e-3c98-4a52-9c24-c1d136f3c0d4"`            // The subscription itself
	Advance string `json:"advance" example:"https://example.com/api/v1/subscriptions/9ab3af3e-3c98-4a52-9c24-c1d136f3c0d4/advance"` // Moves the due date forward by one cycle
	Bill    string `json:"bill" example:"https://example.com/api/v1/subscriptions/9ab3af3e-3c98-4a52-9c24-c1d136f3c0d4/bill"`       // Records the billing of the current cycle
}

type Subscription struct {
	models.DefaultModel
	SubscriptionEditable
	Links SubscriptionLinks `json:"links"`

	// Computed fields
	MonthlyAmount decimal.Decimal `json:"monthlyAmount" example:"12.99"` // Amount per month
	AnnualAmount  decimal.Decimal `json:"annualAmount" example:"155.88"` // Amount per year
	DisplayAmount string          `json:"displayAmount" example:"€ 12,99"`
	DaysUntilDue  int             `json:"daysUntilDue" example:"2"` // Calendar days until the next billing, negative when overdue
	RenewsSoon    bool            `json:"renewsSoon" example:"true"` // Is the subscription active and due within the next three days?
}

func newSubscription(c *gin.Context, model models.Subscription) Subscription {
	url := c.GetString(string(models.DBContextURL))
	now := time.Now()

	return Subscription{
		DefaultModel:         model.DefaultModel,
		SubscriptionEditable: subscriptionEditable(model),
		Links: SubscriptionLinks{
			Self:    fmt.Sprintf("%s/v1/subscriptions/%s", url, model.ID),
			Advance: fmt.Sprintf("%s/v1/subscriptions/%s/advance", url, model.ID),
			Bill:    fmt.Sprintf("%s/v1/subscriptions/%s/bill", url, model.ID),
		},
		MonthlyAmount: model.MonthlyAmount(),
		AnnualAmount:  model.AnnualAmount(),
		DisplayAmount: settings(c).Formatter.Format(model.Amount),
		DaysUntilDue:  model.DaysUntilDue(now),
		RenewsSoon:    model.RenewsSoon(now),
	}
}

type SubscriptionListResponse struct {
	Data  []Subscription `json:"data"`                                                          // List of subscriptions
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type SubscriptionCreateResponse struct {
	Data  []SubscriptionResponse `json:"data"`                                                          // List of created subscriptions or their respective error
	Error *string                `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (s *SubscriptionCreateResponse) appendError(err error, currentStatus int) int {
	e := err.Error()
	s.Data = append(s.Data, SubscriptionResponse{Error: &e})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type SubscriptionResponse struct {
	Data  *Subscription `json:"data"`                                                          // Data for the subscription
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type SubscriptionQueryFilter struct {
	Active *bool `form:"active"` // Only active or inactive subscriptions
}

type SubscriptionTotals struct {
	Active         int             `json:"active" example:"4"`
	Monthly        decimal.Decimal `json:"monthly" example:"54.97"`
	Yearly         decimal.Decimal `json:"yearly" example:"659.64"`
	DisplayMonthly string          `json:"displayMonthly" example:"€ 54,97"`
	DisplayYearly  string          `json:"displayYearly" example:"€ 659,64"`
}

type SubscriptionTotalsResponse struct {
	Data  *SubscriptionTotals `json:"data"`                                                          // Sums over all active subscriptions
	Error *string             `json:"error" example:"an error occurred while saving or loading data"` // The error, if any occurred
}

type SubscriptionBill struct {
	Subscription Subscription `json:"subscription"` // The subscription with its advanced due date
	Transaction  Transaction  `json:"transaction"`  // The recorded expense
}

type SubscriptionBillResponse struct {
	Data  *SubscriptionBill `json:"data"`
	Error *string           `json:"error" example:"a subscription with frequency 'Never' does not renew"` // The error, if any occurred
}

type SubscriptionBillDueResponse struct {
	Data  []Transaction `json:"data"`                                                          // Transactions recorded for all due billings
	Error *string       `json:"error" example:"an error occurred while saving or loading data"` // The error, if any occurred
}
