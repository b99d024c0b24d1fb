package v1

import (
	"fmt"
	"time"

	"github.com/expense-tracker/backend/internal/models"
	ez_uuid "github.com/expense-tracker/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	Amount     Amount                 `json:"amount" example:"14.03" minimum:"0.00000001" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount of the transaction, always positive
	Date       time.Time              `json:"date" example:"1815-12-10T18:43:00.271152Z"`                                                         // Date of the transaction. Defaults to now
	Merchant   string                 `json:"merchant" example:"Corner Bakery"`                                                                   // Who the money was paid to or received from
	Notes      string                 `json:"notes" example:"Birthday cake"`                                                                      // Free text notes
	CategoryID *uuid.UUID             `json:"categoryId" example:"2c566a88-cda6-4c1b-8cdd-a1b1dc7c2a00"`                                          // ID of the category
	ColorHex   string                 `json:"colorHex" example:"#FF9500"`                                                                         // Overrides the category color when set
	Receipt    []byte                 `json:"receipt,omitempty" swaggertype:"string" format:"base64"`                                             // Image of the receipt
	Type       models.TransactionType `json:"type" example:"Expense"`                                                                             // Expense or Income. Defaults to Expense
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Amount:     editable.Amount.Decimal,
		Date:       editable.Date,
		Merchant:   editable.Merchant,
		Notes:      editable.Notes,
		CategoryID: editable.CategoryID,
		ColorHex:   editable.ColorHex,
		Receipt:    editable.Receipt,
		Type:       editable.Type,
	}
}

func transactionEditable(model models.Transaction) TransactionEditable {
	return TransactionEditable{
		Amount:     NewAmount(model.Amount),
		Date:       model.Date,
		Merchant:   model.Merchant,
		Notes:      model.Notes,
		CategoryID: model.CategoryID,
		ColorHex:   model.ColorHex,
		Receipt:    model.Receipt,
		Type:       model.Type,
	}
}

type TransactionLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"`   // The transaction itself
	Category string `json:"category,omitempty" example:"https://example.com/api/v1/categories/2c566a88-cda6-4c1b-8cdd-a1b1dc7c2a00"` // The category of the transaction
}

type Transaction struct {
	models.DefaultModel
	TransactionEditable
	SubscriptionID *uuid.UUID       `json:"subscriptionId" example:"9ab3af3e-3c98-4a52-9c24-c1d136f3c0d4"` // The subscription that billed this transaction
	ImportHash     string           `json:"importHash" example:"867e3a26dc0baf73f4bff506f31a97f6c32088917e9e5cf1a5ed6f3f84a6fa70"` // Hash of the imported statement line
	Links          TransactionLinks `json:"links"`

	// Computed fields
	DisplayAmount string `json:"displayAmount" example:"-€ 14,03"` // Signed amount in the configured currency and locale
	Color         string `json:"color" example:"#ff9500"`          // Color to display for the transaction
}

// newTransaction builds the API resource for a transaction. category is
// the category of the transaction, if it has one.
func newTransaction(c *gin.Context, model models.Transaction, category *models.Category) Transaction {
	url := c.GetString(string(models.DBContextURL))

	t := Transaction{
		DefaultModel:        model.DefaultModel,
		TransactionEditable: transactionEditable(model),
		SubscriptionID:      model.SubscriptionID,
		ImportHash:          model.ImportHash,
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
		DisplayAmount: model.DisplayAmount(settings(c).Formatter),
		Color:         model.Color(category).Hex(),
	}

	if model.CategoryID != nil {
		t.Links.Category = fmt.Sprintf("%s/v1/categories/%s", url, model.CategoryID)
	}

	return t
}

// categoryOf returns the category of the transaction or nil.
func categoryOf(model models.Transaction) (*models.Category, error) {
	if model.CategoryID == nil {
		return nil, nil
	}

	category, err := models.CategoryByID(models.DB, *model.CategoryID)
	if err != nil {
		return nil, err
	}

	return &category, nil
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Data  []TransactionResponse `json:"data"`                                                          // List of created Transactions
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	QueryPeriod
	Type          string       `form:"type"`          // Expense or Income
	Category      ez_uuid.UUID `form:"category"`      // By ID of the category
	Uncategorized bool         `form:"uncategorized"` // Only transactions without a category
	Merchant      string       `form:"merchant"`      // Merchant pattern, "*" matches any number of characters
	Search        string       `form:"search"`        // By string in merchant or notes
	Offset        uint         `form:"offset"`        // The offset of the first Transaction returned. Defaults to 0.
	Limit         int          `form:"limit"`         // Maximum number of transactions to return. Defaults to 50.
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}
