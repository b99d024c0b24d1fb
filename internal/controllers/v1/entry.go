package v1

import (
	"net/http"
	"time"

	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EntryEditable is the data of the add entry form.
type EntryEditable struct {
	Amount     Amount                 `json:"amount" example:"12.99"`
	Date       time.Time              `json:"date" example:"2024-04-01T00:00:00Z"` // Defaults to now
	Merchant   string                 `json:"merchant" example:"Streamflix"`
	Notes      string                 `json:"notes" example:""`
	CategoryID *uuid.UUID             `json:"categoryId" example:"2c566a88-cda6-4c1b-8cdd-a1b1dc7c2a00"`
	Type       models.TransactionType `json:"type" example:"Expense"`
	Recurrence models.Frequency       `json:"recurrence" example:"Monthly"` // Never, or unset, records a transaction. Any other frequency creates a subscription.
}

func (editable EntryEditable) model() models.Entry {
	return models.Entry{
		Amount:     editable.Amount.Decimal,
		Date:       editable.Date,
		Merchant:   editable.Merchant,
		Notes:      editable.Notes,
		CategoryID: editable.CategoryID,
		Type:       editable.Type,
		Recurrence: editable.Recurrence,
	}
}

// Entry is the result of adding an entry. Exactly one of the fields is set.
type Entry struct {
	Transaction  *Transaction  `json:"transaction"`
	Subscription *Subscription `json:"subscription"`
}

type EntryResponse struct {
	Data  *Entry  `json:"data"`
	Error *string `json:"error" example:"the merchant of a transaction must not be empty"` // The error, if any occurred
}

// RegisterEntryRoutes registers the routes for entries with
// the RouterGroup that is passed.
func RegisterEntryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsEntries)
	r.POST("", CreateEntry)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Entries
// @Success		204
// @Router			/v1/entries [options]
func OptionsEntries(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Add entry
// @Description	Records a one-time transaction, or creates a subscription when a recurrence is set
// @Tags			Entries
// @Accept			json
// @Produce		json
// @Success		201		{object}	EntryResponse
// @Failure		400		{object}	EntryResponse
// @Failure		500		{object}	EntryResponse
// @Param			entry	body		EntryEditable	true	"Entry"
// @Router			/v1/entries [post]
func CreateEntry(c *gin.Context) {
	var editable EntryEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EntryResponse{
			Error: &s,
		})
		return
	}

	transaction, subscription, err := models.AddEntry(models.DB, editable.model())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), EntryResponse{
			Error: &s,
		})
		return
	}

	var entry Entry
	if transaction != nil {
		category, err := categoryOf(*transaction)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), EntryResponse{
				Error: &s,
			})
			return
		}

		t := newTransaction(c, *transaction, category)
		entry.Transaction = &t
	}

	if subscription != nil {
		s := newSubscription(c, *subscription)
		entry.Subscription = &s
	}

	c.JSON(http.StatusCreated, EntryResponse{Data: &entry})
}
