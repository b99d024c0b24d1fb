package v1

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/expense-tracker/backend/internal/aggregation"
	"github.com/expense-tracker/backend/internal/models"
	ez_uuid "github.com/expense-tracker/backend/internal/uuid"
	"github.com/shopspring/decimal"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// QueryReference sets the point in time aggregations are computed for.
type QueryReference struct {
	At time.Time `form:"at" time_format:"2006-01-02" time_utc:"1" example:"2024-04-15"` // Reference date in YYYY-MM-DD format. Defaults to now.
}

// reference returns the reference time, now if none is set.
func (q QueryReference) reference() time.Time {
	if q.At.IsZero() {
		return time.Now()
	}

	return q.At
}

type QueryPeriod struct {
	QueryReference
	Period string `form:"period" example:"month"` // One of day, week, month, year, all. Defaults to month.
}

func (q QueryPeriod) period() (aggregation.Period, error) {
	return aggregation.ParsePeriod(q.Period)
}

// Amount is a decimal amount as entered by a user. It is read from JSON
// numbers and from strings using "." or "," as decimal separator.
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		a.Decimal = decimal.Zero
		return nil
	}

	s := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return models.ErrAmountUnparseable
		}
	}

	d, err := models.ParseAmount(s)
	if err != nil {
		return err
	}

	a.Decimal = d
	return nil
}
