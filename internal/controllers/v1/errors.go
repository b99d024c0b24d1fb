package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/expense-tracker/backend/internal/aggregation"
	"github.com/expense-tracker/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrStorage) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Import errors
var (
	errNoFilePost      = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix = errors.New("this endpoint only supports files of the following types")
)

// Stats errors
var (
	errMonthsOutOfRange = fmt.Errorf("the number of months must be between 1 and %d", aggregation.MaxMonthsBack)
)

// Transaction errors
var (
	errTransactionTypeInvalid = errors.New("the type filter must be 'Expense' or 'Income'")
)
