package v1

import (
	"net/http"
	"strings"

	"github.com/expense-tracker/backend/internal/aggregation"
	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransactions)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Transaction{})
}

// categoryMap returns all categories by their ID.
func categoryMap() (map[uuid.UUID]*models.Category, error) {
	categories, err := models.Categories(models.DB, false)
	if err != nil {
		return nil, err
	}

	m := make(map[uuid.UUID]*models.Category, len(categories))
	for i := range categories {
		m[categories[i].ID] = &categories[i]
	}

	return m, nil
}

// transactionsWithCategories converts the transactions to API resources.
func transactionsWithCategories(c *gin.Context, transactions []models.Transaction) ([]Transaction, error) {
	categories, err := categoryMap()
	if err != nil {
		return nil, err
	}

	data := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		var category *models.Category
		if t.CategoryID != nil {
			category = categories[*t.CategoryID]
		}

		data = append(data, newTransaction(c, t, category))
	}

	return data, nil
}

// @Summary		Create transactions
// @Description	Creates transactions from the list of submitted transaction data. The response code is the highest response code number for a single transaction creation
// @Tags			Transactions
// @Produce		json
// @Success		201				{object}	TransactionCreateResponse
// @Failure		400				{object}	TransactionCreateResponse
// @Failure		500				{object}	TransactionCreateResponse
// @Param			transactions	body		[]TransactionEditable	true	"Transactions"
// @Router			/v1/transactions [post]
func CreateTransactions(c *gin.Context) {
	var editables []TransactionEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := TransactionCreateResponse{}

	for _, editable := range editables {
		transaction := editable.model()

		err = models.DB.Create(&transaction).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		category, err := categoryOf(transaction)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newTransaction(c, transaction, category)
		r.Data = append(r.Data, TransactionResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get transactions
// @Description	Returns a list of transactions, newest first
// @Tags			Transactions
// @Produce		json
// @Success		200				{object}	TransactionListResponse
// @Failure		400				{object}	TransactionListResponse
// @Failure		500				{object}	TransactionListResponse
// @Router			/v1/transactions [get]
// @Param			period			query	string	false	"Only transactions in the same day, week, month or year as the reference date. Defaults to all"
// @Param			at				query	string	false	"Reference date for the period in YYYY-MM-DD format. Defaults to today"
// @Param			type			query	string	false	"Filter by type, Expense or Income"
// @Param			category		query	string	false	"Filter by category ID"
// @Param			uncategorized	query	bool	false	"Only transactions without a category"
// @Param			merchant		query	string	false	"Filter by merchant, '*' matches any number of characters"
// @Param			search			query	string	false	"Search for this text in merchant and notes"
// @Param			offset			query	uint	false	"The offset of the first Transaction returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of transactions to return. Defaults to 50."
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	err := httputil.BindQuery(c, &filter)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	period := aggregation.PeriodAll
	if filter.Period != "" {
		period, err = filter.period()
		if err != nil {
			s := err.Error()
			c.JSON(status(err), TransactionListResponse{
				Error: &s,
			})
			return
		}
	}

	q := models.DB.Order("date desc, created_at desc")

	if filter.Type != "" {
		t := models.TransactionType(filter.Type)
		if !t.Valid() {
			s := errTransactionTypeInvalid.Error()
			c.JSON(http.StatusBadRequest, TransactionListResponse{
				Error: &s,
			})
			return
		}
		q = q.Where("type = ?", t)
	}

	if filter.Uncategorized {
		q = q.Where("category_id IS NULL")
	} else if id := filter.Category.Ptr(); id != nil {
		q = q.Where("category_id = ?", *id)
	}

	var transactions []models.Transaction
	err = q.Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	transactions = aggregation.FilterByPeriod(transactions, period, filter.reference())
	transactions = slices.DeleteFunc(transactions, func(t models.Transaction) bool {
		return !matchesText(t, filter.Merchant, filter.Search)
	})

	total := len(transactions)
	transactions = paginate(transactions, filter.Offset, filter.Limit)

	data, err := transactionsWithCategories(c, transactions)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  int64(total),
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

const defaultLimit = 50

// paginate returns the page of items starting at offset with at most limit
// items. A limit that is not positive uses the default.
func paginate[T any](items []T, offset uint, limit int) []T {
	if limit <= 0 {
		limit = defaultLimit
	}

	if int(offset) >= len(items) {
		return []T{}
	}

	items = items[offset:]
	if len(items) > limit {
		items = items[:limit]
	}

	return items
}

// matchesText reports if the merchant of the transaction matches the glob
// pattern and the search text is part of merchant or notes. Both checks
// ignore case, empty values match everything.
func matchesText(t models.Transaction, merchant, search string) bool {
	if merchant != "" && !glob.Glob(strings.ToLower(merchant), strings.ToLower(t.Merchant)) {
		return false
	}

	if search == "" {
		return true
	}

	search = strings.ToLower(search)
	return strings.Contains(strings.ToLower(t.Merchant), search) || strings.Contains(strings.ToLower(t.Notes), search)
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	transaction, err := getByID[models.Transaction](c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	category, err := categoryOf(transaction)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	data := newTransaction(c, transaction, category)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Update transaction
// @Description	Updates an existing transaction. Only values to be updated need to be specified.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func UpdateTransaction(c *gin.Context) {
	transaction, err := getByID[models.Transaction](c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	// Fields not in the body keep their current value
	data := transactionEditable(transaction)
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	updated := data.model()
	updated.SubscriptionID = transaction.SubscriptionID
	updated.ImportHash = transaction.ImportHash

	err = transaction.UpdateWith(models.DB, updated)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	category, err := categoryOf(transaction)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	r := newTransaction(c, transaction, category)
	c.JSON(http.StatusOK, TransactionResponse{Data: &r})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	transaction, err := getByID[models.Transaction](c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
