package v1

import (
	"net/http"
	"time"

	"github.com/expense-tracker/backend/internal/aggregation"
	"github.com/expense-tracker/backend/internal/httputil"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterSubscriptionRoutes registers the routes for subscriptions with
// the RouterGroup that is passed.
func RegisterSubscriptionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSubscriptionList)
		r.GET("", GetSubscriptions)
		r.POST("", CreateSubscriptions)
		r.OPTIONS("/totals", OptionsSubscriptionTotals)
		r.GET("/totals", GetSubscriptionTotals)
		r.OPTIONS("/bill-due", OptionsSubscriptionBillDue)
		r.POST("/bill-due", BillDueSubscriptions)
	}

	// Subscription with ID
	{
		r.OPTIONS("/:id", OptionsSubscriptionDetail)
		r.GET("/:id", GetSubscription)
		r.PATCH("/:id", UpdateSubscription)
		r.DELETE("/:id", DeleteSubscription)
		r.OPTIONS("/:id/advance", OptionsSubscriptionAction)
		r.POST("/:id/advance", AdvanceSubscription)
		r.OPTIONS("/:id/bill", OptionsSubscriptionAction)
		r.POST("/:id/bill", BillSubscription)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Subscriptions
// @Success		204
// @Router			/v1/subscriptions [options]
func OptionsSubscriptionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Subscriptions
// @Success		204
// @Router			/v1/subscriptions/totals [options]
func OptionsSubscriptionTotals(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Subscriptions
// @Success		204
// @Router			/v1/subscriptions/bill-due [options]
func OptionsSubscriptionBillDue(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Subscriptions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/subscriptions/{id} [options]
func OptionsSubscriptionDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Subscription{})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Subscriptions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/subscriptions/{id}/advance [options]
// @Router			/v1/subscriptions/{id}/bill [options]
func OptionsSubscriptionAction(c *gin.Context) {
	_, err := getByID[models.Subscription](c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsPost(c)
}

// @Summary		Create subscriptions
// @Description	Creates new subscriptions
// @Tags			Subscriptions
// @Produce		json
// @Success		201				{object}	SubscriptionCreateResponse
// @Failure		400				{object}	SubscriptionCreateResponse
// @Failure		500				{object}	SubscriptionCreateResponse
// @Param			subscriptions	body		[]SubscriptionEditable	true	"Subscriptions"
// @Router			/v1/subscriptions [post]
func CreateSubscriptions(c *gin.Context) {
	var editables []SubscriptionEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SubscriptionCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := SubscriptionCreateResponse{}

	for _, editable := range editables {
		subscription := editable.model()

		err = models.DB.Create(&subscription).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newSubscription(c, subscription)
		r.Data = append(r.Data, SubscriptionResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get subscriptions
// @Description	Returns all subscriptions, the next due first
// @Tags			Subscriptions
// @Produce		json
// @Success		200		{object}	SubscriptionListResponse
// @Failure		400		{object}	SubscriptionListResponse
// @Failure		500		{object}	SubscriptionListResponse
// @Param			active	query		bool	false	"Filter by active state"
// @Router			/v1/subscriptions [get]
func GetSubscriptions(c *gin.Context) {
	var filter SubscriptionQueryFilter
	err := httputil.BindQuery(c, &filter)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubscriptionListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.Order("next_due_date asc, name asc")
	if filter.Active != nil {
		q = q.Where("is_active = ?", *filter.Active)
	}

	var subscriptions []models.Subscription
	err = q.Find(&subscriptions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubscriptionListResponse{
			Error: &s,
		})
		return
	}

	data := make([]Subscription, 0, len(subscriptions))
	for _, subscription := range subscriptions {
		data = append(data, newSubscription(c, subscription))
	}

	c.JSON(http.StatusOK, SubscriptionListResponse{Data: data})
}

// @Summary		Get subscription totals
// @Description	Returns the number of active subscriptions and the sum of their monthly and yearly amounts
// @Tags			Subscriptions
// @Produce		json
// @Success		200	{object}	SubscriptionTotalsResponse
// @Failure		500	{object}	SubscriptionTotalsResponse
// @Router			/v1/subscriptions/totals [get]
func GetSubscriptionTotals(c *gin.Context) {
	var subscriptions []models.Subscription
	err := models.DB.Find(&subscriptions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubscriptionTotalsResponse{
			Error: &s,
		})
		return
	}

	totals := aggregation.SubscriptionTotals(subscriptions)
	formatter := settings(c).Formatter

	c.JSON(http.StatusOK, SubscriptionTotalsResponse{
		Data: &SubscriptionTotals{
			Active:         totals.Active,
			Monthly:        totals.Monthly,
			Yearly:         totals.Yearly,
			DisplayMonthly: formatter.Format(totals.Monthly),
			DisplayYearly:  formatter.Format(totals.Yearly),
		},
	})
}

// @Summary		Get subscription
// @Description	Returns a specific subscription
// @Tags			Subscriptions
// @Produce		json
// @Success		200	{object}	SubscriptionResponse
// @Failure		400	{object}	SubscriptionResponse
// @Failure		404	{object}	SubscriptionResponse
// @Failure		500	{object}	SubscriptionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/subscriptions/{id} [get]
func GetSubscription(c *gin.Context) {
	subscription, err := getByID[models.Subscription](c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubscriptionResponse{
			Error: &s,
		})
		return
	}

	data := newSubscription(c, subscription)
	c.JSON(http.StatusOK, SubscriptionResponse{Data: &data})
}

// @Summary		Update subscription
// @Description	Updates an existing subscription. Only values to be updated need to be specified.
// @Tags			Subscriptions
// @Accept			json
// @Produce		json
// @Success		200				{object}	SubscriptionResponse
// @Failure		400				{object}	SubscriptionResponse
// @Failure		404				{object}	SubscriptionResponse
// @Failure		500				{object}	SubscriptionResponse
// @Param			id				path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			subscription	body		SubscriptionEditable	true	"Subscription"
// @Router			/v1/subscriptions/{id} [patch]
func UpdateSubscription(c *gin.Context) {
	subscription, err := getByID[models.Subscription](c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubscriptionResponse{
			Error: &s,
		})
		return
	}

	// Fields not in the body keep their current value
	data := subscriptionEditable(subscription)
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubscriptionResponse{
			Error: &s,
		})
		return
	}

	updated := data.model()
	updated.DefaultModel = subscription.DefaultModel

	err = models.DB.Save(&updated).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubscriptionResponse{
			Error: &s,
		})
		return
	}

	r := newSubscription(c, updated)
	c.JSON(http.StatusOK, SubscriptionResponse{Data: &r})
}

// @Summary		Delete subscription
// @Description	Deletes a subscription. Transactions billed for it are kept.
// @Tags			Subscriptions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/subscriptions/{id} [delete]
func DeleteSubscription(c *gin.Context) {
	subscription, err := getByID[models.Subscription](c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&subscription).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Advance subscription
// @Description	Moves the next due date of the subscription forward by one billing cycle without recording a transaction
// @Tags			Subscriptions
// @Produce		json
// @Success		200	{object}	SubscriptionResponse
// @Failure		400	{object}	SubscriptionResponse
// @Failure		404	{object}	SubscriptionResponse
// @Failure		500	{object}	SubscriptionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/subscriptions/{id}/advance [post]
func AdvanceSubscription(c *gin.Context) {
	subscription, err := getByID[models.Subscription](c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubscriptionResponse{
			Error: &s,
		})
		return
	}

	subscription.Advance()
	err = models.DB.Save(&subscription).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubscriptionResponse{
			Error: &s,
		})
		return
	}

	data := newSubscription(c, subscription)
	c.JSON(http.StatusOK, SubscriptionResponse{Data: &data})
}

// @Summary		Bill subscription
// @Description	Records an expense for the current billing cycle and advances the next due date
// @Tags			Subscriptions
// @Produce		json
// @Success		201	{object}	SubscriptionBillResponse
// @Failure		400	{object}	SubscriptionBillResponse
// @Failure		404	{object}	SubscriptionBillResponse
// @Failure		500	{object}	SubscriptionBillResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/subscriptions/{id}/bill [post]
func BillSubscription(c *gin.Context) {
	subscription, err := getByID[models.Subscription](c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubscriptionBillResponse{
			Error: &s,
		})
		return
	}

	transaction, err := subscription.Bill(models.DB)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubscriptionBillResponse{
			Error: &s,
		})
		return
	}

	category, err := categoryOf(transaction)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubscriptionBillResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusCreated, SubscriptionBillResponse{
		Data: &SubscriptionBill{
			Subscription: newSubscription(c, subscription),
			Transaction:  newTransaction(c, transaction, category),
		},
	})
}

// @Summary		Bill all due subscriptions
// @Description	Bills every active subscription until its next due date is in the future. Returns the recorded transactions.
// @Tags			Subscriptions
// @Produce		json
// @Success		200	{object}	SubscriptionBillDueResponse
// @Failure		500	{object}	SubscriptionBillDueResponse
// @Router			/v1/subscriptions/bill-due [post]
func BillDueSubscriptions(c *gin.Context) {
	billed, err := models.BillDue(models.DB, time.Now())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubscriptionBillDueResponse{
			Error: &s,
		})
		return
	}

	data, err := transactionsWithCategories(c, billed)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubscriptionBillDueResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, SubscriptionBillDueResponse{Data: data})
}
