package models

import (
	"errors"
	"fmt"
)

var (
	ErrStorage          = errors.New("an error occurred while saving or loading data")
	ErrResourceNotFound = errors.New("there is no")

	// ErrValidation is wrapped by every error caused by invalid input.
	ErrValidation = errors.New("validation failed")
)

var (
	ErrAmountUnparseable             = validation("the amount is not a valid decimal number")
	ErrCategoryNameEmpty             = validation("the category name must not be empty")
	ErrCategoryRuleMatchEmpty        = validation("the match pattern of a category rule must not be empty")
	ErrTransactionAmountNotPositive  = validation("the transaction amount must be positive")
	ErrTransactionMerchantEmpty      = validation("the merchant of a transaction must not be empty")
	ErrTransactionTypeInvalid        = validation("the transaction type must be 'Expense' or 'Income'")
	ErrSubscriptionNameEmpty         = validation("the subscription name must not be empty")
	ErrSubscriptionAmountNotPositive = validation("the subscription amount must be positive")
	ErrSubscriptionNeverBills        = validation("a subscription with frequency 'Never' does not renew")
	ErrFrequencyInvalid              = validation("the billing frequency is not valid")
	ErrBudgetLimitNegative           = validation("the budget limit must not be negative")
	ErrBudgetMonthNotUnique          = validation("there already is a budget for this month and category")
	ErrReferenceInvalid              = validation("a referenced resource does not exist")
)

func validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
