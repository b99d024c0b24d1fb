package models_test

import (
	"strings"
	"testing"
	"time"

	"github.com/expense-tracker/backend/internal/color"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

func (suite *TestSuiteStandard) TestTransactionTrimWhitespace() {
	transaction := suite.createTestTransaction(models.Transaction{
		Merchant: "  Corner Bakery\t",
		Notes:    "\n Cake ",
	})

	suite.Assert().Equal("Corner Bakery", transaction.Merchant)
	suite.Assert().Equal("Cake", transaction.Notes)
}

func (suite *TestSuiteStandard) TestTransactionDefaults() {
	before := time.Now().Add(-time.Second)
	transaction := suite.createTestTransaction(models.Transaction{})

	suite.Assert().Equal(models.TransactionTypeExpense, transaction.Type)
	suite.Assert().True(transaction.Date.After(before), "Date must default to the current time")
	suite.Assert().Equal(time.UTC, transaction.Date.Location())
}

func (suite *TestSuiteStandard) TestTransactionNilUUIDReference() {
	nilID := uuid.Nil
	transaction := suite.createTestTransaction(models.Transaction{CategoryID: &nilID})
	suite.Assert().Nil(transaction.CategoryID)
}

func (suite *TestSuiteStandard) TestTransactionValidation() {
	tests := []struct {
		name        string
		transaction models.Transaction
		err         error
	}{
		{"Zero amount", models.Transaction{Merchant: "Shop"}, models.ErrTransactionAmountNotPositive},
		{"Negative amount", models.Transaction{Merchant: "Shop", Amount: decimal.NewFromInt(-5)}, models.ErrTransactionAmountNotPositive},
		{"Empty merchant", models.Transaction{Merchant: "  ", Amount: decimal.NewFromInt(5)}, models.ErrTransactionMerchantEmpty},
		{"Unknown type", models.Transaction{Merchant: "Shop", Amount: decimal.NewFromInt(5), Type: "Transfer"}, models.ErrTransactionTypeInvalid},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := models.DB.Create(&tt.transaction).Error
			assert.ErrorIs(t, err, tt.err)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionUpdateWith() {
	transaction := suite.createTestTransaction(models.Transaction{Merchant: "Bakery", Notes: "Bread"})
	id := transaction.ID

	err := transaction.UpdateWith(models.DB, models.Transaction{
		Merchant: "Butcher",
		Amount:   decimal.NewFromFloat(23.5),
		Type:     models.TransactionTypeExpense,
		Date:     time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC),
	})
	suite.Require().Nil(err)
	suite.Assert().Equal(id, transaction.ID)

	var reloaded models.Transaction
	suite.Require().Nil(models.DB.First(&reloaded, "id = ?", id).Error)
	suite.Assert().Equal("Butcher", reloaded.Merchant)
	suite.Assert().Equal("", reloaded.Notes, "Update must replace all fields")
	suite.Assert().True(decimal.NewFromFloat(23.5).Equal(reloaded.Amount))

	// Invalid updates are rejected
	err = transaction.UpdateWith(models.DB, models.Transaction{Merchant: "Butcher"})
	suite.Assert().ErrorIs(err, models.ErrTransactionAmountNotPositive)
}

func (suite *TestSuiteStandard) TestTransactionReceipt() {
	receipt := []byte{0x89, 0x50, 0x4e, 0x47}
	transaction := suite.createTestTransaction(models.Transaction{Receipt: receipt})

	var reloaded models.Transaction
	suite.Require().Nil(models.DB.First(&reloaded, "id = ?", transaction.ID).Error)
	suite.Assert().Equal(receipt, reloaded.Receipt)
}

func (suite *TestSuiteStandard) TestTransactionColor() {
	category := models.Category{ColorHex: "#34C759"}

	suite.Assert().Equal("#ff9500", models.Transaction{ColorHex: "#FF9500"}.Color(&category).Hex())
	suite.Assert().Equal("#34c759", models.Transaction{}.Color(&category).Hex())
	suite.Assert().Equal("#34c759", models.Transaction{ColorHex: "nope"}.Color(&category).Hex())
	suite.Assert().Equal(color.Gray, models.Transaction{}.Color(nil))
}

func (suite *TestSuiteStandard) TestTransactionDisplayAmount() {
	f := money.Formatter{Tag: language.English, Unit: currency.EUR}
	amount := decimal.NewFromFloat(12.5)

	expense := models.Transaction{Amount: amount, Type: models.TransactionTypeExpense}.DisplayAmount(f)
	suite.Assert().True(strings.HasPrefix(expense, "-"), expense)
	suite.Assert().Contains(expense, "12.50")

	income := models.Transaction{Amount: amount, Type: models.TransactionTypeIncome}.DisplayAmount(f)
	suite.Assert().True(strings.HasPrefix(income, "+"), income)
	suite.Assert().Contains(income, "12.50")
}

func (suite *TestSuiteStandard) TestParseAmount() {
	tests := []struct {
		in   string
		want string
		err  error
	}{
		{"12.50", "12.5", nil},
		{"12,50", "12.5", nil},
		{" 7 ", "7", nil},
		{"1.234,50", "1234.5", nil},
		{"1,234.50", "1234.5", nil},
		{"1,2,3", "", models.ErrAmountUnparseable},
		{"abc", "", models.ErrAmountUnparseable},
		{"", "", models.ErrAmountUnparseable},
	}

	for _, tt := range tests {
		suite.T().Run(tt.in, func(t *testing.T) {
			got, err := models.ParseAmount(tt.in)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.ErrorIs(t, err, models.ErrValidation)
				return
			}

			assert.Nil(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
