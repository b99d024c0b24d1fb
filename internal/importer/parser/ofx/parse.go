// Package ofx parses bank and credit card statements in the OFX and QFX formats.
package ofx

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/expense-tracker/backend/internal/importer"
	"github.com/expense-tracker/backend/internal/importer/helpers"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var ErrNoStatement = errors.New("the file does not contain any bank or credit card statement")

var (
	severity = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)`)

	// Card payments are often prefixed with the payment method
	prefixes = []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"CARD PURCHASE ",
		"ACH DEBIT ",
		"VISA PURCHASE ",
		"PAGAMENTO POS ",
		"PAGAMENTO CARTA ",
	}
)

// Parse reads a statement and returns a preview for each transaction in it.
//
// Debits are imported as expenses, credits as income. Transactions
// with an amount of zero are skipped.
func Parse(f io.Reader) ([]importer.TransactionPreview, error) {
	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read the file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse the file: %w", err)
	}

	var lists []*ofxgo.TransactionList
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			lists = append(lists, stmt.BankTranList)
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			lists = append(lists, stmt.BankTranList)
		}
	}

	if len(lists) == 0 {
		return nil, ErrNoStatement
	}

	previews := make([]importer.TransactionPreview, 0)
	for _, list := range lists {
		if list == nil {
			continue
		}

		for _, t := range list.Transactions {
			preview, ok := convert(t)
			if !ok {
				log.Debug().Str("fitid", string(t.FiTID)).Msg("skipping transaction with zero amount")
				continue
			}
			previews = append(previews, preview)
		}
	}

	return previews, nil
}

// preprocess fixes common formatting issues of files exported by banks.
func preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	return severity.ReplaceAllStringFunc(content, strings.ToUpper)
}

func convert(t ofxgo.Transaction) (importer.TransactionPreview, bool) {
	amount, err := decimal.NewFromString(t.TrnAmt.FloatString(8))
	if err != nil || amount.IsZero() {
		return importer.TransactionPreview{}, false
	}

	transactionType := models.TransactionTypeIncome
	if amount.IsNegative() {
		transactionType = models.TransactionTypeExpense
	}

	date := t.DtPosted.Time.UTC()
	merchant := merchant(t)

	return importer.TransactionPreview{
		Transaction: models.Transaction{
			Amount:     amount.Abs(),
			Date:       date,
			Merchant:   merchant,
			Notes:      strings.TrimSpace(string(t.Memo)),
			Type:       transactionType,
			ImportHash: helpers.ImportHash(string(t.FiTID), date.Format("2006-01-02"), amount.String(), merchant),
		},
	}, true
}

// merchant returns the cleanest merchant name available for the transaction.
func merchant(t ofxgo.Transaction) string {
	if t.Payee != nil && strings.TrimSpace(string(t.Payee.Name)) != "" {
		return strings.TrimSpace(string(t.Payee.Name))
	}

	name := strings.TrimSpace(string(t.Name))
	if name == "" {
		name = strings.TrimSpace(string(t.Memo))
	}

	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = strings.TrimSpace(name[len(prefix):])
			break
		}
	}

	return name
}
