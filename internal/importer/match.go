package importer

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// MaxSuggestionDistance is the maximum edit distance between two merchant
// names for the category of one to be suggested for the other.
const MaxSuggestionDistance = 2

// Match applies the first matching category rule to the transaction.
// Rules must be sorted by priority. Matching ignores case.
func Match(preview *TransactionPreview, rules []models.CategoryRule) bool {
	merchant := strings.ToLower(preview.Transaction.Merchant)

	for _, rule := range rules {
		if glob.Glob(strings.ToLower(rule.Match), merchant) {
			id := rule.CategoryID
			ruleID := rule.ID
			preview.Transaction.CategoryID = &id
			preview.CategoryRuleID = &ruleID
			return true
		}
	}

	return false
}

// Suggest sets the category of the known transaction with the most similar
// merchant. Transactions without a category are ignored. Nothing is
// suggested if no merchant is within MaxSuggestionDistance.
func Suggest(preview *TransactionPreview, known []models.Transaction) bool {
	merchant := strings.ToUpper(preview.Transaction.Merchant)
	best := MaxSuggestionDistance + 1

	var match *models.Transaction
	for i := range known {
		if known[i].CategoryID == nil {
			continue
		}

		distance := levenshtein.ComputeDistance(merchant, strings.ToUpper(known[i].Merchant))
		if distance < best {
			best = distance
			match = &known[i]
		}

		if distance == 0 {
			break
		}
	}

	if match == nil {
		return false
	}

	categoryID := *match.CategoryID
	suggestedBy := match.ID
	preview.Transaction.CategoryID = &categoryID
	preview.SuggestedByID = &suggestedBy
	return true
}

// duplicates sets the IDs of stored transactions with the same import hash.
func duplicates(db *gorm.DB, preview *TransactionPreview) error {
	// An empty list marshals to [], not null
	preview.DuplicateTransactionIDs = make([]uuid.UUID, 0)

	if preview.Transaction.ImportHash == "" {
		return nil
	}

	var transactions []models.Transaction
	err := db.Where(&models.Transaction{ImportHash: preview.Transaction.ImportHash}).Find(&transactions).Error
	if err != nil {
		return err
	}

	for _, t := range transactions {
		preview.DuplicateTransactionIDs = append(preview.DuplicateTransactionIDs, t.ID)
	}

	return nil
}

// Prepare enriches the previews with stored data. Categories are set by
// the category rules, or suggested from stored transactions if no rule
// matches. Duplicates of stored transactions are marked.
func Prepare(db *gorm.DB, previews []TransactionPreview) error {
	rules, err := models.CategoryRules(db)
	if err != nil {
		return err
	}

	var known []models.Transaction
	err = db.Where("category_id IS NOT NULL").Order("date desc").Find(&known).Error
	if err != nil {
		return err
	}

	for i := range previews {
		if !Match(&previews[i], rules) {
			Suggest(&previews[i], known)
		}

		err = duplicates(db, &previews[i])
		if err != nil {
			return err
		}
	}

	return nil
}

// Create stores the transactions of the previews in a single database
// transaction. Transactions with an import hash that is stored already,
// including earlier lines of the same statement, are skipped.
func Create(db *gorm.DB, previews []TransactionPreview) ([]models.Transaction, error) {
	created := make([]models.Transaction, 0, len(previews))

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, p := range previews {
			t := p.Transaction

			if t.ImportHash != "" {
				var count int64
				err := tx.Model(&models.Transaction{}).Where(&models.Transaction{ImportHash: t.ImportHash}).Count(&count).Error
				if err != nil {
					return err
				}

				if count > 0 {
					continue
				}
			}

			err := tx.Create(&t).Error
			if err != nil {
				return err
			}
			created = append(created, t)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}
