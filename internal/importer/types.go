package importer

import (
	"github.com/expense-tracker/backend/internal/models"
	"github.com/google/uuid"
)

// TransactionPreview is a parsed transaction that has not been stored yet.
// It allows to review and edit the transaction before it is imported.
type TransactionPreview struct {
	Transaction             models.Transaction `json:"transaction"`
	DuplicateTransactionIDs []uuid.UUID        `json:"duplicateTransactionIds"`                                       // IDs of stored transactions with the same import hash
	CategoryRuleID          *uuid.UUID         `json:"categoryRuleId" example:"042d101d-f1de-4403-9295-59dc0ea58677"` // ID of the category rule that set the category
	SuggestedByID           *uuid.UUID         `json:"suggestedById" example:"8e0d4c2a-7b8e-4f1b-9f54-2a0a3b2d1c55"`  // ID of the stored transaction with a similar merchant whose category was used
}

// IsDuplicate reports if a transaction with the same import hash is stored already.
func (p TransactionPreview) IsDuplicate() bool {
	return len(p.DuplicateTransactionIDs) > 0
}
