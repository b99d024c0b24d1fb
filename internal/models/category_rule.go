package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryRule assigns a category to imported transactions whose merchant
// matches the glob pattern in Match.
type CategoryRule struct {
	DefaultModel
	Category   *Category `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CategoryID uuid.UUID `json:"categoryId" example:"2c566a88-cda6-4c1b-8cdd-a1b1dc7c2a00"`
	Priority   uint      `json:"priority" example:"3"`   // Rules with lower priority are applied first
	Match      string    `json:"match" example:"Bakery*"` // Matched against the merchant, "*" matches any number of characters
}

func (r *CategoryRule) BeforeSave(_ *gorm.DB) error {
	r.Match = strings.TrimSpace(r.Match)

	if r.Match == "" {
		return ErrCategoryRuleMatchEmpty
	}

	return nil
}

// CategoryRules returns all rules in the order they are applied in.
func CategoryRules(db *gorm.DB) ([]CategoryRule, error) {
	var rules []CategoryRule
	err := db.Order("priority asc, created_at asc").Find(&rules).Error
	return rules, err
}
