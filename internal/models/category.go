package models

import (
	"strings"

	"github.com/expense-tracker/backend/internal/color"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// Locale is the language used to sort categories by name.
var Locale = language.Italian

// Category is a label for transactions and subscriptions.
type Category struct {
	DefaultModel
	Name      string `json:"name" example:"Food"`
	Icon      string `json:"icon" example:"cart.fill"`
	ColorHex  string `json:"colorHex" example:"#34C759"`
	IsDefault bool   `json:"isDefault" example:"true"` // Categories created by seeding
}

// defaultCategories is the fixed list of categories created for a new installation.
var defaultCategories = []Category{
	{Name: "Food", Icon: "cart.fill", ColorHex: "#34C759"},
	{Name: "Transport", Icon: "car.fill", ColorHex: "#007AFF"},
	{Name: "Shopping", Icon: "bag.fill", ColorHex: "#FF9500"},
	{Name: "Entertainment", Icon: "tv.fill", ColorHex: "#AF52DE"},
	{Name: "Bills", Icon: "doc.text.fill", ColorHex: "#5856D6"},
	{Name: "Health", Icon: "heart.fill", ColorHex: "#FF3B30"},
	{Name: "Other", Icon: "ellipsis.circle.fill", ColorHex: "#8E8E93"},
}

// DefaultCategories returns a copy of the categories SeedDefaultCategories creates.
func DefaultCategories() []Category {
	c := make([]Category, len(defaultCategories))
	copy(c, defaultCategories)
	for i := range c {
		c[i].IsDefault = true
	}
	return c
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Icon = strings.TrimSpace(c.Icon)
	c.ColorHex = strings.TrimSpace(c.ColorHex)

	if c.Name == "" {
		return ErrCategoryNameEmpty
	}

	return nil
}

// BeforeDelete removes all references to the category.
//
// Transactions and subscriptions are kept and become uncategorized.
// Budgets and category rules only make sense for their category and
// are deleted with it.
func (c *Category) BeforeDelete(tx *gorm.DB) error {
	err := fresh(tx).Model(&Transaction{}).Where("category_id = ?", c.ID).UpdateColumn("category_id", nil).Error
	if err != nil {
		return err
	}

	err = fresh(tx).Model(&Subscription{}).Where("category_id = ?", c.ID).UpdateColumn("category_id", nil).Error
	if err != nil {
		return err
	}

	err = fresh(tx).Where("category_id = ?", c.ID).Delete(&Budget{}).Error
	if err != nil {
		return err
	}

	return fresh(tx).Where("category_id = ?", c.ID).Delete(&CategoryRule{}).Error
}

// Color returns the decoded color of the category. Gray is used
// when the stored value is not a valid color.
func (c Category) Color() color.Color {
	return color.DecodeOr(c.ColorHex, color.Gray)
}

// CreateCategory creates a new category.
func CreateCategory(db *gorm.DB, name, icon, colorHex string) (Category, error) {
	category := Category{
		Name:     name,
		Icon:     icon,
		ColorHex: colorHex,
	}

	err := db.Create(&category).Error
	return category, err
}

// Update replaces the attributes of the category.
func (c *Category) Update(db *gorm.DB, name, icon, colorHex string) error {
	c.Name = name
	c.Icon = icon
	c.ColorHex = colorHex

	return db.Save(c).Error
}

// Categories returns all categories. With sorted set, they are ordered
// by name using the collation rules of Locale. Otherwise, they are
// returned in the order they were created in.
func Categories(db *gorm.DB, sorted bool) ([]Category, error) {
	var categories []Category
	err := db.Order("created_at, id").Find(&categories).Error
	if err != nil {
		return nil, err
	}

	if sorted {
		col := collate.New(Locale, collate.IgnoreCase)
		slices.SortStableFunc(categories, func(a, b Category) int {
			return col.CompareString(a.Name, b.Name)
		})
	}

	return categories, nil
}

// CategoryByID returns the category with the given ID.
func CategoryByID(db *gorm.DB, id uuid.UUID) (Category, error) {
	var category Category
	err := db.First(&category, "id = ?", id).Error
	return category, err
}

// SeedDefaultCategories creates the default categories if no category exists.
//
// It returns the categories that have been created, which is none
// if there already are categories.
func SeedDefaultCategories(db *gorm.DB) ([]Category, error) {
	var created []Category

	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&Category{}).Count(&count).Error
		if err != nil || count > 0 {
			return err
		}

		created = DefaultCategories()
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}
