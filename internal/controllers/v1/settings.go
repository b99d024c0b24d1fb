package v1

import (
	"github.com/expense-tracker/backend/internal/money"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

const settingsKey = "expenses-settings"

// Settings are the user preferences the handlers compute responses with.
type Settings struct {
	DefaultLimit decimal.Decimal // Budget limit used for months without a budget
	Formatter    money.Formatter
}

// DefaultSettings returns the settings used when none are configured.
func DefaultSettings() Settings {
	return Settings{
		DefaultLimit: decimal.NewFromInt(1500),
		Formatter: money.Formatter{
			Tag:  language.Italian,
			Unit: currency.EUR,
		},
	}
}

// SettingsMiddleware makes the settings available to all handlers.
func SettingsMiddleware(s Settings) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(settingsKey, s)
		c.Next()
	}
}

func settings(c *gin.Context) Settings {
	if s, ok := c.Get(settingsKey); ok {
		return s.(Settings)
	}

	return DefaultSettings()
}
