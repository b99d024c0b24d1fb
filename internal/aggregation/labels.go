package aggregation

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// English comes first to be the fallback of the matcher
var monthLanguages = []language.Tag{
	language.English,
	language.Italian,
	language.German,
	language.French,
	language.Spanish,
}

var monthNames = map[language.Tag][12]string{
	language.English: {"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"},
	language.Italian: {"gen", "feb", "mar", "apr", "mag", "giu", "lug", "ago", "set", "ott", "nov", "dic"},
	language.German:  {"jan", "feb", "mär", "apr", "mai", "jun", "jul", "aug", "sep", "okt", "nov", "dez"},
	language.French:  {"janv", "févr", "mars", "avr", "mai", "juin", "juil", "août", "sept", "oct", "nov", "déc"},
	language.Spanish: {"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"},
}

var monthMatcher = language.NewMatcher(monthLanguages)

// MonthLabel returns the capitalized short name of the month in the
// language closest to tag. English is used for unsupported languages.
func MonthLabel(m time.Month, tag language.Tag) string {
	_, index, _ := monthMatcher.Match(tag)
	supported := monthLanguages[index]

	return cases.Title(supported).String(monthNames[supported][m-1])
}
