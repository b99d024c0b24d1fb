package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the interval in which a subscription renews.
type Frequency string

const (
	FrequencyNever        Frequency = "Never"
	FrequencyDaily        Frequency = "Daily"
	FrequencyWeekly       Frequency = "Weekly"
	FrequencyBiWeekly     Frequency = "Bi-Weekly"
	FrequencyMonthly      Frequency = "Monthly"
	FrequencySemiAnnually Frequency = "Semi-Annually"
	FrequencyYearly       Frequency = "Yearly"
)

// Frequencies lists all frequencies in ascending order of their interval.
var Frequencies = []Frequency{
	FrequencyNever,
	FrequencyDaily,
	FrequencyWeekly,
	FrequencyBiWeekly,
	FrequencyMonthly,
	FrequencySemiAnnually,
	FrequencyYearly,
}

var multipliers = map[Frequency]int64{
	FrequencyNever:        0,
	FrequencyDaily:        365,
	FrequencyWeekly:       52,
	FrequencyBiWeekly:     26,
	FrequencyMonthly:      12,
	FrequencySemiAnnually: 2,
	FrequencyYearly:       1,
}

// Valid reports if f is a known frequency.
func (f Frequency) Valid() bool {
	_, ok := multipliers[f]
	return ok
}

// Multiplier is the number of times per year a subscription with
// this frequency renews.
func (f Frequency) Multiplier() decimal.Decimal {
	return decimal.NewFromInt(multipliers[f])
}

// NextDate returns the date one interval of f after date.
//
// Month based intervals keep the day of the month. When that day does
// not exist in the target month, the last day of the target month is
// used, so January 31st plus one month is the last day of February.
// The date is returned unchanged for FrequencyNever and unknown frequencies.
func NextDate(f Frequency, date time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return date.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return date.AddDate(0, 0, 7)
	case FrequencyBiWeekly:
		return date.AddDate(0, 0, 14)
	case FrequencyMonthly:
		return addMonths(date, 1)
	case FrequencySemiAnnually:
		return addMonths(date, 6)
	case FrequencyYearly:
		return addMonths(date, 12)
	}

	return date
}

// addMonths adds n months to t, clamping the day to the length of the target month.
func addMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	hour, minute, second := t.Clock()

	// Day 0 of the month after the target is the last day of the target month
	last := time.Date(year, month+time.Month(n)+1, 0, 0, 0, 0, 0, t.Location()).Day()
	if day > last {
		day = last
	}

	return time.Date(year, month+time.Month(n), day, hour, minute, second, t.Nanosecond(), t.Location())
}
