package billing

import (
	"errors"
	"time"

	"github.com/rav6044/smartpark/core/model"
)

// ErrInvalidTimeRange is returned when the exit time precedes the entry
// time. That is a caller error: clocks are read once per operation.
var ErrInvalidTimeRange = errors.New("exit time precedes entry time")

// Tier is the pricing scheme for one category: a flat fee covering up to
// FixedHours, then PerHour for every additional started hour.
type Tier struct {
	FixedHours int
	FixedRate  float64
	PerHour    float64
}

// Table maps each category to its pricing tier.
type Table map[model.Category]Tier

// DefaultTable returns the lot's standard pricing.
func DefaultTable() Table {
	return Table{
		model.CategoryBike:  {FixedHours: 2, FixedRate: 5, PerHour: 2},
		model.CategoryCar:   {FixedHours: 2, FixedRate: 10, PerHour: 5},
		model.CategoryEV:    {FixedHours: 2, FixedRate: 12, PerHour: 6},
		model.CategoryHeavy: {FixedHours: 1, FixedRate: 15, PerHour: 8},
		model.CategoryVIP:   {FixedHours: 3, FixedRate: 15, PerHour: 4},
	}
}

// Lookup returns the tier for the category, falling back to the CAR tier
// for categories missing from the table.
func (t Table) Lookup(c model.Category) Tier {
	if tier, ok := t[c]; ok {
		return tier
	}
	return t[model.CategoryCar]
}

// BilledHours rounds the duration up to whole hours with a minimum charge
// of one hour. Zero duration still bills one hour.
func BilledHours(d time.Duration) int {
	hours := int((d + time.Hour - 1) / time.Hour)
	if hours < 1 {
		return 1
	}
	return hours
}

// CalculateFee computes the fee and billed hours for a stay. It is a pure
// function of its inputs.
func CalculateFee(entry, exit time.Time, c model.Category, t Table) (float64, int, error) {
	if exit.Before(entry) {
		return 0, 0, ErrInvalidTimeRange
	}
	hours := BilledHours(exit.Sub(entry))
	tier := t.Lookup(c)
	fee := tier.FixedRate
	if hours > tier.FixedHours {
		fee += float64(hours-tier.FixedHours) * tier.PerHour
	}
	return fee, hours, nil
}
