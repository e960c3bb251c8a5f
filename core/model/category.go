package model

import "fmt"

// Category defines the vehicle/slot class a slot belongs to.
type Category int

const (
	CategoryBike Category = iota
	CategoryCar
	CategoryEV
	CategoryHeavy
	CategoryVIP
)

// Categories lists every category in slot-creation order. VIP comes first:
// the reserved pool is built before the standard pools.
var Categories = []Category{CategoryVIP, CategoryBike, CategoryCar, CategoryEV, CategoryHeavy}

// RequestableCategories are the types a vehicle may ask for on entry. VIP is
// an allocation flag, never a requested type.
var RequestableCategories = []Category{CategoryBike, CategoryCar, CategoryEV, CategoryHeavy}

// String returns a human-readable representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryBike:
		return "BIKE"
	case CategoryCar:
		return "CAR"
	case CategoryEV:
		return "EV"
	case CategoryHeavy:
		return "HEAVY"
	case CategoryVIP:
		return "VIP"
	default:
		return "unknown"
	}
}

// Prefix returns the single-letter slot-id prefix for the category.
func (c Category) Prefix() string {
	switch c {
	case CategoryBike:
		return "B"
	case CategoryCar:
		return "C"
	case CategoryEV:
		return "E"
	case CategoryHeavy:
		return "H"
	case CategoryVIP:
		return "V"
	default:
		return "?"
	}
}

// Requestable reports whether a vehicle may request this category on entry.
func (c Category) Requestable() bool {
	return c == CategoryBike || c == CategoryCar || c == CategoryEV || c == CategoryHeavy
}

// ParseCategory converts a textual category name as entered at the console.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "BIKE":
		return CategoryBike, nil
	case "CAR":
		return CategoryCar, nil
	case "EV":
		return CategoryEV, nil
	case "HEAVY":
		return CategoryHeavy, nil
	case "VIP":
		return CategoryVIP, nil
	default:
		return 0, fmt.Errorf("unknown category %q", s)
	}
}

// SlotID builds the structured slot identifier for the n-th slot of the
// category, e.g. "C-07". Numbering starts at 1.
func SlotID(c Category, n int) string {
	return fmt.Sprintf("%s-%02d", c.Prefix(), n)
}
