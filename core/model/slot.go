package model

import (
	"strings"
	"time"
)

// Slot is a single parking space. Slots are created once at lot
// initialization and only their occupancy changes afterwards.
type Slot struct {
	ID          string
	Category    Category
	Reservation *Reservation // nil while the slot is empty
}

// Occupied reports whether the slot currently holds a vehicle.
func (s *Slot) Occupied() bool {
	return s.Reservation != nil
}

// Reservation records the vehicle occupying a slot. It exists only while the
// slot is occupied and is destroyed on exit.
type Reservation struct {
	VehicleID string
	// Requested is the category the vehicle asked for. Billing always uses
	// this, even when spillover placed the vehicle in a VIP slot.
	Requested Category
	VIP       bool
	EntryTime time.Time
}

// SlotView is a read-only snapshot of a slot used for display. The
// Reservation value is copied so callers cannot mutate registry state.
type SlotView struct {
	ID          string
	Category    Category
	Reservation *Reservation
}

// Occupancy counts occupied slots against capacity for one category.
type Occupancy struct {
	Occupied int
	Capacity int
}

// NormalizeVehicleID canonicalizes a vehicle identifier for case-insensitive
// matching.
func NormalizeVehicleID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
