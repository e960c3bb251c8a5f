// Package events defines the lot events emitted on the event bus.
//
// Available event types:
//   - VehicleEntered: a vehicle was assigned a slot
//   - VehicleExited: a vehicle left and its visit was billed
//   - EntryRejected: an entry request was refused
//   - OccupancyChanged: per-category occupancy after a mutation
package events

import (
	"time"

	"github.com/rav6044/smartpark/core/model"
)

// Event is the marker type carried by the bus.
type Event interface{}

// VehicleEntered is published when a vehicle is assigned a slot.
type VehicleEntered struct {
	VehicleID    string
	Requested    model.Category
	SlotID       string
	SlotCategory model.Category
	VIP          bool
	Time         time.Time
}

// VehicleExited is published when a visit completes.
type VehicleExited struct {
	ReceiptID   string
	VehicleID   string
	Category    model.Category
	SlotID      string
	BilledHours int
	Fee         float64
	Time        time.Time
}

// EntryRejected is published when an entry request is refused.
// Err is one of the parking sentinel errors.
type EntryRejected struct {
	VehicleID string
	Requested model.Category
	Err       error
}

// OccupancyChanged carries per-category occupancy counts after every
// registry mutation.
type OccupancyChanged struct {
	Counts map[model.Category]model.Occupancy
}
