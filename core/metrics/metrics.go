package metrics

import (
	"time"

	"github.com/rav6044/smartpark/core/model"
)

// EntryRecord captures one completed slot assignment.
type EntryRecord struct {
	VehicleID    string
	Requested    model.Category
	SlotID       string
	SlotCategory model.Category
	VIP          bool
	Time         time.Time
}

// ExitRecord captures one completed visit, mirroring the ledger entry.
type ExitRecord struct {
	ReceiptID   string
	VehicleID   string
	Category    model.Category
	SlotID      string
	EntryTime   time.Time
	ExitTime    time.Time
	BilledHours int
	Fee         float64
}

// MetricsSink records entry and exit events for observability purposes.
type MetricsSink interface {
	RecordEntry(EntryRecord) error
	RecordExit(ExitRecord) error
}

// OccupancyRecorder is implemented by sinks that track per-category
// occupancy levels.
type OccupancyRecorder interface {
	RecordOccupancy(c model.Category, occupied, capacity int) error
}

// NopSink discards all records.
type NopSink struct{}

func (NopSink) RecordEntry(EntryRecord) error                  { return nil }
func (NopSink) RecordExit(ExitRecord) error                    { return nil }
func (NopSink) RecordOccupancy(model.Category, int, int) error { return nil }
