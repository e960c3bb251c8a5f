package ledger

import (
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/rav6044/smartpark/core/model"
)

// Entry is the immutable record of one completed visit. Entries are only
// ever appended and read back for aggregation.
type Entry struct {
	ReceiptID   string
	VehicleID   string
	Category    model.Category
	SlotID      string
	EntryTime   time.Time
	ExitTime    time.Time
	BilledHours int
	Fee         float64
}

// NewEntry builds an entry with a fresh receipt id.
func NewEntry(vehicleID string, c model.Category, slotID string, entry, exit time.Time, billedHours int, fee float64) Entry {
	return Entry{
		ReceiptID:   uuid.NewString(),
		VehicleID:   vehicleID,
		Category:    c,
		SlotID:      slotID,
		EntryTime:   entry,
		ExitTime:    exit,
		BilledHours: billedHours,
		Fee:         fee,
	}
}

// Ledger is the append-only sequence of completed visits for one session.
// Not goroutine safe; the manager serializes access.
type Ledger struct {
	entries []Entry
}

// New returns an empty ledger.
func New() *Ledger { return &Ledger{} }

// Append adds the entry to the sequence.
func (l *Ledger) Append(e Entry) {
	l.entries = append(l.entries, e)
}

// Len returns the number of recorded visits.
func (l *Ledger) Len() int { return len(l.entries) }

// Entries returns a copy of the sequence in append order.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Aggregate summarizes the full sequence for reporting.
type Aggregate struct {
	Count            int
	TotalFee         float64
	AvgDurationHours float64
}

// Aggregate computes count, revenue total and mean billed duration. An
// empty ledger yields the zero aggregate.
func (l *Ledger) Aggregate() Aggregate {
	if len(l.entries) == 0 {
		return Aggregate{}
	}
	durations := make([]float64, len(l.entries))
	var total float64
	for i, e := range l.entries {
		durations[i] = float64(e.BilledHours)
		total += e.Fee
	}
	return Aggregate{
		Count:            len(l.entries),
		TotalFee:         total,
		AvgDurationHours: stat.Mean(durations, nil),
	}
}
