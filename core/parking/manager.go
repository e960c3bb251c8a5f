package parking

import (
	"fmt"
	"sync"
	"time"

	"github.com/rav6044/smartpark/core/billing"
	"github.com/rav6044/smartpark/core/events"
	"github.com/rav6044/smartpark/core/ledger"
	"github.com/rav6044/smartpark/core/logger"
	"github.com/rav6044/smartpark/core/metrics"
	"github.com/rav6044/smartpark/core/model"
	"github.com/rav6044/smartpark/internal/eventbus"
)

// EntryTicket reports a successful vehicle entry.
type EntryTicket struct {
	SlotID       string
	SlotCategory model.Category
	EntryTime    time.Time
	VIP          bool
}

// Receipt reports a completed, billed visit.
type Receipt struct {
	ReceiptID   string
	VehicleID   string
	SlotID      string
	Category    model.Category
	EntryTime   time.Time
	ExitTime    time.Time
	BilledHours int
	Fee         float64
}

// RevenueReport bundles the aggregate with the full transaction list.
type RevenueReport struct {
	Aggregate ledger.Aggregate
	Entries   []ledger.Entry
}

// Manager ties the registry, allocator, billing table and ledger together
// and owns all lot state for one session. Operations either fully commit
// their state change or make none.
type Manager struct {
	mu        sync.Mutex
	registry  *Registry
	allocator Allocator
	pricing   billing.Table
	ledger    *ledger.Ledger
	log       logger.Logger
	sink      metrics.MetricsSink
	bus       *eventbus.Bus[events.Event]
	now       func() time.Time
}

// NewManager creates a manager. The sink and bus may be nil; a nil sink is
// replaced with a no-op one.
func NewManager(reg *Registry, alloc Allocator, pricing billing.Table, led *ledger.Ledger, log logger.Logger, sink metrics.MetricsSink, bus *eventbus.Bus[events.Event]) (*Manager, error) {
	if reg == nil || alloc == nil || led == nil || log == nil {
		return nil, fmt.Errorf("parking: nil parameter provided to NewManager")
	}
	if pricing == nil {
		pricing = billing.DefaultTable()
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Manager{
		registry:  reg,
		allocator: alloc,
		pricing:   pricing,
		ledger:    led,
		log:       log,
		sink:      sink,
		bus:       bus,
		now:       time.Now,
	}, nil
}

// SetClock overrides the time source. Used by tests and simulations.
func (m *Manager) SetClock(now func() time.Time) {
	if now == nil {
		return
	}
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

// VehicleEntry normalizes the vehicle id, allocates a slot under the
// priority policy and reserves it with the current time.
func (m *Manager) VehicleEntry(vehicleID string, requested model.Category, vip bool) (EntryTicket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := model.NormalizeVehicleID(vehicleID)
	if !requested.Requestable() {
		return EntryTicket{}, fmt.Errorf("%w: %s", ErrInvalidVehicleType, requested)
	}
	if slot, ok := m.registry.FindByVehicle(id); ok {
		m.log.Warnf("vehicle %s already parked in slot %s", id, slot.ID)
		return EntryTicket{}, fmt.Errorf("%w: %s in slot %s", ErrDuplicateVehicle, id, slot.ID)
	}

	slotID, err := m.allocator.Allocate(m.registry, requested, vip)
	if err != nil {
		m.log.Infof("entry rejected for %s (%s): %v", id, requested, err)
		m.publish(events.EntryRejected{VehicleID: id, Requested: requested, Err: err})
		return EntryTicket{}, err
	}

	entryTime := m.now()
	res := model.Reservation{VehicleID: id, Requested: requested, VIP: vip, EntryTime: entryTime}
	if err := m.registry.Reserve(slotID, res); err != nil {
		// Allocation just returned an empty slot, so this is a core bug.
		return EntryTicket{}, fmt.Errorf("reserve %s: %w", slotID, err)
	}
	slot, _ := m.registry.FindByVehicle(id)

	m.log.Infof("vehicle %s (%s) entered slot %s", id, requested, slotID)
	if err := m.sink.RecordEntry(metrics.EntryRecord{
		VehicleID:    id,
		Requested:    requested,
		SlotID:       slotID,
		SlotCategory: slot.Category,
		VIP:          vip,
		Time:         entryTime,
	}); err != nil {
		m.log.Errorf("record entry: %v", err)
	}
	m.publish(events.VehicleEntered{
		VehicleID:    id,
		Requested:    requested,
		SlotID:       slotID,
		SlotCategory: slot.Category,
		VIP:          vip,
		Time:         entryTime,
	})
	m.publishOccupancy()

	return EntryTicket{SlotID: slotID, SlotCategory: slot.Category, EntryTime: entryTime, VIP: vip}, nil
}

// VehicleExit bills the visit at the reservation's requested category,
// appends the ledger entry and frees the slot. A failed exit mutates
// nothing.
func (m *Manager) VehicleExit(vehicleID string) (Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := model.NormalizeVehicleID(vehicleID)
	slot, ok := m.registry.FindByVehicle(id)
	if !ok {
		return Receipt{}, fmt.Errorf("%w: %s", ErrVehicleNotFound, id)
	}
	res := *slot.Reservation

	exitTime := m.now()
	fee, hours, err := billing.CalculateFee(res.EntryTime, exitTime, res.Requested, m.pricing)
	if err != nil {
		return Receipt{}, fmt.Errorf("bill %s: %w", id, err)
	}

	entry := ledger.NewEntry(id, res.Requested, slot.ID, res.EntryTime, exitTime, hours, fee)
	m.ledger.Append(entry)
	if _, err := m.registry.Release(slot.ID); err != nil {
		return Receipt{}, fmt.Errorf("release %s: %w", slot.ID, err)
	}

	m.log.Infof("vehicle %s exited slot %s after %dh, fee %.2f", id, slot.ID, hours, fee)
	if err := m.sink.RecordExit(metrics.ExitRecord{
		ReceiptID:   entry.ReceiptID,
		VehicleID:   id,
		Category:    res.Requested,
		SlotID:      slot.ID,
		EntryTime:   res.EntryTime,
		ExitTime:    exitTime,
		BilledHours: hours,
		Fee:         fee,
	}); err != nil {
		m.log.Errorf("record exit: %v", err)
	}
	m.publish(events.VehicleExited{
		ReceiptID:   entry.ReceiptID,
		VehicleID:   id,
		Category:    res.Requested,
		SlotID:      slot.ID,
		BilledHours: hours,
		Fee:         fee,
		Time:        exitTime,
	})
	m.publishOccupancy()

	return Receipt{
		ReceiptID:   entry.ReceiptID,
		VehicleID:   id,
		SlotID:      slot.ID,
		Category:    res.Requested,
		EntryTime:   res.EntryTime,
		ExitTime:    exitTime,
		BilledHours: hours,
		Fee:         fee,
	}, nil
}

// Snapshot returns the slot set sorted by id.
func (m *Manager) Snapshot() []model.SlotView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registry.Snapshot()
}

// Occupancy returns occupied/capacity counts per category.
func (m *Manager) Occupancy() map[model.Category]model.Occupancy {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registry.Occupancy()
}

// RevenueReport returns the aggregate and the full transaction list.
func (m *Manager) RevenueReport() RevenueReport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return RevenueReport{Aggregate: m.ledger.Aggregate(), Entries: m.ledger.Entries()}
}

// Close releases resources held by the manager.
func (m *Manager) Close() error {
	if m.bus != nil {
		m.bus.Close()
	}
	return nil
}

func (m *Manager) publish(e events.Event) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}

func (m *Manager) publishOccupancy() {
	if m.bus != nil {
		m.bus.Publish(events.OccupancyChanged{Counts: m.registry.Occupancy()})
	}
}
