package parking

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/rav6044/smartpark/core/model"
)

// RegistryConfig controls how the slot set is built.
type RegistryConfig struct {
	// Capacities maps each category to its fixed slot count.
	Capacities map[model.Category]int
	// Shuffle randomizes the iteration order used by first-empty scans.
	// Slot ids and categories stay deterministic either way.
	Shuffle bool
	// Seed drives the shuffle. Zero means a time-based seed.
	Seed int64
}

// Registry holds the fixed slot set for one lot. Slots are created once and
// never added or removed; only their occupancy mutates. The registry itself
// is not goroutine safe: the manager serializes access.
type Registry struct {
	slots []*model.Slot // stored iteration order, possibly shuffled
	index map[string]int
}

// NewRegistry builds the full slot set. The VIP pool is created first, then
// the standard categories in a fixed order, so ids are stable for a given
// capacity configuration.
func NewRegistry(cfg RegistryConfig) (*Registry, error) {
	r := &Registry{index: make(map[string]int)}
	for _, c := range model.Categories {
		n := cfg.Capacities[c]
		if n < 0 {
			return nil, fmt.Errorf("negative capacity %d for %s", n, c)
		}
		for i := 1; i <= n; i++ {
			r.slots = append(r.slots, &model.Slot{ID: model.SlotID(c, i), Category: c})
		}
	}
	if len(r.slots) == 0 {
		return nil, fmt.Errorf("lot has no slots")
	}
	if cfg.Shuffle {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed))
		rng.Shuffle(len(r.slots), func(i, j int) {
			r.slots[i], r.slots[j] = r.slots[j], r.slots[i]
		})
	}
	for i, s := range r.slots {
		r.index[s.ID] = i
	}
	return r, nil
}

// Len returns the total slot count.
func (r *Registry) Len() int { return len(r.slots) }

// FindByVehicle returns the slot currently holding the vehicle, if any.
// Vehicle ids are expected to be normalized by the caller.
func (r *Registry) FindByVehicle(vehicleID string) (*model.Slot, bool) {
	for _, s := range r.slots {
		if s.Reservation != nil && s.Reservation.VehicleID == vehicleID {
			return s, true
		}
	}
	return nil, false
}

// Reserve stores the reservation on the slot.
func (r *Registry) Reserve(slotID string, res model.Reservation) error {
	i, ok := r.index[slotID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSlot, slotID)
	}
	if r.slots[i].Reservation != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyOccupied, slotID)
	}
	r.slots[i].Reservation = &res
	return nil
}

// Release clears the slot and returns the prior reservation.
func (r *Registry) Release(slotID string) (model.Reservation, error) {
	i, ok := r.index[slotID]
	if !ok {
		return model.Reservation{}, fmt.Errorf("%w: %s", ErrUnknownSlot, slotID)
	}
	s := r.slots[i]
	if s.Reservation == nil {
		return model.Reservation{}, fmt.Errorf("%w: %s", ErrNotOccupied, slotID)
	}
	res := *s.Reservation
	s.Reservation = nil
	return res, nil
}

// Snapshot returns a copy of every slot sorted by id for stable display.
func (r *Registry) Snapshot() []model.SlotView {
	views := make([]model.SlotView, 0, len(r.slots))
	for _, s := range r.slots {
		v := model.SlotView{ID: s.ID, Category: s.Category}
		if s.Reservation != nil {
			res := *s.Reservation
			v.Reservation = &res
		}
		views = append(views, v)
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views
}

// Occupancy returns occupied/capacity counts per category.
func (r *Registry) Occupancy() map[model.Category]model.Occupancy {
	counts := make(map[model.Category]model.Occupancy)
	for _, s := range r.slots {
		c := counts[s.Category]
		c.Capacity++
		if s.Reservation != nil {
			c.Occupied++
		}
		counts[s.Category] = c
	}
	return counts
}

// firstEmpty returns the first empty slot belonging to any of the given
// categories, in stored iteration order.
func (r *Registry) firstEmpty(cats ...model.Category) (string, bool) {
	for _, s := range r.slots {
		if s.Reservation != nil {
			continue
		}
		for _, c := range cats {
			if s.Category == c {
				return s.ID, true
			}
		}
	}
	return "", false
}
