package parking

import (
	"fmt"

	"github.com/rav6044/smartpark/core/model"
)

// Allocator selects a slot for an entering vehicle.
type Allocator interface {
	Allocate(reg *Registry, requested model.Category, vip bool) (string, error)
}

// PriorityAllocator implements the lot's placement policy. Rules run in
// strict order, first match wins:
//
//  1. VIP-flagged vehicles claim the first empty VIP slot.
//  2. First empty slot of the requested category.
//  3. CAR and EV spill over into the CAR and VIP pools.
//  4. ErrLotFull.
//
// Rule 1 always runs before rule 3, so a VIP request never loses its pool
// to waiting CAR/EV spillover. BIKE and HEAVY never spill: their pools are
// strict.
type PriorityAllocator struct{}

func (PriorityAllocator) Allocate(reg *Registry, requested model.Category, vip bool) (string, error) {
	if !requested.Requestable() {
		return "", fmt.Errorf("%w: %s", ErrInvalidVehicleType, requested)
	}
	if vip {
		if id, ok := reg.firstEmpty(model.CategoryVIP); ok {
			return id, nil
		}
	}
	if id, ok := reg.firstEmpty(requested); ok {
		return id, nil
	}
	if requested == model.CategoryCar || requested == model.CategoryEV {
		if id, ok := reg.firstEmpty(model.CategoryCar, model.CategoryVIP); ok {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w for %s", ErrLotFull, requested)
}
