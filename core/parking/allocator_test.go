package parking

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rav6044/smartpark/core/model"
)

func allocate(t *testing.T, reg *Registry, c model.Category, vip bool) string {
	t.Helper()
	id, err := PriorityAllocator{}.Allocate(reg, c, vip)
	require.NoError(t, err)
	return id
}

func occupy(t *testing.T, reg *Registry, slotID, vehicleID string) {
	t.Helper()
	require.NoError(t, reg.Reserve(slotID, model.Reservation{VehicleID: vehicleID}))
}

func TestAllocateRejectsVIPAsRequestedType(t *testing.T) {
	reg, err := NewRegistry(RegistryConfig{Capacities: testCapacities()})
	require.NoError(t, err)
	_, err = PriorityAllocator{}.Allocate(reg, model.CategoryVIP, false)
	assert.True(t, errors.Is(err, ErrInvalidVehicleType))
}

func TestAllocateVIPFlagClaimsVIPPoolFirst(t *testing.T) {
	reg, err := NewRegistry(RegistryConfig{Capacities: testCapacities()})
	require.NoError(t, err)

	// CAR slots are all empty, yet a VIP-flagged CAR must land in the VIP
	// pool.
	id := allocate(t, reg, model.CategoryCar, true)
	assert.True(t, strings.HasPrefix(id, "V-"), "got %s", id)
}

func TestAllocateVIPFallsBackToRequestedPool(t *testing.T) {
	reg, err := NewRegistry(RegistryConfig{Capacities: testCapacities()})
	require.NoError(t, err)
	occupy(t, reg, "V-01", "X1")
	occupy(t, reg, "V-02", "X2")

	id := allocate(t, reg, model.CategoryBike, true)
	assert.True(t, strings.HasPrefix(id, "B-"), "got %s", id)
}

func TestAllocateSpilloverScenario(t *testing.T) {
	// Capacities {CAR:1, VIP:1}: first CAR fills the CAR slot, the second
	// spills into VIP, the third finds the lot full.
	reg, err := NewRegistry(RegistryConfig{Capacities: map[model.Category]int{
		model.CategoryCar: 1,
		model.CategoryVIP: 1,
	}})
	require.NoError(t, err)

	id := allocate(t, reg, model.CategoryCar, false)
	assert.Equal(t, "C-01", id)
	occupy(t, reg, id, "AB1")

	id = allocate(t, reg, model.CategoryCar, false)
	assert.Equal(t, "V-01", id)
	occupy(t, reg, id, "AB2")

	_, err = PriorityAllocator{}.Allocate(reg, model.CategoryCar, false)
	assert.True(t, errors.Is(err, ErrLotFull))
}

func TestAllocateEVSpillsIntoCarAndVIP(t *testing.T) {
	reg, err := NewRegistry(RegistryConfig{Capacities: testCapacities()})
	require.NoError(t, err)
	occupy(t, reg, "E-01", "EV1")

	id := allocate(t, reg, model.CategoryEV, false)
	prefixed := strings.HasPrefix(id, "C-") || strings.HasPrefix(id, "V-")
	assert.True(t, prefixed, "EV spillover must target CAR or VIP, got %s", id)
}

func TestAllocateBikeAndHeavyNeverSpill(t *testing.T) {
	reg, err := NewRegistry(RegistryConfig{Capacities: map[model.Category]int{
		model.CategoryBike:  1,
		model.CategoryHeavy: 1,
		model.CategoryCar:   5,
		model.CategoryVIP:   5,
	}})
	require.NoError(t, err)
	occupy(t, reg, "B-01", "B1")
	occupy(t, reg, "H-01", "H1")

	_, err = PriorityAllocator{}.Allocate(reg, model.CategoryBike, false)
	assert.True(t, errors.Is(err, ErrLotFull))
	_, err = PriorityAllocator{}.Allocate(reg, model.CategoryHeavy, false)
	assert.True(t, errors.Is(err, ErrLotFull))
}

func TestAllocateVIPPoolExhaustedNonVIPNeverEvicts(t *testing.T) {
	reg, err := NewRegistry(RegistryConfig{Capacities: map[model.Category]int{
		model.CategoryCar: 2,
		model.CategoryVIP: 1,
	}})
	require.NoError(t, err)
	occupy(t, reg, "V-01", "VIP1")

	// Standard CAR entries keep landing in the CAR pool.
	id := allocate(t, reg, model.CategoryCar, false)
	assert.True(t, strings.HasPrefix(id, "C-"), "got %s", id)
}
