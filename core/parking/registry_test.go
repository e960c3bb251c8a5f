package parking

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rav6044/smartpark/core/model"
)

func testCapacities() map[model.Category]int {
	return map[model.Category]int{
		model.CategoryBike:  2,
		model.CategoryCar:   3,
		model.CategoryEV:    1,
		model.CategoryHeavy: 1,
		model.CategoryVIP:   2,
	}
}

func TestNewRegistryBuildsFullSlotSet(t *testing.T) {
	reg, err := NewRegistry(RegistryConfig{Capacities: testCapacities()})
	require.NoError(t, err)
	assert.Equal(t, 9, reg.Len())

	views := reg.Snapshot()
	ids := make([]string, len(views))
	for i, v := range views {
		ids[i] = v.ID
	}
	assert.True(t, sort.StringsAreSorted(ids), "snapshot must be sorted by id")
	assert.Contains(t, ids, "B-01")
	assert.Contains(t, ids, "C-03")
	assert.Contains(t, ids, "E-01")
	assert.Contains(t, ids, "H-01")
	assert.Contains(t, ids, "V-02")
}

func TestNewRegistryShuffleIsDeterministicForSeed(t *testing.T) {
	cfg := RegistryConfig{Capacities: testCapacities(), Shuffle: true, Seed: 42}
	a, err := NewRegistry(cfg)
	require.NoError(t, err)
	b, err := NewRegistry(cfg)
	require.NoError(t, err)
	for i := range a.slots {
		assert.Equal(t, a.slots[i].ID, b.slots[i].ID, "position %d", i)
	}
}

func TestNewRegistryRejectsBadConfig(t *testing.T) {
	_, err := NewRegistry(RegistryConfig{Capacities: map[model.Category]int{model.CategoryCar: -1}})
	assert.Error(t, err)
	_, err = NewRegistry(RegistryConfig{Capacities: map[model.Category]int{}})
	assert.Error(t, err)
}

func TestReserveAndRelease(t *testing.T) {
	reg, err := NewRegistry(RegistryConfig{Capacities: testCapacities()})
	require.NoError(t, err)

	res := model.Reservation{VehicleID: "AB123", Requested: model.CategoryCar, EntryTime: time.Now()}
	require.NoError(t, reg.Reserve("C-01", res))

	err = reg.Reserve("C-01", model.Reservation{VehicleID: "XY999"})
	assert.True(t, errors.Is(err, ErrAlreadyOccupied))

	slot, ok := reg.FindByVehicle("AB123")
	require.True(t, ok)
	assert.Equal(t, "C-01", slot.ID)
	assert.Equal(t, model.CategoryCar, slot.Category)

	got, err := reg.Release("C-01")
	require.NoError(t, err)
	assert.Equal(t, "AB123", got.VehicleID)

	_, err = reg.Release("C-01")
	assert.True(t, errors.Is(err, ErrNotOccupied))

	_, ok = reg.FindByVehicle("AB123")
	assert.False(t, ok)
}

func TestReserveUnknownSlot(t *testing.T) {
	reg, err := NewRegistry(RegistryConfig{Capacities: testCapacities()})
	require.NoError(t, err)
	err = reg.Reserve("Z-99", model.Reservation{VehicleID: "AB123"})
	assert.True(t, errors.Is(err, ErrUnknownSlot))
	_, err = reg.Release("Z-99")
	assert.True(t, errors.Is(err, ErrUnknownSlot))
}

func TestSnapshotCopiesReservations(t *testing.T) {
	reg, err := NewRegistry(RegistryConfig{Capacities: testCapacities()})
	require.NoError(t, err)
	require.NoError(t, reg.Reserve("B-01", model.Reservation{VehicleID: "BIKE1"}))

	views := reg.Snapshot()
	for _, v := range views {
		if v.ID == "B-01" {
			v.Reservation.VehicleID = "MUTATED"
		}
	}
	slot, ok := reg.FindByVehicle("BIKE1")
	require.True(t, ok)
	assert.Equal(t, "BIKE1", slot.Reservation.VehicleID)
}

func TestOccupancy(t *testing.T) {
	reg, err := NewRegistry(RegistryConfig{Capacities: testCapacities()})
	require.NoError(t, err)
	require.NoError(t, reg.Reserve("C-01", model.Reservation{VehicleID: "A"}))
	require.NoError(t, reg.Reserve("C-02", model.Reservation{VehicleID: "B"}))

	counts := reg.Occupancy()
	assert.Equal(t, model.Occupancy{Occupied: 2, Capacity: 3}, counts[model.CategoryCar])
	assert.Equal(t, model.Occupancy{Occupied: 0, Capacity: 2}, counts[model.CategoryVIP])
}
