package parking

import "errors"

// Sentinel errors reported by the registry, allocator and manager. All are
// expected, recoverable outcomes surfaced to the caller for display.
var (
	ErrInvalidVehicleType = errors.New("invalid vehicle type")
	ErrDuplicateVehicle   = errors.New("vehicle already parked")
	ErrLotFull            = errors.New("no slot available")
	ErrVehicleNotFound    = errors.New("vehicle not found")

	// Registry invariants. These surface only on a core bug: the manager
	// never reserves an occupied slot or releases an empty one.
	ErrUnknownSlot     = errors.New("unknown slot")
	ErrAlreadyOccupied = errors.New("slot already occupied")
	ErrNotOccupied     = errors.New("slot not occupied")
)
