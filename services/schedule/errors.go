package schedule

import (
	"errors"
	"fmt"
)

var (
	// ErrSlotNotFound is returned when no slot with the given id is held locally.
	ErrSlotNotFound = errors.New("slot not found")
	// ErrCapacityExceeded is returned when an operation would put more clients in a slot than it holds.
	ErrCapacityExceeded = errors.New("slot capacity exceeded")
	// ErrInvalidPatch is returned for patches that carry nothing or an unusable value.
	ErrInvalidPatch = errors.New("invalid slot patch")
)

func slotNotFound(id string) error {
	return fmt.Errorf("%w: %s", ErrSlotNotFound, id)
}
