package schedule

import (
	"fmt"

	"gymdesk/models"
)

// AssignResult is the outcome of putting one client into one slot.
type AssignResult int

const (
	Assigned AssignResult = iota
	AlreadyAssigned
	CapacityExceeded
)

func (r AssignResult) String() string {
	switch r {
	case Assigned:
		return "assigned"
	case AlreadyAssigned:
		return "already_assigned"
	case CapacityExceeded:
		return "capacity_exceeded"
	}
	return "unknown"
}

func (r AssignResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *AssignResult) UnmarshalText(text []byte) error {
	switch string(text) {
	case "assigned":
		*r = Assigned
	case "already_assigned":
		*r = AlreadyAssigned
	case "capacity_exceeded":
		*r = CapacityExceeded
	default:
		return fmt.Errorf("unknown assign result %q", text)
	}
	return nil
}

// Assign appends clientID to the slot unless it is already there or the slot is full.
// The membership check comes first so a repeated assign on a full slot stays idempotent.
// Callers sharing the slot must hold the Store lock.
func Assign(slot *models.Slot, clientID string) AssignResult {
	if indexOf(slot.AssignedClientIDs, clientID) >= 0 {
		return AlreadyAssigned
	}
	if slot.Full() {
		return CapacityExceeded
	}
	slot.AssignedClientIDs = append(slot.AssignedClientIDs, clientID)
	return Assigned
}

// Unassign removes clientID from this slot only, keeping the order of the rest.
// It reports whether the client was present.
func Unassign(slot *models.Slot, clientID string) bool {
	i := indexOf(slot.AssignedClientIDs, clientID)
	if i < 0 {
		return false
	}
	ids := make([]string, 0, len(slot.AssignedClientIDs)-1)
	ids = append(ids, slot.AssignedClientIDs[:i]...)
	ids = append(ids, slot.AssignedClientIDs[i+1:]...)
	slot.AssignedClientIDs = ids
	return true
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
