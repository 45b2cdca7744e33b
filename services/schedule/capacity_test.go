package schedule

import (
	"reflect"
	"testing"

	"gymdesk/models"
)

func TestAssignCapacityOne(t *testing.T) {
	slot := &models.Slot{ID: "s1", Day: models.Monday, Capacity: 1, AssignedClientIDs: []string{}}

	if r := Assign(slot, "u1"); r != Assigned {
		t.Errorf("Expected Assigned, got %s", r)
	}
	if r := Assign(slot, "u2"); r != CapacityExceeded {
		t.Errorf("Expected CapacityExceeded, got %s", r)
	}
	if r := Assign(slot, "u1"); r != AlreadyAssigned {
		t.Errorf("Expected AlreadyAssigned, got %s", r)
	}
	if !reflect.DeepEqual(slot.AssignedClientIDs, []string{"u1"}) {
		t.Errorf("Expected [u1], got %v", slot.AssignedClientIDs)
	}
}

func TestAssignIdempotent(t *testing.T) {
	once := &models.Slot{ID: "s1", Capacity: 3}
	twice := &models.Slot{ID: "s1", Capacity: 3}

	Assign(once, "c")
	Assign(twice, "c")
	if r := Assign(twice, "c"); r != AlreadyAssigned {
		t.Errorf("Expected second assign to report AlreadyAssigned, got %s", r)
	}
	if !reflect.DeepEqual(once.AssignedClientIDs, twice.AssignedClientIDs) {
		t.Errorf("Expected %v, got %v", once.AssignedClientIDs, twice.AssignedClientIDs)
	}
}

func TestAssignNeverExceedsCapacity(t *testing.T) {
	slot := &models.Slot{ID: "s1", Capacity: 3}
	ops := []struct {
		assign bool
		id     string
	}{
		{true, "a"}, {true, "b"}, {true, "c"}, {true, "d"}, {false, "b"},
		{true, "d"}, {true, "e"}, {false, "x"}, {false, "a"}, {true, "a"}, {true, "f"},
	}
	for i, op := range ops {
		if op.assign {
			Assign(slot, op.id)
		} else {
			Unassign(slot, op.id)
		}
		if len(slot.AssignedClientIDs) > slot.Capacity {
			t.Fatalf("step %d: %d clients in a slot of capacity %d", i, len(slot.AssignedClientIDs), slot.Capacity)
		}
	}
	if !reflect.DeepEqual(slot.AssignedClientIDs, []string{"c", "d", "a"}) {
		t.Errorf("Expected [c d a], got %v", slot.AssignedClientIDs)
	}
}

func TestUnassignKeepsOrderAndReportsPresence(t *testing.T) {
	slot := &models.Slot{ID: "s1", Capacity: 5, AssignedClientIDs: []string{"a", "b", "c"}}

	if !Unassign(slot, "b") {
		t.Errorf("Expected b to be reported as removed")
	}
	if Unassign(slot, "b") {
		t.Errorf("Expected second removal of b to be a no-op")
	}
	if !reflect.DeepEqual(slot.AssignedClientIDs, []string{"a", "c"}) {
		t.Errorf("Expected [a c], got %v", slot.AssignedClientIDs)
	}
}

func TestUnassignDoesNotAliasPreviousSlice(t *testing.T) {
	ids := []string{"a", "b", "c"}
	slot := &models.Slot{ID: "s1", Capacity: 5, AssignedClientIDs: ids}
	Unassign(slot, "a")
	if !reflect.DeepEqual(ids, []string{"a", "b", "c"}) {
		t.Errorf("Expected original slice untouched, got %v", ids)
	}
}
