package schedule

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"gymdesk/models"
)

func newTestStore() *Store {
	s := NewStore()
	s.Replace(Build([]models.Slot{
		{ID: "s1", Day: models.Monday, StartTime: "8", Capacity: 2, AssignedClientIDs: []string{"c"}},
		{ID: "s2", Day: models.Thursday, StartTime: "18", Capacity: 2, AssignedClientIDs: []string{"c", "d"}},
	}))
	return s
}

func TestStoreUnassignIsScopedToOneSlot(t *testing.T) {
	s := newTestStore()

	removed, err := s.Unassign("s1", "c")
	if err != nil || !removed {
		t.Fatalf("Expected c removed from s1, got removed=%v err=%v", removed, err)
	}
	s1, _ := s.Slot("s1")
	s2, _ := s.Slot("s2")
	if len(s1.AssignedClientIDs) != 0 {
		t.Errorf("Expected s1 empty, got %v", s1.AssignedClientIDs)
	}
	if !reflect.DeepEqual(s2.AssignedClientIDs, []string{"c", "d"}) {
		t.Errorf("Expected s2 unchanged [c d], got %v", s2.AssignedClientIDs)
	}
	if !s.IsAssignedAnywhere("c") {
		t.Errorf("Expected c still assigned through s2")
	}
}

func TestStoreAssignReportsPerClient(t *testing.T) {
	s := newTestStore()

	results, err := s.Assign("s1", "c", "e", "f")
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	want := map[string]AssignResult{"c": AlreadyAssigned, "e": Assigned, "f": CapacityExceeded}
	if !reflect.DeepEqual(results, want) {
		t.Errorf("Expected %v, got %v", want, results)
	}
	if _, err := s.Assign("nope", "x"); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("Expected ErrSlotNotFound, got %v", err)
	}
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	s := newTestStore()
	snap, rev := s.Snapshot()
	snap.Days[0].Slots[0].AssignedClientIDs[0] = "mutated"

	slot, _ := s.Slot("s1")
	if slot.AssignedClientIDs[0] != "c" {
		t.Errorf("Expected store unaffected by snapshot mutation, got %v", slot.AssignedClientIDs)
	}
	if s.Revision() != rev {
		t.Errorf("Expected revision %d, got %d", rev, s.Revision())
	}
}

func TestStoreConcurrentAssignHonoursCapacity(t *testing.T) {
	s := NewStore()
	s.Replace(Build([]models.Slot{{ID: "s1", Day: models.Monday, StartTime: "8", Capacity: 5}}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Assign("s1", string(rune('a'+n%26))+string(rune('A'+n/26)))
		}(i)
	}
	wg.Wait()

	slot, _ := s.Slot("s1")
	if len(slot.AssignedClientIDs) != 5 {
		t.Errorf("Expected slot filled to capacity 5, got %d", len(slot.AssignedClientIDs))
	}
}

func TestStoreAssignedClientIDs(t *testing.T) {
	s := newTestStore()
	if got := s.AssignedClientIDs(); !reflect.DeepEqual(got, []string{"c", "d"}) {
		t.Errorf("Expected [c d], got %v", got)
	}
}

func TestStoreEditAndDelete(t *testing.T) {
	s := newTestStore()
	start := "6"
	slot, err := s.EditSlot("s2", models.SlotPatch{StartTime: &start})
	if err != nil {
		t.Fatalf("EditSlot: %v", err)
	}
	if slot.StartTime != "6" || slot.Day != models.Thursday {
		t.Errorf("Expected start 6 on Thursday, got %+v", slot)
	}
	if err := s.DeleteSlot("s2"); err != nil {
		t.Fatalf("DeleteSlot: %v", err)
	}
	if _, err := s.Slot("s2"); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("Expected ErrSlotNotFound after delete, got %v", err)
	}
}
