package schedule

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"gymdesk/models"
)

func ids(slots []models.Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.ID
	}
	return out
}

func TestBuildOrdersMondayByStartTime(t *testing.T) {
	raw := `[
		{"id":1,"day":"lunes","startTime":"9","endTime":"10","maxCount":2,"clients":[]},
		{"id":2,"day":"lunes","startTime":"8","endTime":"9","maxCount":1,"clients":["u1"]}
	]`
	var records []models.SlotRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	w := BuildFromRecords(records)
	if len(w.Days) != len(models.ScheduleDays) {
		t.Fatalf("Expected %d day groups, got %d", len(models.ScheduleDays), len(w.Days))
	}
	monday := w.Days[0]
	if monday.Day != models.Monday {
		t.Fatalf("Expected first group to be Monday, got %s", monday.Day)
	}
	if got := ids(monday.Slots); !reflect.DeepEqual(got, []string{"2", "1"}) {
		t.Errorf("Expected [2 1], got %v", got)
	}
	if monday.Slots[0].Capacity != 1 || !reflect.DeepEqual(monday.Slots[0].AssignedClientIDs, []string{"u1"}) {
		t.Errorf("Expected slot 2 to carry capacity 1 and [u1], got %+v", monday.Slots[0])
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	flat := []models.Slot{
		{ID: "a", Day: models.Friday, StartTime: "18", Capacity: 5},
		{ID: "b", Day: models.Monday, StartTime: "20", Capacity: 5},
		{ID: "c", Day: models.Monday, StartTime: "7", Capacity: 5},
		{ID: "d", Day: models.Monday, StartTime: "7", Capacity: 5},
		{ID: "e", Day: models.Saturday, StartTime: "10", Capacity: 5},
		{ID: "f", Day: models.Monday, StartTime: "late", Capacity: 5},
	}
	reversed := make([]models.Slot, len(flat))
	for i := range flat {
		reversed[len(flat)-1-i] = flat[i]
	}

	first := Build(flat)
	second := Build(reversed)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Expected identical schedules, got\n%+v\n%+v", first, second)
	}
	if got := ids(first.Days[0].Slots); !reflect.DeepEqual(got, []string{"c", "d", "b", "f"}) {
		t.Errorf("Expected Monday [c d b f], got %v", got)
	}
	for i, day := range models.ScheduleDays {
		if first.Days[i].Day != day {
			t.Errorf("Expected group %d to be %s, got %s", i, day, first.Days[i].Day)
		}
	}
}

func TestBuildSortsNumericallyNotLexically(t *testing.T) {
	w := Build([]models.Slot{
		{ID: "x", Day: models.Tuesday, StartTime: "10"},
		{ID: "y", Day: models.Tuesday, StartTime: "9"},
	})
	if got := ids(w.Days[1].Slots); !reflect.DeepEqual(got, []string{"y", "x"}) {
		t.Errorf("Expected [y x], got %v", got)
	}
}

func TestBuildKeepsSundayAsUnplaced(t *testing.T) {
	w := BuildFromRecords([]models.SlotRecord{
		{ID: "1", Day: "domingo", StartTime: "9", MaxCount: 3},
		{ID: "2", Day: "Lunes", StartTime: "9", MaxCount: 3},
	})
	if w.SlotCount() != 1 {
		t.Errorf("Expected 1 placed slot, got %d", w.SlotCount())
	}
	if len(w.Unplaced) != 1 || w.Unplaced[0].Day != models.Sunday {
		t.Errorf("Expected the Sunday slot in Unplaced, got %+v", w.Unplaced)
	}
}

func TestBuildDropsDuplicateClientIDs(t *testing.T) {
	w := BuildFromRecords([]models.SlotRecord{
		{ID: "1", Day: "martes", StartTime: "9", MaxCount: 3, Clients: []models.ClientRef{"a", "b", "a"}},
	})
	if got := w.Days[1].Slots[0].AssignedClientIDs; !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Expected [a b], got %v", got)
	}
}

func TestEditSlotResortsWithinDay(t *testing.T) {
	w := Build([]models.Slot{
		{ID: "1", Day: models.Monday, StartTime: "8", EndTime: "9", Capacity: 2, AssignedClientIDs: []string{"u1"}},
		{ID: "2", Day: models.Monday, StartTime: "9", EndTime: "10", Capacity: 2},
	})
	start, end, capacity := "11", "12", 4
	if err := EditSlot(&w, "1", models.SlotPatch{StartTime: &start, EndTime: &end, Capacity: &capacity}); err != nil {
		t.Fatalf("EditSlot: %v", err)
	}
	monday := w.Days[0].Slots
	if got := ids(monday); !reflect.DeepEqual(got, []string{"2", "1"}) {
		t.Fatalf("Expected [2 1], got %v", got)
	}
	edited := monday[1]
	if edited.StartTime != "11" || edited.EndTime != "12" || edited.Capacity != 4 {
		t.Errorf("Expected patched fields, got %+v", edited)
	}
	if !reflect.DeepEqual(edited.AssignedClientIDs, []string{"u1"}) {
		t.Errorf("Expected assigned clients untouched, got %v", edited.AssignedClientIDs)
	}
}

func TestEditSlotResortsUnplaced(t *testing.T) {
	w := Build([]models.Slot{
		{ID: "s1", Day: models.Sunday, StartTime: "9", EndTime: "10", Capacity: 2},
		{ID: "s2", Day: models.Sunday, StartTime: "10", EndTime: "11", Capacity: 2},
	})
	if got := ids(w.Unplaced); !reflect.DeepEqual(got, []string{"s1", "s2"}) {
		t.Fatalf("Expected [s1 s2], got %v", got)
	}
	start := "12"
	if err := EditSlot(&w, "s1", models.SlotPatch{StartTime: &start}); err != nil {
		t.Fatalf("EditSlot: %v", err)
	}
	if got := ids(w.Unplaced); !reflect.DeepEqual(got, []string{"s2", "s1"}) {
		t.Errorf("Expected [s2 s1], got %v", got)
	}
	if w.Unplaced[1].StartTime != "12" {
		t.Errorf("Expected patched start time, got %+v", w.Unplaced[1])
	}
}

func TestEditSlotErrors(t *testing.T) {
	w := Build([]models.Slot{
		{ID: "1", Day: models.Monday, StartTime: "8", Capacity: 2, AssignedClientIDs: []string{"a", "b"}},
	})
	one, zero := 1, 0

	if err := EditSlot(&w, "missing", models.SlotPatch{Capacity: &one}); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("Expected ErrSlotNotFound, got %v", err)
	}
	if err := EditSlot(&w, "1", models.SlotPatch{}); !errors.Is(err, ErrInvalidPatch) {
		t.Errorf("Expected ErrInvalidPatch for empty patch, got %v", err)
	}
	if err := EditSlot(&w, "1", models.SlotPatch{Capacity: &zero}); !errors.Is(err, ErrInvalidPatch) {
		t.Errorf("Expected ErrInvalidPatch for zero capacity, got %v", err)
	}
	if err := EditSlot(&w, "1", models.SlotPatch{Capacity: &one}); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("Expected ErrCapacityExceeded, got %v", err)
	}
	if w.Days[0].Slots[0].Capacity != 2 {
		t.Errorf("Expected capacity unchanged after rejected edit, got %d", w.Days[0].Slots[0].Capacity)
	}
}

func TestDeleteSlot(t *testing.T) {
	w := Build([]models.Slot{
		{ID: "1", Day: models.Wednesday, StartTime: "8"},
		{ID: "2", Day: models.Wednesday, StartTime: "9"},
	})
	if err := DeleteSlot(&w, "1"); err != nil {
		t.Fatalf("DeleteSlot: %v", err)
	}
	if got := ids(w.Days[2].Slots); !reflect.DeepEqual(got, []string{"2"}) {
		t.Errorf("Expected [2], got %v", got)
	}
	if err := DeleteSlot(&w, "1"); !errors.Is(err, ErrSlotNotFound) {
		t.Errorf("Expected ErrSlotNotFound on second delete, got %v", err)
	}
}
