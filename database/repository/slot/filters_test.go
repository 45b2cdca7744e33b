package slotRepo

import (
	"reflect"
	"testing"

	"gymdesk/models"

	"go.mongodb.org/mongo-driver/bson"
)

func TestAssignFilterBoundsUnionByMaxCount(t *testing.T) {
	f := assignFilter("s1", []string{"a", "b"})
	if f["id"] != "s1" {
		t.Errorf("Expected id filter s1, got %v", f["id"])
	}
	lte := f["$expr"].(bson.M)["$lte"].(bson.A)
	if lte[1] != "$maxCount" {
		t.Errorf("Expected bound $maxCount, got %v", lte[1])
	}
	union := lte[0].(bson.M)["$size"].(bson.M)["$setUnion"].(bson.A)
	if !reflect.DeepEqual(union[1], []string{"a", "b"}) {
		t.Errorf("Expected new ids in the union, got %v", union[1])
	}
}

func TestUpdateFilterGuardsCapacityOnly(t *testing.T) {
	start := "10"
	if f := updateFilter("s1", models.SlotPatch{StartTime: &start}); len(f) != 1 {
		t.Errorf("Expected id-only filter without capacity, got %v", f)
	}
	capacity := 3
	f := updateFilter("s1", models.SlotPatch{Capacity: &capacity})
	lte := f["$expr"].(bson.M)["$lte"].(bson.A)
	if lte[1] != 3 {
		t.Errorf("Expected capacity bound 3, got %v", lte[1])
	}
}

func TestPatchFields(t *testing.T) {
	start, end, capacity := "9", "10", 12
	got := patchFields(models.SlotPatch{StartTime: &start, EndTime: &end, Capacity: &capacity})
	want := bson.M{"startTime": "9", "endTime": "10", "maxCount": 12}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if got := patchFields(models.SlotPatch{}); len(got) != 0 {
		t.Errorf("Expected no fields, got %v", got)
	}
}
