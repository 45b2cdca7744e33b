package clientRepo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSearchFilterEmptyMatchesAll(t *testing.T) {
	if f := searchFilter("   "); len(f) != 0 {
		t.Errorf("Expected empty filter, got %v", f)
	}
}

func TestSearchFilterEscapesAndIgnoresCase(t *testing.T) {
	f := searchFilter(" a.b ")
	or := f["$or"].(bson.A)
	if len(or) != 4 {
		t.Fatalf("Expected 4 alternatives, got %d", len(or))
	}
	re := or[2].(bson.M)["email"].(primitive.Regex)
	if re.Pattern != `a\.b` || re.Options != "i" {
		t.Errorf("Expected escaped case-insensitive pattern, got %+v", re)
	}
}
