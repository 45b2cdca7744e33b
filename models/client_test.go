package models

import (
	"encoding/json"
	"testing"
)

func TestClientRecordAcceptsEitherIDKey(t *testing.T) {
	cases := []struct {
		body string
		want FlexString
	}{
		{`{"id":"c1","name":"Ana"}`, "c1"},
		{`{"_id":7,"name":"Ana"}`, "7"},
		{`{"id":"c1","_id":"mongo","name":"Ana"}`, "c1"},
		{`{"name":"Ana"}`, ""},
	}
	for _, tc := range cases {
		var rec ClientRecord
		if err := json.Unmarshal([]byte(tc.body), &rec); err != nil {
			t.Fatalf("Unmarshal %s: %v", tc.body, err)
		}
		if rec.ID != tc.want {
			t.Errorf("Expected id %q from %s, got %q", tc.want, tc.body, rec.ID)
		}
		if rec.Name != "Ana" {
			t.Errorf("Expected name Ana from %s, got %q", tc.body, rec.Name)
		}
	}
}

func TestClientRecordListDecodesBackendIDs(t *testing.T) {
	var recs []ClientRecord
	body := `[{"_id":"a","name":"Ana","email":"ana@example.com"},{"id":2,"name":"Bruno"}]`
	if err := json.Unmarshal([]byte(body), &recs); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != "a" || recs[1].ID != "2" {
		t.Errorf("Unexpected records %+v", recs)
	}
	if recs[0].Email != "ana@example.com" {
		t.Errorf("Expected email kept, got %q", recs[0].Email)
	}
}
