package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestBeginCancelsPreviousCallOnSameLane(t *testing.T) {
	s := newLaneSet()
	first := s.begin(context.Background(), ActionEditSlot)
	second := s.begin(context.Background(), ActionEditSlot)

	if !errors.Is(first.ctx.Err(), context.Canceled) {
		t.Errorf("Expected first call cancelled, got %v", first.ctx.Err())
	}
	if second.ctx.Err() != nil {
		t.Errorf("Expected second call live, got %v", second.ctx.Err())
	}
	if s.current(first) || !s.current(second) {
		t.Errorf("Expected only the newest call to be current")
	}
}

func TestLanesAreIndependent(t *testing.T) {
	s := newLaneSet()
	edit := s.begin(context.Background(), ActionEditSlot)
	s.begin(context.Background(), ActionDeleteSlot)

	if edit.ctx.Err() != nil {
		t.Errorf("Expected edit untouched by delete, got %v", edit.ctx.Err())
	}
}

func TestCommitSkipsSupersededCall(t *testing.T) {
	s := newLaneSet()
	old := s.begin(context.Background(), ActionAssignClient)
	s.begin(context.Background(), ActionAssignClient)

	applied := false
	if s.commit(old, func() { applied = true }) || applied {
		t.Errorf("Expected superseded commit to be skipped")
	}
}

func TestFinishRecordsOutcome(t *testing.T) {
	s := newLaneSet()
	clock := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	tk := s.begin(context.Background(), ActionLoadSchedule)
	if st := s.status(ActionLoadSchedule); st.State != StatePending {
		t.Errorf("Expected pending, got %s", st.State)
	}
	clock = clock.Add(time.Second)
	if !s.finish(tk, errors.New("boom")) {
		t.Fatalf("Expected finish to record")
	}
	st := s.status(ActionLoadSchedule)
	if st.State != StateIdle || st.LastOutcome != StateFailed || st.LastError != "boom" {
		t.Errorf("Unexpected status %+v", st)
	}
	if st.FinishedAt.Sub(st.StartedAt) != time.Second {
		t.Errorf("Expected 1s between start and finish, got %v", st.FinishedAt.Sub(st.StartedAt))
	}
	if tk.ctx.Err() == nil {
		t.Errorf("Expected finished call's context released")
	}

	tk = s.begin(context.Background(), ActionLoadSchedule)
	s.finish(tk, nil)
	if st := s.status(ActionLoadSchedule); st.LastOutcome != StateSuccess || st.LastError != "" {
		t.Errorf("Expected success to clear the error, got %+v", st)
	}
}

func TestFinishIgnoresSupersededCall(t *testing.T) {
	s := newLaneSet()
	old := s.begin(context.Background(), ActionSearchClients)
	s.begin(context.Background(), ActionSearchClients)

	if s.finish(old, nil) {
		t.Errorf("Expected superseded finish not to be recorded")
	}
	if st := s.status(ActionSearchClients); st.State != StatePending {
		t.Errorf("Expected newer call still pending, got %s", st.State)
	}
}

func TestStatusOfUnusedLaneIsIdle(t *testing.T) {
	s := newLaneSet()
	if st := s.status(ActionUnassignClient); st.State != StateIdle || st.LastOutcome != "" {
		t.Errorf("Unexpected status %+v", st)
	}
	if len(s.snapshot()) != 0 {
		t.Errorf("Expected empty snapshot")
	}
}
