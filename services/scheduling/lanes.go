package scheduling

import (
	"context"
	"sync"
	"time"
)

// Action names a lane. Each lane runs at most one live call; starting a new call
// of the same action cancels the previous one.
type Action string

const (
	ActionLoadSchedule   Action = "loadSchedule"
	ActionEditSlot       Action = "editSlot"
	ActionDeleteSlot     Action = "deleteSlot"
	ActionAssignClient   Action = "assignClient"
	ActionUnassignClient Action = "unassignClient"
	ActionSearchClients  Action = "searchClients"
)

// State is where a lane is in Idle -> Pending -> (Success | Failed) -> Idle.
type State string

const (
	StateIdle    State = "idle"
	StatePending State = "pending"
	StateSuccess State = "success"
	StateFailed  State = "failed"
)

// LaneStatus describes a lane. After a call finishes State is back to idle and
// LastOutcome holds how it ended.
type LaneStatus struct {
	State       State     `json:"state"`
	LastOutcome State     `json:"lastOutcome,omitempty"`
	LastError   string    `json:"lastError,omitempty"`
	StartedAt   time.Time `json:"startedAt,omitzero"`
	FinishedAt  time.Time `json:"finishedAt,omitzero"`
}

type lane struct {
	gen    uint64
	cancel context.CancelFunc
	status LaneStatus
}

// ticket is one dispatched call on a lane.
type ticket struct {
	action Action
	gen    uint64
	ctx    context.Context
	cancel context.CancelFunc
}

type laneSet struct {
	mu    sync.Mutex
	lanes map[Action]*lane
	now   func() time.Time
}

func newLaneSet() *laneSet {
	return &laneSet{lanes: make(map[Action]*lane), now: time.Now}
}

// begin starts a call on the action's lane, cancelling whatever was running there.
func (s *laneSet) begin(parent context.Context, action Action) *ticket {
	ctx, cancel := context.WithCancel(parent)

	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lanes[action]
	if !ok {
		l = &lane{}
		s.lanes[action] = l
	}
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	l.cancel = cancel
	l.status.State = StatePending
	l.status.StartedAt = s.now()
	return &ticket{action: action, gen: l.gen, ctx: ctx, cancel: cancel}
}

func (s *laneSet) current(t *ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lanes[t.action]
	return ok && l.gen == t.gen
}

// commit runs apply only if t is still the lane's newest call. The check and
// apply happen under the lane lock so a newer call cannot slip in between.
func (s *laneSet) commit(t *ticket, apply func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lanes[t.action]
	if !ok || l.gen != t.gen {
		return false
	}
	apply()
	return true
}

// finish records the outcome for t if it is still current and releases its context.
// It reports whether the outcome was recorded.
func (s *laneSet) finish(t *ticket, err error) bool {
	defer t.cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lanes[t.action]
	if !ok || l.gen != t.gen {
		return false
	}
	l.cancel = nil
	l.status.State = StateIdle
	l.status.FinishedAt = s.now()
	if err != nil {
		l.status.LastOutcome = StateFailed
		l.status.LastError = err.Error()
	} else {
		l.status.LastOutcome = StateSuccess
		l.status.LastError = ""
	}
	return true
}

func (s *laneSet) status(action Action) LaneStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.lanes[action]; ok {
		return l.status
	}
	return LaneStatus{State: StateIdle}
}

func (s *laneSet) snapshot() map[Action]LaneStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[Action]LaneStatus, len(s.lanes))
	for a, l := range s.lanes {
		out[a] = l.status
	}
	return out
}
