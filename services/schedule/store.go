package schedule

import (
	"sort"
	"sync"

	"gymdesk/models"
)

// Store owns the current weekly schedule. All reads return copies and every
// mutation runs under one lock, so capacity checks and appends are atomic.
type Store struct {
	mu       sync.RWMutex
	week     models.WeeklySchedule
	loaded   bool
	revision uint64
}

// NewStore returns a store holding an empty week.
func NewStore() *Store {
	return &Store{week: Build(nil)}
}

// Replace swaps in a freshly built week.
func (s *Store) Replace(w models.WeeklySchedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.week = w.Clone()
	s.loaded = true
	s.revision++
}

// Snapshot returns a deep copy of the week and its revision.
func (s *Store) Snapshot() (models.WeeklySchedule, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.week.Clone(), s.revision
}

// Loaded reports whether Replace has been called at least once.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Revision increases on every successful mutation.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Slot returns a copy of the slot with the given id.
func (s *Store) Slot(id string) (models.Slot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slot, _ := findSlot(&s.week, id)
	if slot == nil {
		return models.Slot{}, slotNotFound(id)
	}
	return slot.Clone(), nil
}

func (s *Store) EditSlot(id string, patch models.SlotPatch) (models.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := EditSlot(&s.week, id, patch); err != nil {
		return models.Slot{}, err
	}
	s.revision++
	slot, _ := findSlot(&s.week, id)
	return slot.Clone(), nil
}

func (s *Store) DeleteSlot(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := DeleteSlot(&s.week, id); err != nil {
		return err
	}
	s.revision++
	return nil
}

// Assign puts each client into the slot in order and reports the outcome per client.
// Results are keyed by client id; a repeated id in clientIDs keeps an earlier Assigned.
func (s *Store) Assign(slotID string, clientIDs ...string) (map[string]AssignResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, _ := findSlot(&s.week, slotID)
	if slot == nil {
		return nil, slotNotFound(slotID)
	}
	results := make(map[string]AssignResult, len(clientIDs))
	changed := false
	for _, id := range clientIDs {
		r := Assign(slot, id)
		if r == Assigned {
			changed = true
		}
		if prev, seen := results[id]; seen && prev == Assigned {
			continue
		}
		results[id] = r
	}
	if changed {
		s.revision++
	}
	return results, nil
}

// Unassign removes the client from the named slot only. It reports whether the
// client was present.
func (s *Store) Unassign(slotID, clientID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, _ := findSlot(&s.week, slotID)
	if slot == nil {
		return false, slotNotFound(slotID)
	}
	removed := Unassign(slot, clientID)
	if removed {
		s.revision++
	}
	return removed, nil
}

// IsAssignedAnywhere reports whether any slot of the week holds the client.
func (s *Store) IsAssignedAnywhere(clientID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.week.Days {
		for _, slot := range g.Slots {
			if indexOf(slot.AssignedClientIDs, clientID) >= 0 {
				return true
			}
		}
	}
	for _, slot := range s.week.Unplaced {
		if indexOf(slot.AssignedClientIDs, clientID) >= 0 {
			return true
		}
	}
	return false
}

// AssignedClientIDs returns every distinct client id in the week, sorted.
func (s *Store) AssignedClientIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	collect := func(slots []models.Slot) {
		for _, slot := range slots {
			for _, id := range slot.AssignedClientIDs {
				seen[id] = struct{}{}
			}
		}
	}
	for _, g := range s.week.Days {
		collect(g.Slots)
	}
	collect(s.week.Unplaced)
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
