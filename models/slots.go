package models

// SlotRecord is a recurring weekly time slot as the backend stores and serves it.
type SlotRecord struct {
	ID        FlexString  `bson:"id" json:"id"`
	Day       string      `bson:"day" json:"day"`             // backend label, e.g. "lunes"
	StartTime FlexString  `bson:"startTime" json:"startTime"` // hour marker, e.g. "20"
	EndTime   FlexString  `bson:"endTime" json:"endTime"`
	MaxCount  int         `bson:"maxCount" json:"maxCount"`
	Clients   []ClientRef `bson:"clients" json:"clients"`
}

// Slot is the in-memory view of one bookable window.
type Slot struct {
	ID                string   `json:"id"`
	Day               WeekDay  `json:"day"`
	StartTime         string   `json:"startTime"`
	EndTime           string   `json:"endTime"`
	Capacity          int      `json:"capacity"`
	AssignedClientIDs []string `json:"assignedClientIds"`
}

// Full reports whether the slot is at (or, if the backend says so, over) capacity.
func (s Slot) Full() bool {
	return len(s.AssignedClientIDs) >= s.Capacity
}

// Clone returns a copy that shares no memory with s.
func (s Slot) Clone() Slot {
	out := s
	out.AssignedClientIDs = append([]string(nil), s.AssignedClientIDs...)
	return out
}

// ToSlot converts a backend record, dropping repeated client ids (first occurrence wins).
func (r SlotRecord) ToSlot() Slot {
	seen := make(map[string]struct{}, len(r.Clients))
	ids := make([]string, 0, len(r.Clients))
	for _, c := range r.Clients {
		id := string(c)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return Slot{
		ID:                string(r.ID),
		Day:               ParseWeekDay(r.Day),
		StartTime:         string(r.StartTime),
		EndTime:           string(r.EndTime),
		Capacity:          r.MaxCount,
		AssignedClientIDs: ids,
	}
}

// SlotPatch carries the editable fields of a slot. Nil fields are left untouched.
type SlotPatch struct {
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Capacity  *int    `json:"maxCount,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p SlotPatch) Empty() bool {
	return p.StartTime == nil && p.EndTime == nil && p.Capacity == nil
}

// DayGroup is one weekday with its slots sorted by start time.
type DayGroup struct {
	Day   WeekDay `json:"day"`
	Slots []Slot  `json:"slots"`
}

// WeeklySchedule is the whole week in ScheduleDays order.
type WeeklySchedule struct {
	Days     []DayGroup `json:"days"`
	Unplaced []Slot     `json:"unplaced,omitempty"` // slots whose day is not in ScheduleDays
}

// Clone deep-copies the schedule.
func (w WeeklySchedule) Clone() WeeklySchedule {
	out := WeeklySchedule{Days: make([]DayGroup, len(w.Days))}
	for i, g := range w.Days {
		slots := make([]Slot, len(g.Slots))
		for j, s := range g.Slots {
			slots[j] = s.Clone()
		}
		out.Days[i] = DayGroup{Day: g.Day, Slots: slots}
	}
	if len(w.Unplaced) > 0 {
		out.Unplaced = make([]Slot, len(w.Unplaced))
		for i, s := range w.Unplaced {
			out.Unplaced[i] = s.Clone()
		}
	}
	return out
}

// SlotCount returns the number of placed slots.
func (w WeeklySchedule) SlotCount() int {
	n := 0
	for _, g := range w.Days {
		n += len(g.Slots)
	}
	return n
}

// AssignClientsRequest is the body of the backend assign endpoint.
type AssignClientsRequest struct {
	Clients []string `json:"clients" binding:"required,min=1"`
}
