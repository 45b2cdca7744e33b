package schedule

import (
	"sort"
	"strconv"
	"strings"

	"gymdesk/models"
)

// Build groups flat slots into the week. Every day of models.ScheduleDays gets a
// group, even when empty. Within a day slots are ordered by numeric start time;
// unparsable start times go after all parsable ones, ordered by raw text. Ties
// fall back to the slot id so the result does not depend on input order.
// Slots on a day outside ScheduleDays are returned in Unplaced, sorted the same way.
func Build(flat []models.Slot) models.WeeklySchedule {
	byDay := make(map[models.WeekDay][]models.Slot, len(models.ScheduleDays))
	var unplaced []models.Slot
	for _, s := range flat {
		s = s.Clone()
		if s.Day.Scheduled() {
			byDay[s.Day] = append(byDay[s.Day], s)
			continue
		}
		unplaced = append(unplaced, s)
	}

	w := models.WeeklySchedule{Days: make([]models.DayGroup, 0, len(models.ScheduleDays))}
	for _, day := range models.ScheduleDays {
		slots := byDay[day]
		if slots == nil {
			slots = []models.Slot{}
		}
		sortSlots(slots)
		w.Days = append(w.Days, models.DayGroup{Day: day, Slots: slots})
	}
	if len(unplaced) > 0 {
		sortUnplaced(unplaced)
		w.Unplaced = unplaced
	}
	return w
}

// BuildFromRecords converts backend records and builds the week from them.
func BuildFromRecords(records []models.SlotRecord) models.WeeklySchedule {
	flat := make([]models.Slot, 0, len(records))
	for _, r := range records {
		flat = append(flat, r.ToSlot())
	}
	return Build(flat)
}

// EditSlot applies patch to the slot with the given id. Assigned clients are
// never touched and the slot keeps its day; it is re-sorted within the day
// (or within Unplaced) when its start time changes.
func EditSlot(w *models.WeeklySchedule, id string, patch models.SlotPatch) error {
	if patch.Empty() {
		return ErrInvalidPatch
	}
	if patch.Capacity != nil && *patch.Capacity <= 0 {
		return ErrInvalidPatch
	}
	slot, day := findSlot(w, id)
	if slot == nil {
		return slotNotFound(id)
	}
	if patch.Capacity != nil && *patch.Capacity < len(slot.AssignedClientIDs) {
		return ErrCapacityExceeded
	}

	resort := false
	if patch.StartTime != nil && *patch.StartTime != slot.StartTime {
		slot.StartTime = *patch.StartTime
		resort = true
	}
	if patch.EndTime != nil {
		slot.EndTime = *patch.EndTime
	}
	if patch.Capacity != nil {
		slot.Capacity = *patch.Capacity
	}
	if resort {
		if day >= 0 {
			sortSlots(w.Days[day].Slots)
		} else {
			sortUnplaced(w.Unplaced)
		}
	}
	return nil
}

// DeleteSlot removes the slot with the given id from whichever day holds it.
func DeleteSlot(w *models.WeeklySchedule, id string) error {
	for gi := range w.Days {
		if i := slotIndex(w.Days[gi].Slots, id); i >= 0 {
			w.Days[gi].Slots = removeAt(w.Days[gi].Slots, i)
			return nil
		}
	}
	if i := slotIndex(w.Unplaced, id); i >= 0 {
		w.Unplaced = removeAt(w.Unplaced, i)
		return nil
	}
	return slotNotFound(id)
}

// findSlot returns a pointer into w and the index of its day group, or -1 for
// an unplaced slot.
func findSlot(w *models.WeeklySchedule, id string) (*models.Slot, int) {
	for gi := range w.Days {
		if i := slotIndex(w.Days[gi].Slots, id); i >= 0 {
			return &w.Days[gi].Slots[i], gi
		}
	}
	if i := slotIndex(w.Unplaced, id); i >= 0 {
		return &w.Unplaced[i], -1
	}
	return nil, -1
}

func slotIndex(slots []models.Slot, id string) int {
	for i := range slots {
		if slots[i].ID == id {
			return i
		}
	}
	return -1
}

func removeAt(slots []models.Slot, i int) []models.Slot {
	out := make([]models.Slot, 0, len(slots)-1)
	out = append(out, slots[:i]...)
	return append(out, slots[i+1:]...)
}

func sortSlots(slots []models.Slot) {
	sort.SliceStable(slots, func(i, j int) bool { return slotLess(slots[i], slots[j]) })
}

// sortUnplaced orders by day, then the same way as a day group.
func sortUnplaced(slots []models.Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Day != slots[j].Day {
			return slots[i].Day < slots[j].Day
		}
		return slotLess(slots[i], slots[j])
	})
}

func slotLess(a, b models.Slot) bool {
	av, aok := parseHour(a.StartTime)
	bv, bok := parseHour(b.StartTime)
	switch {
	case aok && !bok:
		return true
	case !aok && bok:
		return false
	case aok && bok && av != bv:
		return av < bv
	case !aok && !bok && a.StartTime != b.StartTime:
		return a.StartTime < b.StartTime
	}
	return a.ID < b.ID
}

func parseHour(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return v, true
}
