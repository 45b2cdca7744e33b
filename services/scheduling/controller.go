package scheduling

import (
	"context"
	"errors"
	"fmt"

	"gymdesk/models"
	"gymdesk/services/schedule"

	"go.uber.org/zap"
)

// Controller is the only writer of the schedule store and the client cache.
// Every mutation goes to the backend first and is applied locally only after
// the backend confirms it.
type Controller struct {
	Backend   Backend
	Store     *schedule.Store
	Directory ClientCache
	Finder    ClientSearcher
	Logger    *zap.Logger

	lanes *laneSet
}

// NewController wires a controller around an existing store.
func NewController(backend Backend, store *schedule.Store, directory ClientCache, finder ClientSearcher, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = schedule.NewStore()
	}
	return &Controller{
		Backend:   backend,
		Store:     store,
		Directory: directory,
		Finder:    finder,
		Logger:    logger,
		lanes:     newLaneSet(),
	}
}

// AssignOutcome reports what happened locally after the backend accepted an assignment.
type AssignOutcome struct {
	Slot       models.Slot                      `json:"slot"`
	Results    map[string]schedule.AssignResult `json:"results"`
	Reconciled bool                             `json:"reconciled"`
}

// UnassignOutcome reports what happened locally after the backend accepted a removal.
type UnassignOutcome struct {
	Slot       models.Slot `json:"slot"`
	Removed    bool        `json:"removed"`
	Evicted    bool        `json:"evicted"`
	Reconciled bool        `json:"reconciled"`
}

// LoadSchedule fetches the whole week and replaces the local copy. On failure
// the previous week is kept.
func (c *Controller) LoadSchedule(ctx context.Context) (models.WeeklySchedule, error) {
	t := c.lanes.begin(ctx, ActionLoadSchedule)

	records, err := c.Backend.FetchSchedules(t.ctx)
	if err != nil {
		return models.WeeklySchedule{}, c.fail(t, err, false)
	}
	week := schedule.BuildFromRecords(records)
	if !c.lanes.commit(t, func() { c.Store.Replace(week) }) {
		return models.WeeklySchedule{}, c.superseded(t, false)
	}
	c.lanes.finish(t, nil)

	if len(week.Unplaced) > 0 {
		c.Logger.Warn("slots outside the booking week", zap.Int("count", len(week.Unplaced)))
	}
	c.Logger.Info("schedule loaded", zap.Int("slots", week.SlotCount()))

	if ids := c.Store.AssignedClientIDs(); len(ids) > 0 {
		if _, err := c.Directory.EnsurePresent(ctx, ids); err != nil {
			c.Logger.Warn("prefetching client records failed", zap.Int("clients", len(ids)), zap.Error(err))
		}
	}
	return week, nil
}

// EditSlot patches a slot on the backend and then locally. The slot's day and
// assigned clients are never changed by an edit.
func (c *Controller) EditSlot(ctx context.Context, slotID string, patch models.SlotPatch) (models.Slot, error) {
	if patch.Empty() || (patch.Capacity != nil && *patch.Capacity <= 0) {
		return models.Slot{}, schedule.ErrInvalidPatch
	}
	t := c.lanes.begin(ctx, ActionEditSlot)

	rec, err := c.Backend.UpdateSlot(t.ctx, slotID, patch)
	if err != nil {
		return models.Slot{}, c.fail(t, err, true)
	}
	effective := patch
	if rec != nil && rec.ID != "" {
		effective = patchFromRecord(*rec, patch)
	}

	var slot models.Slot
	var applyErr error
	committed := c.lanes.commit(t, func() {
		if rec != nil && rec.Day != "" {
			if cur, err := c.Store.Slot(slotID); err == nil && models.ParseWeekDay(rec.Day) != cur.Day {
				applyErr = fmt.Errorf("backend moved slot to %s", rec.Day)
				return
			}
		}
		slot, applyErr = c.Store.EditSlot(slotID, effective)
	})
	if !committed {
		return models.Slot{}, c.superseded(t, true)
	}
	if applyErr != nil {
		if err := c.reconcile(ctx, t, slotID, applyErr); err != nil {
			return models.Slot{}, err
		}
		return c.Store.Slot(slotID)
	}
	c.lanes.finish(t, nil)
	return slot, nil
}

// DeleteSlot removes a slot on the backend and then locally. A slot already
// missing locally is not an error.
func (c *Controller) DeleteSlot(ctx context.Context, slotID string) error {
	t := c.lanes.begin(ctx, ActionDeleteSlot)

	if err := c.Backend.DeleteSlot(t.ctx, slotID); err != nil {
		return c.fail(t, err, true)
	}
	var applyErr error
	if !c.lanes.commit(t, func() { applyErr = c.Store.DeleteSlot(slotID) }) {
		return c.superseded(t, true)
	}
	if applyErr != nil {
		c.Logger.Debug("deleted slot was not held locally", zap.String("slotID", slotID))
	}
	c.lanes.finish(t, nil)
	return nil
}

// AssignClient assigns clients on the backend, loads their records, then
// assigns them locally. The backend has already committed at that point, so a
// local rejection means the local week is stale and triggers a reload.
func (c *Controller) AssignClient(ctx context.Context, slotID string, clientIDs []string) (*AssignOutcome, error) {
	ids := distinct(clientIDs)
	if len(ids) == 0 {
		return nil, ErrNoClients
	}
	t := c.lanes.begin(ctx, ActionAssignClient)

	if err := c.Backend.AssignClients(t.ctx, slotID, ids); err != nil {
		return nil, c.fail(t, err, true)
	}
	if _, err := c.Directory.EnsurePresent(t.ctx, ids); err != nil {
		c.Logger.Warn("loading assigned client records failed", zap.String("slotID", slotID), zap.Error(err))
	}

	var results map[string]schedule.AssignResult
	var applyErr error
	if !c.lanes.commit(t, func() { results, applyErr = c.Store.Assign(slotID, ids...) }) {
		return nil, c.superseded(t, true)
	}

	var rejected []string
	for _, id := range ids {
		if results[id] == schedule.CapacityExceeded {
			rejected = append(rejected, id)
		}
	}
	if applyErr == nil && len(rejected) > 0 {
		applyErr = fmt.Errorf("%w: %v", schedule.ErrCapacityExceeded, rejected)
	}

	out := &AssignOutcome{Results: results}
	if applyErr != nil {
		if err := c.reconcile(ctx, t, slotID, applyErr); err != nil {
			return out, err
		}
		out.Reconciled = true
	} else {
		c.lanes.finish(t, nil)
	}
	out.Slot, _ = c.Store.Slot(slotID)
	c.Logger.Info("clients assigned", zap.String("slotID", slotID), zap.Strings("clientIDs", ids), zap.Bool("reconciled", out.Reconciled))
	return out, nil
}

// UnassignClient removes one client from one slot. The client's record is
// evicted only when no other slot still holds the client.
func (c *Controller) UnassignClient(ctx context.Context, slotID, clientID string) (*UnassignOutcome, error) {
	t := c.lanes.begin(ctx, ActionUnassignClient)

	if err := c.Backend.UnassignClient(t.ctx, slotID, clientID); err != nil {
		return nil, c.fail(t, err, true)
	}

	out := &UnassignOutcome{}
	var applyErr error
	stillAssigned := true
	committed := c.lanes.commit(t, func() {
		out.Removed, applyErr = c.Store.Unassign(slotID, clientID)
		if applyErr == nil {
			stillAssigned = c.Store.IsAssignedAnywhere(clientID)
		}
	})
	if !committed {
		return nil, c.superseded(t, true)
	}
	if applyErr != nil {
		if err := c.reconcile(ctx, t, slotID, applyErr); err != nil {
			return out, err
		}
		out.Reconciled = true
		stillAssigned = c.Store.IsAssignedAnywhere(clientID)
	} else {
		c.lanes.finish(t, nil)
	}

	if !stillAssigned {
		c.Directory.Evict(ctx, clientID)
		out.Evicted = true
	}
	out.Slot, _ = c.Store.Slot(slotID)
	return out, nil
}

// SearchClients runs an assignable-clients search on its own lane; only the
// newest search's page is returned.
func (c *Controller) SearchClients(ctx context.Context, q models.AssignableClientsQuery) (*models.AssignableClientsPage, error) {
	t := c.lanes.begin(ctx, ActionSearchClients)
	page, err := c.Finder.Search(t.ctx, q)
	if err != nil {
		return nil, c.fail(t, err, false)
	}
	if !c.lanes.finish(t, nil) {
		return nil, ErrSuperseded
	}
	return page, nil
}

// SlotClients returns the records of a slot's clients in assignment order.
// Clients the backend has no record for are skipped.
func (c *Controller) SlotClients(ctx context.Context, slotID string) ([]models.ClientRecord, error) {
	slot, err := c.Store.Slot(slotID)
	if err != nil {
		return nil, err
	}
	records, err := c.Directory.EnsurePresent(ctx, slot.AssignedClientIDs)
	if err != nil {
		return nil, err
	}
	out := make([]models.ClientRecord, 0, len(slot.AssignedClientIDs))
	for _, id := range slot.AssignedClientIDs {
		if rec, ok := records[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Snapshot returns a copy of the current week.
func (c *Controller) Snapshot() models.WeeklySchedule {
	w, _ := c.Store.Snapshot()
	return w
}

// Loaded reports whether a week has ever been loaded from the backend.
func (c *Controller) Loaded() bool {
	return c.Store.Loaded()
}

// Status returns the state of every lane used so far.
func (c *Controller) Status() map[Action]LaneStatus {
	return c.lanes.snapshot()
}

// LaneStatus returns the state of one lane.
func (c *Controller) LaneStatus(a Action) LaneStatus {
	return c.lanes.status(a)
}

// ResetSession drops every cached client record.
func (c *Controller) ResetSession() {
	c.Directory.Clear()
}

// fail closes t with err. If t was superseded meanwhile the error is replaced
// by ErrSuperseded. A cancelled mutation may still have been committed by the
// backend, so the week is reloaded whoever cancelled it.
func (c *Controller) fail(t *ticket, err error, mutates bool) error {
	unknown := mutates && errors.Is(err, context.Canceled)
	if !c.lanes.current(t) {
		return c.superseded(t, unknown)
	}
	c.lanes.finish(t, err)
	c.Logger.Warn("schedule action failed", zap.String("action", string(t.action)), zap.Error(err))
	if unknown {
		if rerr := c.reload(t.ctx); rerr != nil {
			c.Logger.Warn("reload after cancelled action failed", zap.String("action", string(t.action)), zap.Error(rerr))
		}
	}
	return err
}

// superseded closes a ticket a newer call replaced. When the backend may have
// committed the change, the week is reloaded so the fact is not lost.
func (c *Controller) superseded(t *ticket, reload bool) error {
	c.lanes.finish(t, ErrSuperseded)
	c.Logger.Debug("schedule action superseded", zap.String("action", string(t.action)))
	if reload {
		if err := c.reload(t.ctx); err != nil {
			c.Logger.Warn("reload after superseded action failed", zap.String("action", string(t.action)), zap.Error(err))
		}
	}
	return ErrSuperseded
}

// reconcile handles a backend-confirmed change that did not apply locally.
// A successful reload resolves it; otherwise a StaleLocalStateError is returned.
func (c *Controller) reconcile(ctx context.Context, t *ticket, slotID string, cause error) error {
	c.Logger.Warn("local schedule out of step with backend, reloading",
		zap.String("action", string(t.action)), zap.String("slotID", slotID), zap.Error(cause))
	if err := c.reload(ctx); err != nil {
		stale := &StaleLocalStateError{Action: t.action, SlotID: slotID, Cause: cause, ReloadErr: err}
		c.lanes.finish(t, stale)
		return stale
	}
	c.lanes.finish(t, nil)
	return nil
}

// reload refetches the week, detached from the caller's cancellation. A reload
// superseded by a newer load counts as done.
func (c *Controller) reload(ctx context.Context) error {
	_, err := c.LoadSchedule(context.WithoutCancel(ctx))
	if errors.Is(err, ErrSuperseded) {
		return nil
	}
	return err
}

// patchFromRecord takes the editable fields from the backend's answer, falling
// back to the request for fields the answer leaves empty.
func patchFromRecord(rec models.SlotRecord, requested models.SlotPatch) models.SlotPatch {
	out := requested
	if start := string(rec.StartTime); start != "" {
		out.StartTime = &start
	}
	if end := string(rec.EndTime); end != "" {
		out.EndTime = &end
	}
	if rec.MaxCount > 0 {
		capacity := rec.MaxCount
		out.Capacity = &capacity
	}
	return out
}

func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
