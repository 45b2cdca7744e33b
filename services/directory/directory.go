package directory

import (
	"context"
	"fmt"
	"sync"

	"gymdesk/models"

	"go.uber.org/zap"
)

// BatchFetcher loads client records for many ids in one round trip.
type BatchFetcher interface {
	FetchClients(ctx context.Context, ids []string) ([]models.ClientRecord, error)
}

// RecordStore is an optional second-level cache shared across processes.
type RecordStore interface {
	GetMany(ctx context.Context, ids []string) (map[string]models.ClientRecord, error)
	PutMany(ctx context.Context, records []models.ClientRecord) error
	Delete(ctx context.Context, ids ...string) error
}

// batch is one in-flight fetch. done closes once records for ids have been
// merged into the cache (or the fetch failed).
type batch struct {
	ids     []string
	records map[string]models.ClientRecord
	done    chan struct{}
	err     error
}

// ClientDirectory caches client records by id. Ids that are neither cached nor
// already being fetched are loaded in a single batch per EnsurePresent call;
// overlapping callers wait for the batch that already covers their ids.
// Ids the backend answered without a record are remembered as misses until
// Evict or Clear.
type ClientDirectory struct {
	Fetcher BatchFetcher
	Store   RecordStore // may be nil
	Logger  *zap.Logger

	mu       sync.Mutex
	records  map[string]models.ClientRecord
	misses   map[string]struct{}
	inflight map[string]*batch
	gen      uint64
}

// NewClientDirectory returns an empty directory backed by fetcher.
func NewClientDirectory(fetcher BatchFetcher, store RecordStore, logger *zap.Logger) *ClientDirectory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientDirectory{
		Fetcher:  fetcher,
		Store:    store,
		Logger:   logger,
		records:  make(map[string]models.ClientRecord),
		misses:   make(map[string]struct{}),
		inflight: make(map[string]*batch),
	}
}

// EnsurePresent returns the records for ids, fetching only those never seen
// before. Ids the backend does not know are absent from the result.
//
// A batch runs detached from the cancellation of the caller that started it,
// so callers sharing it are not failed by someone else's cancelled context.
// Each caller still stops waiting when its own ctx is done.
func (d *ClientDirectory) EnsurePresent(ctx context.Context, ids []string) (map[string]models.ClientRecord, error) {
	wanted := distinct(ids)
	if len(wanted) == 0 {
		return map[string]models.ClientRecord{}, nil
	}

	d.mu.Lock()
	var missing []string
	var waits []*batch
	waiting := make(map[*batch]struct{})
	for _, id := range wanted {
		if _, ok := d.records[id]; ok {
			continue
		}
		if _, ok := d.misses[id]; ok {
			continue
		}
		if b, ok := d.inflight[id]; ok {
			if _, dup := waiting[b]; !dup {
				waiting[b] = struct{}{}
				waits = append(waits, b)
			}
			continue
		}
		missing = append(missing, id)
	}
	var own *batch
	gen := d.gen
	if len(missing) > 0 {
		own = &batch{ids: missing, done: make(chan struct{})}
		for _, id := range missing {
			d.inflight[id] = own
		}
	}
	d.mu.Unlock()

	if own != nil {
		go d.load(context.WithoutCancel(ctx), own, gen)
		waits = append(waits, own)
	}

	for _, b := range waits {
		select {
		case <-b.done:
			if b.err == nil {
				continue
			}
			if b == own {
				return nil, b.err
			}
			return nil, fmt.Errorf("shared client fetch failed: %w", b.err)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]models.ClientRecord, len(wanted))
	for _, id := range wanted {
		if rec, ok := d.records[id]; ok {
			out[id] = rec
			continue
		}
		// Clear ran while the batch was in flight; answer from the batch itself.
		for _, b := range waits {
			if rec, ok := b.records[id]; ok {
				out[id] = rec
				break
			}
		}
	}
	return out, nil
}

// load resolves b from the record store and then the backend, merges the result
// and releases any waiters. Results are dropped if Clear ran since gen.
func (d *ClientDirectory) load(ctx context.Context, b *batch, gen uint64) {
	found := make(map[string]models.ClientRecord, len(b.ids))
	remaining := b.ids

	if d.Store != nil {
		cached, err := d.Store.GetMany(ctx, b.ids)
		if err != nil {
			d.Logger.Warn("client record store read failed", zap.Error(err))
		}
		for id, rec := range cached {
			found[id] = rec
		}
		remaining = remaining[:0:0]
		for _, id := range b.ids {
			if _, ok := found[id]; !ok {
				remaining = append(remaining, id)
			}
		}
	}

	if len(remaining) > 0 {
		fetched, err := d.Fetcher.FetchClients(ctx, remaining)
		if err != nil {
			b.err = fmt.Errorf("fetch %d client records: %w", len(remaining), err)
		} else {
			d.Logger.Debug("fetched client records", zap.Int("requested", len(remaining)), zap.Int("received", len(fetched)))
			var fresh []models.ClientRecord
			for _, rec := range fetched {
				id := string(rec.ID)
				if id == "" {
					continue
				}
				found[id] = rec
				fresh = append(fresh, rec)
			}
			if d.Store != nil && len(fresh) > 0 {
				if err := d.Store.PutMany(ctx, fresh); err != nil {
					d.Logger.Warn("client record store write failed", zap.Error(err))
				}
			}
			if len(fresh) < len(remaining) {
				d.Logger.Warn("backend returned fewer client records than requested",
					zap.Int("requested", len(remaining)), zap.Int("received", len(fresh)))
			}
		}
	}

	b.records = found
	d.mu.Lock()
	if b.err == nil && gen == d.gen {
		for id, rec := range found {
			d.records[id] = rec
		}
		for _, id := range remaining {
			if _, ok := found[id]; !ok {
				d.misses[id] = struct{}{}
			}
		}
	}
	for _, id := range b.ids {
		if d.inflight[id] == b {
			delete(d.inflight, id)
		}
	}
	d.mu.Unlock()
	close(b.done)
}

// Lookup returns the cached records among ids without fetching.
func (d *ClientDirectory) Lookup(ids []string) map[string]models.ClientRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]models.ClientRecord, len(ids))
	for _, id := range ids {
		if rec, ok := d.records[id]; ok {
			out[id] = rec
		}
	}
	return out
}

// Evict drops one record, or a remembered miss. Slot membership is not affected.
func (d *ClientDirectory) Evict(ctx context.Context, id string) {
	d.mu.Lock()
	delete(d.records, id)
	delete(d.misses, id)
	d.mu.Unlock()
	if d.Store != nil {
		if err := d.Store.Delete(ctx, id); err != nil {
			d.Logger.Warn("client record store delete failed", zap.String("clientID", id), zap.Error(err))
		}
	}
}

// Clear empties the in-process cache. Fetches already running do not repopulate it.
// The shared record store is left alone.
func (d *ClientDirectory) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records = make(map[string]models.ClientRecord)
	d.misses = make(map[string]struct{})
	d.gen++
}

// Len returns the number of cached records.
func (d *ClientDirectory) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.records)
}

func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
