// Package memory implementa el Canvas en memoria, detrás de un mutex.
// Es el adapter por defecto: el engine es single-process por diseño.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dropDatabas3/inkboard/internal/board"
	"github.com/dropDatabas3/inkboard/internal/metrics"
	"github.com/dropDatabas3/inkboard/internal/store"
)

// Canvas is a mutex-guarded in-memory record collection.
type Canvas struct {
	mu     sync.Mutex
	recs   []board.Record
	limits store.Limits
	now    func() time.Time
}

// New creates an empty canvas with the given limits (zero fields fall back
// to store.DefaultLimits).
func New(limits store.Limits) *Canvas {
	return &Canvas{
		limits: limits.Normalize(),
		now:    time.Now,
	}
}

// NewWithClock is like New but lets tests control time.
func NewWithClock(limits store.Limits, now func() time.Time) *Canvas {
	c := New(limits)
	if now != nil {
		c.now = now
	}
	return c
}

// Append inserts rec at the end, truncating oldest-first when the cap is
// exceeded.
func (c *Canvas) Append(ctx context.Context, rec board.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.recs = append(c.recs, rec)
	if over := len(c.recs) - c.limits.MaxRecords; over > 0 {
		c.recs = append(c.recs[:0:0], c.recs[over:]...)
		metrics.BoardRecordsEvicted.Add(float64(over))
	}
	metrics.BoardRecords.Set(float64(len(c.recs)))
	return nil
}

// Snapshot returns a copy of the live records in insertion order. Records
// older than the retention window are dropped before the copy is taken;
// eviction only ever happens here, on reads.
func (c *Canvas) Snapshot(ctx context.Context) ([]board.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictExpiredLocked()

	out := make([]board.Record, len(c.recs))
	copy(out, c.recs)
	return out, nil
}

// ReplaceAll swaps the whole collection. The replacement goes through the
// same cap truncation as appends so the size invariant holds for any input.
func (c *Canvas) ReplaceAll(ctx context.Context, recs []board.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]board.Record, len(recs))
	copy(next, recs)
	if over := len(next) - c.limits.MaxRecords; over > 0 {
		next = next[over:]
		metrics.BoardRecordsEvicted.Add(float64(over))
	}
	c.recs = next
	metrics.BoardRecords.Set(float64(len(c.recs)))
	return nil
}

// Clear empties the collection unconditionally.
func (c *Canvas) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.recs = nil
	metrics.BoardRecords.Set(0)
	return nil
}

// Len returns the current record count without triggering eviction.
func (c *Canvas) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.recs)
}

func (c *Canvas) evictExpiredLocked() {
	cutoff := c.now().Add(-c.limits.Retention).UnixMilli()
	// Records arrive roughly in time order, but a move refreshes timestamps
	// in place, so filter rather than search for a boundary.
	kept := c.recs[:0]
	evicted := 0
	for _, r := range c.recs {
		if r.Timestamp > cutoff {
			kept = append(kept, r)
		} else {
			evicted++
		}
	}
	if evicted > 0 {
		c.recs = append(c.recs[:0:0], kept...)
		metrics.BoardRecordsEvicted.Add(float64(evicted))
		metrics.BoardRecords.Set(float64(len(c.recs)))
	}
}
