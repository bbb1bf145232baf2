// Package store define las interfaces de acceso a datos del canvas.
//
// El Canvas es la única autoridad sobre la colección ordenada de records;
// los adapters viven en subpaquetes (memory). Toda mutación se serializa
// dentro del adapter, los callers no ven locking.
package store

import (
	"context"
	"time"

	"github.com/dropDatabas3/inkboard/internal/board"
)

// Canvas is the authoritative ordered collection of board records.
type Canvas interface {
	// Append inserts at the end. If the cap is exceeded, the oldest records
	// are discarded until the size equals the cap.
	Append(ctx context.Context, rec board.Record) error

	// Snapshot returns the live records in insertion order after applying
	// age-based eviction. Eviction is lazy: it only runs on reads.
	Snapshot(ctx context.Context) ([]board.Record, error)

	// ReplaceAll atomically substitutes the whole collection. Move/delete are
	// expressed as read-transform-ReplaceAll over the full snapshot.
	ReplaceAll(ctx context.Context, recs []board.Record) error

	// Clear empties the collection unconditionally.
	Clear(ctx context.Context) error
}

// Limits bound the canvas in both dimensions: record count under bursty
// stroke submission, record age under long-lived idle sessions. Either
// safety valve may fire first.
type Limits struct {
	MaxRecords int
	Retention  time.Duration
}

// DefaultLimits matches the original system: 1000 records, one hour.
var DefaultLimits = Limits{
	MaxRecords: 1000,
	Retention:  time.Hour,
}

func (l Limits) withDefaults() Limits {
	if l.MaxRecords <= 0 {
		l.MaxRecords = DefaultLimits.MaxRecords
	}
	if l.Retention <= 0 {
		l.Retention = DefaultLimits.Retention
	}
	return l
}

// Normalize rellena los campos en cero con los defaults.
func (l Limits) Normalize() Limits { return l.withDefaults() }
