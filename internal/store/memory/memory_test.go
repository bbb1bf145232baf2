package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dropDatabas3/inkboard/internal/board"
	"github.com/dropDatabas3/inkboard/internal/store"
)

func rec(id string, ts time.Time) board.Record {
	return board.Record{
		Kind:      board.KindDraw,
		ID:        id,
		Author:    "u1",
		Timestamp: ts.UnixMilli(),
	}
}

func TestAppendPreservesInsertionOrder(t *testing.T) {
	c := New(store.Limits{})
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < 5; i++ {
		if err := c.Append(ctx, rec(fmt.Sprintf("r%d", i), now)); err != nil {
			t.Fatal(err)
		}
	}

	snap, err := c.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap) != 5 {
		t.Fatalf("expected 5 records, got %d", len(snap))
	}
	for i, r := range snap {
		if want := fmt.Sprintf("r%d", i); r.ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, r.ID)
		}
	}
}

func TestAppendTruncatesOldestFirst(t *testing.T) {
	c := New(store.Limits{MaxRecords: 1000})
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < 1250; i++ {
		if err := c.Append(ctx, rec(fmt.Sprintf("r%d", i), now)); err != nil {
			t.Fatal(err)
		}
	}

	snap, err := c.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap) != 1000 {
		t.Fatalf("expected exactly 1000 records, got %d", len(snap))
	}
	// The retained records are exactly the most recent 1000 by insertion order.
	if snap[0].ID != "r250" {
		t.Fatalf("expected oldest retained to be r250, got %s", snap[0].ID)
	}
	if snap[999].ID != "r1249" {
		t.Fatalf("expected newest retained to be r1249, got %s", snap[999].ID)
	}
}

func TestSnapshotEvictsExpiredRecords(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	c := NewWithClock(store.Limits{Retention: time.Hour}, clock)
	ctx := context.Background()

	if err := c.Append(ctx, rec("old", now.Add(-2*time.Hour))); err != nil {
		t.Fatal(err)
	}
	if err := c.Append(ctx, rec("fresh", now.Add(-time.Minute))); err != nil {
		t.Fatal(err)
	}

	// Eviction is lazy: nothing happened yet.
	if got := c.Len(); got != 2 {
		t.Fatalf("expected 2 records before read, got %d", got)
	}

	snap, err := c.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap) != 1 || snap[0].ID != "fresh" {
		t.Fatalf("expected only the fresh record, got %+v", snap)
	}
	if got := c.Len(); got != 1 {
		t.Fatalf("expected expired record removed from store, got len %d", got)
	}
}

func TestMoveRefreshedTimestampSurvivesEviction(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	c := NewWithClock(store.Limits{Retention: time.Hour}, clock)
	ctx := context.Background()

	r := rec("sh1", now.Add(-59*time.Minute))
	if err := c.Append(ctx, r); err != nil {
		t.Fatal(err)
	}

	// A move rewrites the record in place with a fresh timestamp; it must
	// outlive the window that would have claimed the original.
	snap, _ := c.Snapshot(ctx)
	snap[0].Touch(now)
	if err := c.ReplaceAll(ctx, snap); err != nil {
		t.Fatal(err)
	}

	now = now.Add(30 * time.Minute)
	snap, err := c.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap) != 1 {
		t.Fatalf("refreshed record should survive, got %d records", len(snap))
	}
}

func TestReplaceAllAndClear(t *testing.T) {
	c := New(store.Limits{})
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < 3; i++ {
		_ = c.Append(ctx, rec(fmt.Sprintf("r%d", i), now))
	}

	if err := c.ReplaceAll(ctx, []board.Record{rec("only", now)}); err != nil {
		t.Fatal(err)
	}
	snap, _ := c.Snapshot(ctx)
	if len(snap) != 1 || snap[0].ID != "only" {
		t.Fatalf("expected single replaced record, got %+v", snap)
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	snap, _ = c.Snapshot(ctx)
	if len(snap) != 0 {
		t.Fatalf("expected empty store after clear, got %d", len(snap))
	}
}

func TestReplaceAllDoesNotAliasCallerSlice(t *testing.T) {
	c := New(store.Limits{})
	ctx := context.Background()
	in := []board.Record{rec("a", time.Now())}
	_ = c.ReplaceAll(ctx, in)

	in[0].ID = "mutated"

	snap, _ := c.Snapshot(ctx)
	if snap[0].ID != "a" {
		t.Fatal("store must own its records exclusively")
	}
}

func TestConcurrentAppendAndSnapshot(t *testing.T) {
	c := New(store.Limits{MaxRecords: 100})
	ctx := context.Background()
	now := time.Now()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_ = c.Append(ctx, rec(fmt.Sprintf("w%d-%d", w, i), now))
				if i%10 == 0 {
					snap, err := c.Snapshot(ctx)
					if err != nil {
						t.Error(err)
						return
					}
					if len(snap) > 100 {
						t.Errorf("cap exceeded: %d", len(snap))
						return
					}
				}
			}
		}(w)
	}
	wg.Wait()

	snap, _ := c.Snapshot(ctx)
	if len(snap) != 100 {
		t.Fatalf("expected store at cap, got %d", len(snap))
	}
}
