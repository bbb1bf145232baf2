package presence

import (
	"testing"
	"time"
)

func TestMarkPresentIsIdempotent(t *testing.T) {
	tr := New(DefaultWindow)
	tr.MarkPresent("u1")
	tr.MarkPresent("u1")
	tr.MarkPresent("u2")

	got := tr.List()
	if len(got) != 2 {
		t.Fatalf("expected 2 users, got %v", got)
	}
	if got[0] != "u1" || got[1] != "u2" {
		t.Fatalf("unexpected members: %v", got)
	}
}

func TestMarkPresentIgnoresEmptyID(t *testing.T) {
	tr := New(DefaultWindow)
	tr.MarkPresent("")
	if got := tr.List(); len(got) != 0 {
		t.Fatalf("empty id should not be tracked, got %v", got)
	}
}

func TestRemove(t *testing.T) {
	tr := New(DefaultWindow)
	tr.MarkPresent("u1")
	tr.MarkPresent("u2")
	tr.Remove("u1")

	got := tr.List()
	if len(got) != 1 || got[0] != "u2" {
		t.Fatalf("expected only u2, got %v", got)
	}

	// Removing an absent id is a no-op.
	tr.Remove("ghost")
	if got := tr.List(); len(got) != 1 {
		t.Fatalf("expected 1 user, got %v", got)
	}
}

func TestEntriesExpireAfterInactivity(t *testing.T) {
	tr := New(50 * time.Millisecond)
	tr.MarkPresent("u1")
	tr.MarkPresent("u2")

	time.Sleep(30 * time.Millisecond)
	tr.MarkPresent("u2") // keeps polling

	time.Sleep(30 * time.Millisecond)
	got := tr.List()
	if len(got) != 1 || got[0] != "u2" {
		t.Fatalf("expected only the active user, got %v", got)
	}
}

func TestNoExpiryWhenWindowDisabled(t *testing.T) {
	tr := New(0)
	tr.MarkPresent("u1")
	time.Sleep(20 * time.Millisecond)
	if got := tr.List(); len(got) != 1 {
		t.Fatalf("entries must not expire with window 0, got %v", got)
	}
}
