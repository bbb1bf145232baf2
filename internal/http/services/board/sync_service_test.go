package board

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	boardmodel "github.com/dropDatabas3/inkboard/internal/board"
	"github.com/dropDatabas3/inkboard/internal/presence"
	"github.com/dropDatabas3/inkboard/internal/store"
	storemem "github.com/dropDatabas3/inkboard/internal/store/memory"
)

func newService(t *testing.T) SyncService {
	t.Helper()
	return New(Deps{
		Canvas:   storemem.New(store.Limits{}),
		Presence: presence.New(presence.DefaultWindow),
	})
}

func stroke(id string, x, y float64) *boardmodel.Record {
	return &boardmodel.Record{
		Kind: boardmodel.KindDraw, ID: id, X: x, Y: y,
		StrokeWidth: 2, Color: "#000000",
	}
}

func shape(id, shapeType string, x, y float64) *boardmodel.Record {
	return &boardmodel.Record{
		Kind: boardmodel.KindShape, ID: id, ShapeType: shapeType,
		X: x, Y: y, Width: 50, Height: 50, Color: "#000000",
	}
}

func TestSubmitValidation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if err := svc.Submit(ctx, nil, "u1"); !errors.Is(err, ErrMissingRecord) {
		t.Fatalf("expected ErrMissingRecord, got %v", err)
	}
	if err := svc.Submit(ctx, stroke("s1", 0, 0), ""); !errors.Is(err, ErrMissingAuthor) {
		t.Fatalf("expected ErrMissingAuthor, got %v", err)
	}
	bad := &boardmodel.Record{Kind: "wiggle"}
	if err := svc.Submit(ctx, bad, "u1"); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestSubmitMarksAuthorPresentAndFillsDefaults(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	sh := shape("", boardmodel.ShapeCircle, 50, 50)
	if err := svc.Submit(ctx, sh, "u1"); err != nil {
		t.Fatal(err)
	}

	recs, online, err := svc.Fetch(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].ID == "" {
		t.Fatal("shape should have been assigned an id")
	}
	if recs[0].Timestamp == 0 {
		t.Fatal("timestamp should have been set")
	}
	if recs[0].Author != "u1" {
		t.Fatalf("author should default to submitter, got %q", recs[0].Author)
	}
	if len(online) != 1 || online[0] != "u1" {
		t.Fatalf("submitter should be online, got %v", online)
	}
}

func TestFetchOrderScenario(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	a := stroke("s1", 0, 0)
	if err := svc.Submit(ctx, a, "u1"); err != nil {
		t.Fatal(err)
	}
	b := stroke("s2", 10, 10)
	b.PrevX = boardmodel.Float64Ptr(0)
	b.PrevY = boardmodel.Float64Ptr(0)
	if err := svc.Submit(ctx, b, "u1"); err != nil {
		t.Fatal(err)
	}

	recs, _, err := svc.Fetch(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 || recs[0].ID != "s1" || recs[1].ID != "s2" {
		t.Fatalf("expected [s1 s2] in order, got %+v", recs)
	}
}

func TestFetchEmptyStoreNeverFails(t *testing.T) {
	svc := newService(t)
	recs, online, err := svc.Fetch(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 0 || len(online) != 0 {
		t.Fatalf("expected empty collections, got %v %v", recs, online)
	}
}

func TestFetchRefreshesPresence(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if _, _, err := svc.Fetch(ctx, "viewer"); err != nil {
		t.Fatal(err)
	}
	_, online, err := svc.Fetch(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(online) != 1 || online[0] != "viewer" {
		t.Fatalf("fetch should mark caller present, got %v", online)
	}
}

func TestMoveShapeScenario(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if err := svc.Submit(ctx, shape("sh1", boardmodel.ShapeCircle, 50, 50), "u1"); err != nil {
		t.Fatal(err)
	}
	if err := svc.MoveShape(ctx, "sh1", 80, 80, "u1"); err != nil {
		t.Fatal(err)
	}

	recs, _, _ := svc.Fetch(ctx, "u1")
	var matches []boardmodel.Record
	for _, r := range recs {
		if r.ID == "sh1" {
			matches = append(matches, r)
		}
	}
	if len(matches) != 1 {
		t.Fatalf("expected exactly one sh1 record, got %d", len(matches))
	}
	if matches[0].X != 80 || matches[0].Y != 80 {
		t.Fatalf("expected (80,80), got (%v,%v)", matches[0].X, matches[0].Y)
	}
}

func TestMoveShapeRefreshesTimestamp(t *testing.T) {
	base := time.Now()
	clock := base
	svc := New(Deps{
		Canvas:   storemem.New(store.Limits{}),
		Presence: presence.New(presence.DefaultWindow),
		Now:      func() time.Time { return clock },
	})
	ctx := context.Background()

	if err := svc.Submit(ctx, shape("sh1", boardmodel.ShapeStar, 0, 0), "u1"); err != nil {
		t.Fatal(err)
	}
	clock = base.Add(10 * time.Minute)
	if err := svc.MoveShape(ctx, "sh1", 5, 5, "u1"); err != nil {
		t.Fatal(err)
	}

	recs, _, _ := svc.Fetch(ctx, "")
	if got := recs[0].Timestamp; got != clock.UnixMilli() {
		t.Fatalf("timestamp should refresh on move: got %d want %d", got, clock.UnixMilli())
	}
}

func TestMoveShapeMissingIDIsNoOp(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if err := svc.Submit(ctx, stroke("s1", 1, 1), "u1"); err != nil {
		t.Fatal(err)
	}
	before, _, _ := svc.Fetch(ctx, "")

	if err := svc.MoveShape(ctx, "nonexistent-id", 10, 10, "user1"); err != nil {
		t.Fatalf("move of unknown id must succeed, got %v", err)
	}

	after, _, _ := svc.Fetch(ctx, "")
	if !reflect.DeepEqual(before, after) {
		t.Fatal("store must be unchanged after no-op move")
	}
}

func TestDeleteShapeIsIdempotent(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_ = svc.Submit(ctx, shape("sh1", boardmodel.ShapeHeart, 10, 10), "u1")
	_ = svc.Submit(ctx, stroke("s1", 1, 1), "u1")

	if err := svc.DeleteShape(ctx, "sh1", "u1"); err != nil {
		t.Fatal(err)
	}
	once, _, _ := svc.Fetch(ctx, "")

	if err := svc.DeleteShape(ctx, "sh1", "u1"); err != nil {
		t.Fatal(err)
	}
	twice, _, _ := svc.Fetch(ctx, "")

	if !reflect.DeepEqual(once, twice) {
		t.Fatal("double delete must equal single delete")
	}
	if len(once) != 1 || once[0].ID != "s1" {
		t.Fatalf("only the stroke should remain, got %+v", once)
	}
}

func TestClearAllLeavesPresence(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_ = svc.Submit(ctx, stroke("s1", 1, 1), "u1")
	if _, _, err := svc.Fetch(ctx, "u2"); err != nil {
		t.Fatal(err)
	}

	if err := svc.ClearAll(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	recs, online, _ := svc.Fetch(ctx, "")
	if len(recs) != 0 {
		t.Fatalf("expected empty record collection, got %d", len(recs))
	}
	if len(online) != 2 {
		t.Fatalf("presence must survive clear, got %v", online)
	}
}

func TestClearAllRequiresAuthor(t *testing.T) {
	svc := newService(t)
	if err := svc.ClearAll(context.Background(), ""); !errors.Is(err, ErrMissingAuthor) {
		t.Fatalf("expected ErrMissingAuthor, got %v", err)
	}
}

func TestConvergenceTwoReaders(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_ = svc.Submit(ctx, stroke("s1", 0, 0), "u1")
	_ = svc.Submit(ctx, shape("sh1", boardmodel.ShapeRectangle, 20, 20), "u1")
	_ = svc.MoveShape(ctx, "sh1", 40, 40, "u2")
	_ = svc.DeleteShape(ctx, "missing", "u2")

	recsA, _, err := svc.Fetch(ctx, "clientA")
	if err != nil {
		t.Fatal(err)
	}
	recsB, _, err := svc.Fetch(ctx, "clientB")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(recsA, recsB) {
		t.Fatal("two fetches with no interleaved mutation must be identical")
	}
}
