package client

import (
	"testing"

	"github.com/dropDatabas3/inkboard/internal/board"
)

func shape(id, shapeType string, x, y, width float64) board.Record {
	return board.Record{
		Kind:      board.KindShape,
		ID:        id,
		ShapeType: shapeType,
		X:         x,
		Y:         y,
		Width:     width,
	}
}

func TestPointInShape(t *testing.T) {
	cases := []struct {
		name string
		rec  board.Record
		x, y float64
		want bool
	}{
		{"rectangle inside", shape("a", board.ShapeRectangle, 100, 100, 60), 120, 120, true},
		{"rectangle corner", shape("a", board.ShapeRectangle, 100, 100, 60), 130, 130, true},
		{"rectangle outside", shape("a", board.ShapeRectangle, 100, 100, 60), 131, 100, false},
		{"circle corner miss", shape("b", board.ShapeCircle, 100, 100, 60), 122, 122, false}, // dist ~31.1 > 30
		{"circle center", shape("b", board.ShapeCircle, 100, 100, 60), 100, 125, true},
		{"star uses radius", shape("c", board.ShapeStar, 0, 0, 100), 40, 30, true},
		{"line is a thin band", shape("d", board.ShapeLine, 100, 100, 80), 130, 109, true},
		{"line outside band", shape("d", board.ShapeLine, 100, 100, 80), 130, 111, false},
		{"text quarter height", shape("e", board.ShapeText, 100, 100, 80), 100, 119, true},
		{"text below band", shape("e", board.ShapeText, 100, 100, 80), 100, 121, false},
		{"default size when width missing", shape("f", board.ShapeRectangle, 100, 100, 0), 124, 100, true},
		{"stroke never hit-testable", board.Record{Kind: board.KindDraw, X: 100, Y: 100}, 100, 100, false},
	}
	for _, tc := range cases {
		if got := PointInShape(tc.x, tc.y, tc.rec); got != tc.want {
			t.Errorf("%s: PointInShape(%v, %v) = %v, want %v", tc.name, tc.x, tc.y, got, tc.want)
		}
	}
}

func TestShapeAtPicksNewest(t *testing.T) {
	recs := []board.Record{
		shape("older", board.ShapeRectangle, 100, 100, 60),
		{Kind: board.KindDraw, X: 100, Y: 100},
		shape("newer", board.ShapeRectangle, 100, 100, 60),
	}

	got := ShapeAt(100, 100, recs)
	if got == nil || got.ID != "newer" {
		t.Fatalf("expected newest shape on top, got %+v", got)
	}

	if got := ShapeAt(500, 500, recs); got != nil {
		t.Fatalf("expected no hit far away, got %+v", got)
	}
}
