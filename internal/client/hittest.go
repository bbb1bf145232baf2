package client

import (
	"math"

	"github.com/dropDatabas3/inkboard/internal/board"
)

// defaultHitSize se usa cuando el shape no trae width.
const defaultHitSize = 50

// PointInShape reporta si (x, y) cae dentro del record. Solo los shapes son
// hit-testeables; strokes y erases no se seleccionan.
func PointInShape(x, y float64, r board.Record) bool {
	if !r.IsShape() {
		return false
	}

	size := r.Width
	if size == 0 {
		size = defaultHitSize
	}
	dx := x - r.X
	dy := y - r.Y

	switch r.ShapeType {
	case board.ShapeCircle, board.ShapeStar, board.ShapeHeart:
		return math.Sqrt(dx*dx+dy*dy) <= size/2
	case board.ShapeArrow, board.ShapeLine:
		return math.Abs(dx) <= size/2 && math.Abs(dy) <= 10
	case board.ShapeText:
		return math.Abs(dx) <= size/2 && math.Abs(dy) <= size/4
	default:
		// rectangle, triangle y tipos desconocidos: bounding box.
		return math.Abs(dx) <= size/2 && math.Abs(dy) <= size/2
	}
}

// ShapeAt devuelve el shape visible más arriba en (x, y): el más nuevo gana,
// igual que el z-order de render. Nil si no hay ninguno.
func ShapeAt(x, y float64, recs []board.Record) *board.Record {
	for i := len(recs) - 1; i >= 0; i-- {
		if PointInShape(x, y, recs[i]) {
			r := recs[i]
			return &r
		}
	}
	return nil
}
