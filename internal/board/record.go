// Package board contains the domain model of the shared canvas: the mutation
// record that every visible change is expressed as, plus validation helpers.
package board

import (
	"fmt"
	"time"
)

// Kind identifies what a record changes on the canvas.
type Kind string

const (
	// KindDraw is a pen stroke segment.
	KindDraw Kind = "draw"
	// KindErase is an eraser stroke segment.
	KindErase Kind = "erase"
	// KindShape places a shape on the canvas.
	KindShape Kind = "shape"
)

// Shape types accepted for KindShape records.
const (
	ShapeRectangle = "rectangle"
	ShapeCircle    = "circle"
	ShapeTriangle  = "triangle"
	ShapeStar      = "star"
	ShapeHeart     = "heart"
	ShapeArrow     = "arrow"
	ShapeLine      = "line"
	ShapeText      = "text"
)

// AnonymousAuthor is used when a record arrives without a known author.
const AnonymousAuthor = "anonymous"

// Record is one atomic canvas change. Replaying a board's records front to
// back reproduces the canonical visual state, so insertion order is the only
// authoritative ordering; Timestamp drives age-based eviction only.
//
// Wire names match the original client payloads.
type Record struct {
	Kind Kind   `json:"type"`
	ID   string `json:"id,omitempty"`

	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	PrevX *float64 `json:"prevX,omitempty"`
	PrevY *float64 `json:"prevY,omitempty"`

	StrokeWidth float64 `json:"strokeWidth"`
	Color       string  `json:"color"`

	// Shape metadata, only meaningful for KindShape.
	ShapeType string  `json:"shapeType,omitempty"`
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
	Text      string  `json:"text,omitempty"`

	Author    string `json:"userId"`
	Timestamp int64  `json:"timestamp"` // unix millis
}

// ValidKind reports whether k is one of the accepted record kinds.
func ValidKind(k Kind) bool {
	switch k {
	case KindDraw, KindErase, KindShape:
		return true
	}
	return false
}

// ValidShapeType reports whether s is a known shape type.
func ValidShapeType(s string) bool {
	switch s {
	case ShapeRectangle, ShapeCircle, ShapeTriangle, ShapeStar,
		ShapeHeart, ShapeArrow, ShapeLine, ShapeText:
		return true
	}
	return false
}

// IsShape reports whether the record is a shape placement (the only mutable,
// individually addressable record kind).
func (r Record) IsShape() bool { return r.Kind == KindShape }

// Age returns how old the record is relative to now.
func (r Record) Age(now time.Time) time.Duration {
	return now.Sub(time.UnixMilli(r.Timestamp))
}

// Validate checks structural validity. Geometry is not validated; the store
// trusts its callers on coordinates.
func (r Record) Validate() error {
	if !ValidKind(r.Kind) {
		return fmt.Errorf("board: unknown record kind %q", r.Kind)
	}
	if r.Kind == KindShape {
		if r.ShapeType != "" && !ValidShapeType(r.ShapeType) {
			return fmt.Errorf("board: unknown shape type %q", r.ShapeType)
		}
		if r.ID == "" {
			return fmt.Errorf("board: shape record requires an id")
		}
	}
	// Segments carry either both previous coordinates or none.
	if (r.PrevX == nil) != (r.PrevY == nil) {
		return fmt.Errorf("board: prevX and prevY must be set together")
	}
	return nil
}

// Touch refreshes the record timestamp to now.
func (r *Record) Touch(now time.Time) { r.Timestamp = now.UnixMilli() }

// Float64Ptr is a small helper for building segment records.
func Float64Ptr(v float64) *float64 { return &v }
