package board

import (
	boardmodel "github.com/dropDatabas3/inkboard/internal/board"
)

// SubmitRequest represents the request body for POST /api/board/submit.
type SubmitRequest struct {
	// Drawing is required: the mutation record to append.
	Drawing *boardmodel.Record `json:"drawing"`
	// UserID is required: the submitting participant.
	UserID string `json:"userId"`
}

// FetchResponse is the full-state payload every client converges toward.
type FetchResponse struct {
	Records []boardmodel.Record `json:"records"`
	Online  []string            `json:"online"`
}

// MoveRequest represents the request body for POST /api/board/move.
type MoveRequest struct {
	ShapeID string   `json:"shapeId"`
	X       *float64 `json:"x"`
	Y       *float64 `json:"y"`
	UserID  string   `json:"userId"`
}

// DeleteRequest represents the request body for POST /api/board/delete.
type DeleteRequest struct {
	ShapeID string `json:"shapeId"`
	UserID  string `json:"userId"`
}

// ClearRequest represents the request body for POST /api/board/clear.
type ClearRequest struct {
	UserID string `json:"userId"`
}

// OKResponse acknowledges a successful mutation.
type OKResponse struct {
	OK bool `json:"ok"`
}
