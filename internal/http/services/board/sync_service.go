// Package board implementa el Sync Service: el contrato público del engine.
// Todas las operaciones son seguras bajo concurrencia; el store serializa las
// escrituras y dos move/delete simultáneos sobre el mismo id resuelven por
// last-write-wins (sin detección de conflictos, igual que el original).
package board

import (
	"context"
	"fmt"
	"time"

	boardmodel "github.com/dropDatabas3/inkboard/internal/board"
	"github.com/dropDatabas3/inkboard/internal/metrics"
	"github.com/dropDatabas3/inkboard/internal/observability/logger"
	"github.com/dropDatabas3/inkboard/internal/presence"
	"github.com/dropDatabas3/inkboard/internal/store"
	"github.com/google/uuid"
)

// SyncService defines the operations that mediate all access to the canvas
// store and the presence tracker.
type SyncService interface {
	Submit(ctx context.Context, rec *boardmodel.Record, authorID string) error
	Fetch(ctx context.Context, authorID string) ([]boardmodel.Record, []string, error)
	MoveShape(ctx context.Context, shapeID string, x, y float64, authorID string) error
	DeleteShape(ctx context.Context, shapeID, authorID string) error
	ClearAll(ctx context.Context, authorID string) error
}

// Service errors
var (
	ErrMissingRecord  = fmt.Errorf("record is required")
	ErrMissingAuthor  = fmt.Errorf("authorId is required")
	ErrMissingShapeID = fmt.Errorf("shapeId is required")
	ErrInvalidRecord  = fmt.Errorf("record is invalid")
)

// Deps contains dependencies for the sync service.
type Deps struct {
	Canvas   store.Canvas
	Presence *presence.Tracker
	Now      func() time.Time // tests override this
}

type syncService struct {
	canvas   store.Canvas
	presence *presence.Tracker
	now      func() time.Time
}

// New creates a SyncService.
func New(deps Deps) SyncService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &syncService{
		canvas:   deps.Canvas,
		presence: deps.Presence,
		now:      now,
	}
}

// Submit valida record y author, completa defaults (id para shapes,
// timestamp) y lo agrega al canvas. El author queda marcado como presente.
func (s *syncService) Submit(ctx context.Context, rec *boardmodel.Record, authorID string) error {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("Submit"))

	if rec == nil {
		return ErrMissingRecord
	}
	if authorID == "" {
		return ErrMissingAuthor
	}

	r := *rec
	if r.Author == "" {
		r.Author = authorID
	}
	if r.Timestamp == 0 {
		r.Touch(s.now())
	}
	// Shapes sin id reciben uno: move/delete necesitan records direccionables.
	if r.IsShape() && r.ID == "" {
		r.ID = uuid.NewString()
	}
	if err := r.Validate(); err != nil {
		log.Debug("record rejected", logger.Err(err))
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	if err := s.canvas.Append(ctx, r); err != nil {
		return err
	}
	s.presence.MarkPresent(authorID)
	metrics.BoardSubmits.Inc()

	log.Debug("record appended",
		logger.RecordKind(string(r.Kind)),
		logger.AuthorID(authorID),
	)
	return nil
}

// Fetch devuelve el snapshot completo y la lista de presencia. Si authorID
// no es vacío, lo marca presente: así es como un cliente sigue "online".
func (s *syncService) Fetch(ctx context.Context, authorID string) ([]boardmodel.Record, []string, error) {
	if authorID != "" {
		s.presence.MarkPresent(authorID)
	}

	recs, err := s.canvas.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	metrics.BoardFetches.Inc()
	return recs, s.presence.List(), nil
}

// MoveShape reescribe posición y timestamp de cada record con el id dado.
// Si ninguno matchea es un no-op silencioso: la operación es idempotente y
// reintentable.
func (s *syncService) MoveShape(ctx context.Context, shapeID string, x, y float64, authorID string) error {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("MoveShape"))

	if shapeID == "" {
		return ErrMissingShapeID
	}
	if authorID == "" {
		return ErrMissingAuthor
	}

	recs, err := s.canvas.Snapshot(ctx)
	if err != nil {
		return err
	}

	matched := 0
	now := s.now()
	for i := range recs {
		if recs[i].ID == shapeID {
			recs[i].X = x
			recs[i].Y = y
			recs[i].Touch(now)
			matched++
		}
	}
	if matched == 0 {
		// Ya convergió: un move que perdió contra un delete no es un error.
		metrics.BoardMoves.Inc()
		return nil
	}

	if err := s.canvas.ReplaceAll(ctx, recs); err != nil {
		return err
	}
	s.presence.MarkPresent(authorID)
	metrics.BoardMoves.Inc()

	log.Debug("shape moved",
		logger.ShapeID(shapeID),
		logger.AuthorID(authorID),
		logger.Count(matched),
	)
	return nil
}

// DeleteShape remueve cada record con el id dado y reescribe el resto.
// No-op si nada matchea.
func (s *syncService) DeleteShape(ctx context.Context, shapeID, authorID string) error {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("DeleteShape"))

	if shapeID == "" {
		return ErrMissingShapeID
	}
	if authorID == "" {
		return ErrMissingAuthor
	}

	recs, err := s.canvas.Snapshot(ctx)
	if err != nil {
		return err
	}

	kept := recs[:0]
	for _, r := range recs {
		if r.ID != shapeID {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(recs) {
		metrics.BoardDeletes.Inc()
		return nil
	}

	if err := s.canvas.ReplaceAll(ctx, kept); err != nil {
		return err
	}
	s.presence.MarkPresent(authorID)
	metrics.BoardDeletes.Inc()

	log.Debug("shape deleted",
		logger.ShapeID(shapeID),
		logger.AuthorID(authorID),
		logger.Count(len(recs)-len(kept)),
	)
	return nil
}

// ClearAll vacía el canvas sin confirmación ni undo: el reset rápido de un
// canvas compartido. La presencia no se toca.
func (s *syncService) ClearAll(ctx context.Context, authorID string) error {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("ClearAll"))

	if authorID == "" {
		return ErrMissingAuthor
	}

	if err := s.canvas.Clear(ctx); err != nil {
		return err
	}
	s.presence.MarkPresent(authorID)
	metrics.BoardClears.Inc()

	log.Info("canvas cleared", logger.AuthorID(authorID))
	return nil
}
