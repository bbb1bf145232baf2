// Package board contiene los controllers del canvas compartido.
package board

import (
	svc "github.com/dropDatabas3/inkboard/internal/http/services/board"
)

// Controllers agrupa todos los controllers del dominio board.
type Controllers struct {
	Submit *SubmitController
	Fetch  *FetchController
	Move   *MoveController
	Delete *DeleteController
	Clear  *ClearController
	Stream *StreamController
}

// NewControllers crea el agregador de controllers board.
func NewControllers(s svc.SyncService) *Controllers {
	return &Controllers{
		Submit: NewSubmitController(s),
		Fetch:  NewFetchController(s),
		Move:   NewMoveController(s),
		Delete: NewDeleteController(s),
		Clear:  NewClearController(s),
		Stream: NewStreamController(s),
	}
}
