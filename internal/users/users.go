// Package users almacena las cuentas que el frente de autenticación usa para
// etiquetar authorIDs. El engine del canvas no depende de este paquete.
package users

import (
	"context"
	"errors"
	"time"
)

// User is a registered participant account.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

var (
	ErrNotFound   = errors.New("users: not found")
	ErrEmailTaken = errors.New("users: email already registered")
)

// Store define el acceso a cuentas. Adapters: memory (default) y pg.
type Store interface {
	Create(ctx context.Context, u User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Delete(ctx context.Context, id string) error
}
