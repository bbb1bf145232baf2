// Package memory implementa el users.Store en memoria.
// Las cuentas no sobreviven un restart; igual que el sistema original.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dropDatabas3/inkboard/internal/users"
	"github.com/google/uuid"
)

type Store struct {
	mu      sync.RWMutex
	byID    map[string]users.User
	byEmail map[string]string // email -> id
}

func New() *Store {
	return &Store{
		byID:    make(map[string]users.User),
		byEmail: make(map[string]string),
	}
}

func normEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Store) Create(ctx context.Context, u users.User) (users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := normEmail(u.Email)
	if _, ok := s.byEmail[email]; ok {
		return users.User{}, users.ErrEmailTaken
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.Email = email

	s.byID[u.ID] = u
	s.byEmail[email] = u.ID
	return u, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (users.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[normEmail(email)]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return s.byID[id], nil
}

func (s *Store) GetByID(ctx context.Context, id string) (users.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return users.ErrNotFound
	}
	delete(s.byID, id)
	delete(s.byEmail, u.Email)
	return nil
}
