// Package pg implementa users.Store para PostgreSQL.
package pg

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/inkboard/internal/users"
	"github.com/google/uuid"
)

type Store struct{ pool *pgxpool.Pool }

// New abre un pool contra el DSN y verifica la conexión.
func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pg: pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ping: %w", err)
	}
	return &Store{pool: pool}, nil
}

// NewWithPool envuelve un pool existente (tests).
func NewWithPool(pool *pgxpool.Pool) *Store { return &Store{pool: pool} }

// Close libera el pool.
func (s *Store) Close() { s.pool.Close() }

// Ping verifica la conexión; lo usa el readiness check.
func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *Store) Create(ctx context.Context, u users.User) (users.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	const query = `
		INSERT INTO app_user (id, first_name, last_name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.pool.Exec(ctx, query, u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 = unique_violation (email único)
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return users.User{}, users.ErrEmailTaken
		}
		return users.User{}, err
	}
	return u, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (users.User, error) {
	const query = `
		SELECT id, first_name, last_name, email, password_hash, created_at
		FROM app_user WHERE email = $1
	`
	return s.scanOne(ctx, query, strings.ToLower(strings.TrimSpace(email)))
}

func (s *Store) GetByID(ctx context.Context, id string) (users.User, error) {
	const query = `
		SELECT id, first_name, last_name, email, password_hash, created_at
		FROM app_user WHERE id = $1
	`
	return s.scanOne(ctx, query, id)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM app_user WHERE id = $1`
	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (s *Store) scanOne(ctx context.Context, query string, arg any) (users.User, error) {
	var u users.User
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return users.User{}, users.ErrNotFound
	}
	return u, err
}
