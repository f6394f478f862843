package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pizza-service/internal/auth"
)

// SessionRepository persists logged-in tokens by fingerprint. It satisfies auth.SessionStore.
type SessionRepository interface {
	auth.SessionStore
}

type sessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository returns a Postgres-backed implementation.
func NewSessionRepository(pool *pgxpool.Pool) SessionRepository {
	return &sessionRepository{pool: pool}
}

func (r *sessionRepository) RecordLogin(ctx context.Context, userID int64, token string) error {
	const query = `
        INSERT INTO auth_sessions (token, user_id)
        VALUES ($1, $2)
        ON CONFLICT (token) DO UPDATE SET user_id = EXCLUDED.user_id`
	_, err := r.pool.Exec(ctx, query, auth.Fingerprint(token), userID)
	return err
}

func (r *sessionRepository) RecordLogout(ctx context.Context, token string) error {
	const query = `DELETE FROM auth_sessions WHERE token=$1`
	_, err := r.pool.Exec(ctx, query, auth.Fingerprint(token))
	return err
}

func (r *sessionRepository) IsActive(ctx context.Context, token string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM auth_sessions WHERE token=$1)`
	var active bool
	if err := r.pool.QueryRow(ctx, query, auth.Fingerprint(token)).Scan(&active); err != nil {
		return false, err
	}
	return active, nil
}
