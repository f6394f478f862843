package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pizza-service/internal/auth"
	"github.com/spec-kit/pizza-service/internal/domain"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	AddUser(ctx context.Context, user *domain.User, password string) (*domain.User, error)
	GetUser(ctx context.Context, email, password string) (*domain.User, error)
	UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error)
	ListUsers(ctx context.Context, query domain.ListQuery) ([]domain.User, bool, error)
}

type userRepository struct {
	pool   *pgxpool.Pool
	hasher auth.PasswordHasher
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool, hasher auth.PasswordHasher) UserRepository {
	return &userRepository{pool: pool, hasher: hasher}
}

func (r *userRepository) AddUser(ctx context.Context, user *domain.User, password string) (*domain.User, error) {
	hash, err := r.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	roles := user.Roles
	if len(roles) == 0 {
		roles = []domain.RoleAssignment{{Role: domain.RoleDiner}}
	}

	created := &domain.User{Name: user.Name, Email: user.Email, Roles: roles}
	err = pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		const insertUser = `
        INSERT INTO users (name, email, password)
        VALUES ($1, $2, $3)
        RETURNING id`
		if err := tx.QueryRow(ctx, insertUser, user.Name, user.Email, hash).Scan(&created.ID); err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		return insertRoles(ctx, tx, created.ID, roles)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *userRepository) GetUser(ctx context.Context, email, password string) (*domain.User, error) {
	const query = `
        SELECT id, name, email, password
        FROM users WHERE email=$1`

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	if !r.hasher.Matches(user.PasswordHash, password) {
		return nil, ErrUnknownUser
	}
	user.PasswordHash = ""

	roles, err := loadRoles(ctx, r.pool, user.ID)
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	return &user, nil
}

// UpdateUser changes only the non-empty fields of patch.
func (r *userRepository) UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (*domain.User, error) {
	var hash *string
	if patch.Password != "" {
		hashed, err := r.hasher.Hash(patch.Password)
		if err != nil {
			return nil, err
		}
		hash = &hashed
	}

	const query = `
        UPDATE users SET
            name = COALESCE(NULLIF($1, ''), name),
            email = COALESCE(NULLIF($2, ''), email),
            password = COALESCE($3, password)
        WHERE id=$4`

	cmd, err := r.pool.Exec(ctx, query, patch.Name, patch.Email, hash, id)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}
	return r.getByID(ctx, id)
}

func (r *userRepository) ListUsers(ctx context.Context, q domain.ListQuery) ([]domain.User, bool, error) {
	limit, offset := pageWindow(q.Page, q.Limit, 1)

	const query = `
        SELECT id, name, email
        FROM users WHERE name LIKE $1
        ORDER BY id
        LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, namePattern(q.Name), limit, offset)
	if err != nil {
		return nil, false, err
	}
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.User, error) {
		var u domain.User
		err := row.Scan(&u.ID, &u.Name, &u.Email)
		return u, err
	})
	if err != nil {
		return nil, false, err
	}

	more := len(users) == limit
	if more {
		users = users[:limit-1]
	}
	for i := range users {
		roles, err := loadRoles(ctx, r.pool, users[i].ID)
		if err != nil {
			return nil, false, err
		}
		users[i].Roles = roles
	}
	return users, more, nil
}

func (r *userRepository) getByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `SELECT id, name, email FROM users WHERE id=$1`

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, id).Scan(&user.ID, &user.Name, &user.Email); err != nil {
		return nil, err
	}
	roles, err := loadRoles(ctx, r.pool, id)
	if err != nil {
		return nil, err
	}
	user.Roles = roles
	return &user, nil
}

func insertRoles(ctx context.Context, q querier, userID int64, roles []domain.RoleAssignment) error {
	const query = `INSERT INTO user_roles (user_id, role, object_id) VALUES ($1, $2, $3)`
	for _, role := range roles {
		if _, err := q.Exec(ctx, query, userID, role.Role, role.ObjectID); err != nil {
			return fmt.Errorf("insert role %s: %w", role.Role, err)
		}
	}
	return nil
}

func loadRoles(ctx context.Context, q querier, userID int64) ([]domain.RoleAssignment, error) {
	const query = `SELECT role, object_id FROM user_roles WHERE user_id=$1 ORDER BY id`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RoleAssignment, error) {
		var role domain.RoleAssignment
		err := row.Scan(&role.Role, &role.ObjectID)
		return role, err
	})
}
