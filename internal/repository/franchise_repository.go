package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pizza-service/internal/domain"
	apperrors "github.com/spec-kit/pizza-service/pkg/util/errorutil"
)

// FranchiseRepository manages franchises, their admins and stores.
type FranchiseRepository interface {
	// GetFranchises lists franchises by name. withDetails adds admins and store revenue.
	GetFranchises(ctx context.Context, query domain.ListQuery, withDetails bool) ([]domain.Franchise, bool, error)
	GetUserFranchises(ctx context.Context, userID int64) ([]domain.Franchise, error)
	CreateFranchise(ctx context.Context, franchise domain.Franchise) (*domain.Franchise, error)
	DeleteFranchise(ctx context.Context, franchiseID int64) error
	// GetFranchise returns nil without error when the franchise does not exist.
	GetFranchise(ctx context.Context, franchiseID int64) (*domain.Franchise, error)
	CreateStore(ctx context.Context, franchiseID int64, store domain.Store) (*domain.Store, error)
	DeleteStore(ctx context.Context, franchiseID, storeID int64) error
}

type franchiseRepository struct {
	pool *pgxpool.Pool
}

// NewFranchiseRepository constructs repository.
func NewFranchiseRepository(pool *pgxpool.Pool) FranchiseRepository {
	return &franchiseRepository{pool: pool}
}

func (r *franchiseRepository) GetFranchises(ctx context.Context, q domain.ListQuery, withDetails bool) ([]domain.Franchise, bool, error) {
	limit, offset := pageWindow(q.Page, q.Limit, 0)

	const query = `
        SELECT id, name FROM franchises
        WHERE name LIKE $1
        ORDER BY id
        LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, namePattern(q.Name), limit, offset)
	if err != nil {
		return nil, false, err
	}
	franchises, err := pgx.CollectRows(rows, scanFranchise)
	if err != nil {
		return nil, false, err
	}

	more := len(franchises) == limit
	if more {
		franchises = franchises[:limit-1]
	}

	for i := range franchises {
		if withDetails {
			err = r.loadDetails(ctx, &franchises[i])
		} else {
			franchises[i].Stores, err = r.listStores(ctx, franchises[i].ID, false)
		}
		if err != nil {
			return nil, false, err
		}
	}
	return franchises, more, nil
}

func (r *franchiseRepository) GetUserFranchises(ctx context.Context, userID int64) ([]domain.Franchise, error) {
	const query = `
        SELECT f.id, f.name FROM franchises f
        JOIN user_roles ur ON ur.object_id = f.id AND ur.role = $2
        WHERE ur.user_id = $1
        ORDER BY f.id`

	rows, err := r.pool.Query(ctx, query, userID, domain.RoleFranchisee)
	if err != nil {
		return nil, err
	}
	franchises, err := pgx.CollectRows(rows, scanFranchise)
	if err != nil {
		return nil, err
	}
	for i := range franchises {
		if err := r.loadDetails(ctx, &franchises[i]); err != nil {
			return nil, err
		}
	}
	return franchises, nil
}

// CreateFranchise resolves every admin by email and grants them the franchisee role.
func (r *franchiseRepository) CreateFranchise(ctx context.Context, franchise domain.Franchise) (*domain.Franchise, error) {
	created := domain.Franchise{Name: franchise.Name, Admins: make([]domain.FranchiseAdmin, 0, len(franchise.Admins)), Stores: []domain.Store{}}

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for _, admin := range franchise.Admins {
			resolved := domain.FranchiseAdmin{Email: admin.Email}
			err := tx.QueryRow(ctx, `SELECT id, name FROM users WHERE email=$1`, admin.Email).Scan(&resolved.ID, &resolved.Name)
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewDomainError("NOT_FOUND",
					fmt.Sprintf("unknown user for franchise admin %s provided", admin.Email),
					http.StatusNotFound, nil)
			}
			if err != nil {
				return err
			}
			created.Admins = append(created.Admins, resolved)
		}

		if err := tx.QueryRow(ctx, `INSERT INTO franchises (name) VALUES ($1) RETURNING id`, franchise.Name).Scan(&created.ID); err != nil {
			return fmt.Errorf("insert franchise: %w", err)
		}

		for _, admin := range created.Admins {
			franchiseID := created.ID
			role := domain.RoleAssignment{Role: domain.RoleFranchisee, ObjectID: &franchiseID}
			if err := insertRoles(ctx, tx, admin.ID, []domain.RoleAssignment{role}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *franchiseRepository) DeleteFranchise(ctx context.Context, franchiseID int64) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE role=$1 AND object_id=$2`, domain.RoleFranchisee, franchiseID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM stores WHERE franchise_id=$1`, franchiseID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `DELETE FROM franchises WHERE id=$1`, franchiseID)
		return err
	})
}

func (r *franchiseRepository) GetFranchise(ctx context.Context, franchiseID int64) (*domain.Franchise, error) {
	var franchise domain.Franchise
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM franchises WHERE id=$1`, franchiseID).Scan(&franchise.ID, &franchise.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadDetails(ctx, &franchise); err != nil {
		return nil, err
	}
	return &franchise, nil
}

func (r *franchiseRepository) CreateStore(ctx context.Context, franchiseID int64, store domain.Store) (*domain.Store, error) {
	const query = `
        INSERT INTO stores (franchise_id, name)
        VALUES ($1, $2)
        RETURNING id`
	created := domain.Store{FranchiseID: franchiseID, Name: store.Name}
	if err := r.pool.QueryRow(ctx, query, franchiseID, store.Name).Scan(&created.ID); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *franchiseRepository) DeleteStore(ctx context.Context, franchiseID, storeID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM stores WHERE franchise_id=$1 AND id=$2`, franchiseID, storeID)
	return err
}

func (r *franchiseRepository) loadDetails(ctx context.Context, franchise *domain.Franchise) error {
	const adminsQuery = `
        SELECT u.id, u.name, u.email FROM user_roles ur
        JOIN users u ON u.id = ur.user_id
        WHERE ur.object_id = $1 AND ur.role = $2
        ORDER BY u.id`

	rows, err := r.pool.Query(ctx, adminsQuery, franchise.ID, domain.RoleFranchisee)
	if err != nil {
		return err
	}
	admins, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.FranchiseAdmin, error) {
		var admin domain.FranchiseAdmin
		err := row.Scan(&admin.ID, &admin.Name, &admin.Email)
		return admin, err
	})
	if err != nil {
		return err
	}
	franchise.Admins = admins

	franchise.Stores, err = r.listStores(ctx, franchise.ID, true)
	return err
}

func (r *franchiseRepository) listStores(ctx context.Context, franchiseID int64, withRevenue bool) ([]domain.Store, error) {
	const query = `
        SELECT s.id, s.name, COALESCE(SUM(oi.price), 0)
        FROM stores s
        LEFT JOIN diner_orders o ON o.store_id = s.id
        LEFT JOIN order_items oi ON oi.order_id = o.id
        WHERE s.franchise_id = $1
        GROUP BY s.id, s.name
        ORDER BY s.id`

	rows, err := r.pool.Query(ctx, query, franchiseID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Store, error) {
		var (
			store   domain.Store
			revenue float64
		)
		if err := row.Scan(&store.ID, &store.Name, &revenue); err != nil {
			return store, err
		}
		if withRevenue {
			store.TotalRevenue = &revenue
		}
		return store, nil
	})
}

func scanFranchise(row pgx.CollectableRow) (domain.Franchise, error) {
	var f domain.Franchise
	err := row.Scan(&f.ID, &f.Name)
	return f, err
}
