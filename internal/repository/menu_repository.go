package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pizza-service/internal/domain"
)

// MenuRepository manages the pizza menu.
type MenuRepository interface {
	GetMenu(ctx context.Context) ([]domain.MenuItem, error)
	AddMenuItem(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error)
}

type menuRepository struct {
	pool *pgxpool.Pool
}

// NewMenuRepository constructs repository.
func NewMenuRepository(pool *pgxpool.Pool) MenuRepository {
	return &menuRepository{pool: pool}
}

func (r *menuRepository) GetMenu(ctx context.Context) ([]domain.MenuItem, error) {
	const query = `SELECT id, title, description, image, price FROM menu ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.MenuItem, error) {
		var item domain.MenuItem
		err := row.Scan(&item.ID, &item.Title, &item.Description, &item.Image, &item.Price)
		return item, err
	})
}

func (r *menuRepository) AddMenuItem(ctx context.Context, item domain.MenuItem) (*domain.MenuItem, error) {
	const query = `
        INSERT INTO menu (title, description, image, price)
        VALUES ($1, $2, $3, $4)
        RETURNING id`
	if err := r.pool.QueryRow(ctx, query, item.Title, item.Description, item.Image, item.Price).Scan(&item.ID); err != nil {
		return nil, err
	}
	return &item, nil
}
