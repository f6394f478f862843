package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pizza-service/internal/domain"
)

// OrderRepository stores diner orders.
type OrderRepository interface {
	GetOrders(ctx context.Context, dinerID int64, page int) (*domain.OrderPage, error)
	AddDinerOrder(ctx context.Context, dinerID int64, req domain.OrderRequest) (*domain.Order, error)
}

type orderRepository struct {
	pool        *pgxpool.Pool
	listPerPage int
}

// NewOrderRepository constructs repository.
func NewOrderRepository(pool *pgxpool.Pool, listPerPage int) OrderRepository {
	if listPerPage <= 0 {
		listPerPage = 10
	}
	return &orderRepository{pool: pool, listPerPage: listPerPage}
}

// GetOrders returns one page of orders; pages start at 1.
func (r *orderRepository) GetOrders(ctx context.Context, dinerID int64, page int) (*domain.OrderPage, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * r.listPerPage

	const query = `
        SELECT id, franchise_id, store_id, date
        FROM diner_orders WHERE diner_id=$1
        ORDER BY id
        LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, dinerID, r.listPerPage, offset)
	if err != nil {
		return nil, err
	}
	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Order, error) {
		var o domain.Order
		err := row.Scan(&o.ID, &o.FranchiseID, &o.StoreID, &o.Date)
		return o, err
	})
	if err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.listItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return &domain.OrderPage{DinerID: dinerID, Orders: orders, Page: page}, nil
}

func (r *orderRepository) AddDinerOrder(ctx context.Context, dinerID int64, req domain.OrderRequest) (*domain.Order, error) {
	order := domain.Order{FranchiseID: req.FranchiseID, StoreID: req.StoreID, Items: make([]domain.OrderItem, 0, len(req.Items))}

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		const insertOrder = `
        INSERT INTO diner_orders (diner_id, franchise_id, store_id, date)
        VALUES ($1, $2, $3, NOW())
        RETURNING id, date`
		if err := tx.QueryRow(ctx, insertOrder, dinerID, req.FranchiseID, req.StoreID).Scan(&order.ID, &order.Date); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		const insertItem = `
        INSERT INTO order_items (order_id, menu_id, description, price)
        VALUES ($1, $2, $3, $4)
        RETURNING id`
		for _, item := range req.Items {
			if err := tx.QueryRow(ctx, insertItem, order.ID, item.MenuID, item.Description, item.Price).Scan(&item.ID); err != nil {
				return fmt.Errorf("insert order item %d: %w", item.MenuID, err)
			}
			order.Items = append(order.Items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) listItems(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	const query = `SELECT id, menu_id, description, price FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.OrderItem, error) {
		var item domain.OrderItem
		err := row.Scan(&item.ID, &item.MenuID, &item.Description, &item.Price)
		return item, err
	})
}
