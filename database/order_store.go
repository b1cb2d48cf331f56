package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"commerce-service/models"
)

type OrderStore struct {
	db *sql.DB
}

func NewOrderStore(db *sql.DB) *OrderStore {
	return &OrderStore{db: db}
}

// CreateOrder 订单头和订单项在一个事务里落库。
func (s *OrderStore) CreateOrder(ctx context.Context, order *models.Order) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO orders (user_id, total, status, ship_full_name, ship_street, ship_city, ship_state, ship_zip_code, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.UserID, order.Total, order.Status,
		order.Shipping.FullName, order.Shipping.Street, order.Shipping.City,
		order.Shipping.State, order.Shipping.ZipCode,
		order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	orderID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("order insert id: %w", err)
	}

	for _, item := range order.Items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, product_name, quantity, price)
			 VALUES (?, ?, ?, ?, ?)`,
			orderID, item.ProductID, item.ProductName, item.Quantity, item.Price); err != nil {
			return 0, fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit order: %w", err)
	}
	return int(orderID), nil
}

func (s *OrderStore) GetOrder(ctx context.Context, id int) (*models.Order, error) {
	var o models.Order
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, total, status, ship_full_name, ship_street, ship_city, ship_state, ship_zip_code, created_at, updated_at
		 FROM orders WHERE id = ?`, id).Scan(
		&o.ID, &o.UserID, &o.Total, &o.Status,
		&o.Shipping.FullName, &o.Shipping.Street, &o.Shipping.City,
		&o.Shipping.State, &o.Shipping.ZipCode,
		&o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan order: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT product_id, product_name, quantity, price FROM order_items WHERE order_id = ? ORDER BY id", id)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	return &o, rows.Err()
}

func (s *OrderStore) ListOrdersByUser(ctx context.Context, userID int) ([]models.Order, error) {
	return s.listOrders(ctx,
		`SELECT o.id, o.user_id, o.total, o.status,
		        o.ship_full_name, o.ship_street, o.ship_city, o.ship_state, o.ship_zip_code,
		        o.created_at, o.updated_at,
		        oi.product_id, oi.product_name, oi.quantity, oi.price
		 FROM orders o
		 JOIN order_items oi ON o.id = oi.order_id
		 WHERE o.user_id = ?
		 ORDER BY o.created_at DESC, oi.id ASC`, userID)
}

func (s *OrderStore) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.listOrders(ctx,
		`SELECT o.id, o.user_id, o.total, o.status,
		        o.ship_full_name, o.ship_street, o.ship_city, o.ship_state, o.ship_zip_code,
		        o.created_at, o.updated_at,
		        oi.product_id, oi.product_name, oi.quantity, oi.price
		 FROM orders o
		 JOIN order_items oi ON o.id = oi.order_id
		 ORDER BY o.created_at DESC, oi.id ASC`)
}

func (s *OrderStore) listOrders(ctx context.Context, query string, args ...interface{}) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	ordersMap := make(map[int]*models.Order)
	for rows.Next() {
		var (
			o    models.Order
			item models.OrderItem
		)
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.Status,
			&o.Shipping.FullName, &o.Shipping.Street, &o.Shipping.City,
			&o.Shipping.State, &o.Shipping.ZipCode,
			&o.CreatedAt, &o.UpdatedAt,
			&item.ProductID, &item.ProductName, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		if _, exists := ordersMap[o.ID]; !exists {
			ordersMap[o.ID] = &o
		}
		ordersMap[o.ID].Items = append(ordersMap[o.ID].Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(ordersMap))
	for _, o := range ordersMap {
		orders = append(orders, *o)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (s *OrderStore) UpdateOrderStatus(ctx context.Context, id int, status string) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE orders SET status = ?, updated_at = NOW() WHERE id = ?", status, id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

func (s *OrderStore) DeleteOrder(ctx context.Context, id int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM order_items WHERE order_id = ?", id); err != nil {
		return fmt.Errorf("delete order items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM orders WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return tx.Commit()
}
