package database

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"commerce-service/models"
)

type SaleStore struct {
	db *sql.DB
}

func NewSaleStore(db *sql.DB) *SaleStore {
	return &SaleStore{db: db}
}

func (s *SaleStore) CreateSale(ctx context.Context, sale *models.Sale) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"INSERT INTO sales (user_id, total, created_at) VALUES (?, ?, ?)",
		sale.UserID, sale.Total, sale.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert sale: %w", err)
	}

	saleID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sale insert id: %w", err)
	}

	for _, item := range sale.Items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sale_items (sale_id, product_id, product_name, quantity, price)
			 VALUES (?, ?, ?, ?, ?)`,
			saleID, item.ProductID, item.ProductName, item.Quantity, item.Price); err != nil {
			return 0, fmt.Errorf("insert sale item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit sale: %w", err)
	}
	return int(saleID), nil
}

func (s *SaleStore) ListSalesByUser(ctx context.Context, userID int) ([]models.Sale, error) {
	return s.listSales(ctx,
		`SELECT s.id, s.user_id, s.total, s.created_at,
		        si.product_id, si.product_name, si.quantity, si.price
		 FROM sales s
		 JOIN sale_items si ON s.id = si.sale_id
		 WHERE s.user_id = ?
		 ORDER BY s.created_at DESC, si.id ASC`, userID)
}

func (s *SaleStore) ListAllSales(ctx context.Context) ([]models.Sale, error) {
	return s.listSales(ctx,
		`SELECT s.id, s.user_id, s.total, s.created_at,
		        si.product_id, si.product_name, si.quantity, si.price
		 FROM sales s
		 JOIN sale_items si ON s.id = si.sale_id
		 ORDER BY s.created_at DESC, si.id ASC`)
}

func (s *SaleStore) listSales(ctx context.Context, query string, args ...interface{}) ([]models.Sale, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	salesMap := make(map[int]*models.Sale)
	for rows.Next() {
		var (
			sale models.Sale
			item models.OrderItem
		)
		if err := rows.Scan(&sale.ID, &sale.UserID, &sale.Total, &sale.CreatedAt,
			&item.ProductID, &item.ProductName, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("scan sale row: %w", err)
		}
		if _, exists := salesMap[sale.ID]; !exists {
			salesMap[sale.ID] = &sale
		}
		salesMap[sale.ID].Items = append(salesMap[sale.ID].Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sales := make([]models.Sale, 0, len(salesMap))
	for _, sale := range salesMap {
		sales = append(sales, *sale)
	}
	sort.Slice(sales, func(i, j int) bool {
		return sales[i].CreatedAt.After(sales[j].CreatedAt)
	})
	return sales, nil
}
