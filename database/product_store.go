package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"commerce-service/models"
)

type ProductStore struct {
	db *sql.DB
}

func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = "id, name, description, image_url, category, price, stock, is_on_sale, sale_price, created_at, updated_at"

func scanProduct(row *sql.Row) (*models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.ImageURL, &p.Category,
		&p.Price, &p.Stock, &p.IsOnSale, &p.SalePrice, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}

func (s *ProductStore) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = ?", id)
	return scanProduct(row)
}

func (s *ProductStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.ImageURL, &p.Category,
			&p.Price, &p.Stock, &p.IsOnSale, &p.SalePrice, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// CreateProduct 写入前统一走促销价修正。
func (s *ProductStore) CreateProduct(ctx context.Context, p *models.Product) (int, error) {
	p.Normalize()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO products (name, description, image_url, category, price, stock, is_on_sale, sale_price)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Description, p.ImageURL, p.Category, p.Price, p.Stock, p.IsOnSale, p.SalePrice)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("product insert id: %w", err)
	}
	return int(id), nil
}

func (s *ProductStore) UpdateProduct(ctx context.Context, p *models.Product) (bool, error) {
	p.Normalize()
	result, err := s.db.ExecContext(ctx,
		`UPDATE products
		 SET name = ?, description = ?, image_url = ?, category = ?,
		     price = ?, stock = ?, is_on_sale = ?, sale_price = ?
		 WHERE id = ?`,
		p.Name, p.Description, p.ImageURL, p.Category, p.Price, p.Stock, p.IsOnSale, p.SalePrice, p.ID)
	if err != nil {
		return false, fmt.Errorf("update product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *ProductStore) DeleteProduct(ctx context.Context, id int) (bool, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// DecrementStock 条件更新：库存不足时影响 0 行，返回 false，
// 并发下不会把库存扣成负数。
func (s *ProductStore) DecrementStock(ctx context.Context, id, quantity int) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?",
		quantity, id, quantity)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *ProductStore) IncrementStock(ctx context.Context, id, quantity int) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE products SET stock = stock + ? WHERE id = ?", quantity, id)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	return nil
}
