package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"commerce-service/models"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) GetUser(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, role, full_name, street, city, state, zip_code FROM users WHERE id = ?", id).Scan(
		&u.ID, &u.Role,
		&u.Address.FullName, &u.Address.Street, &u.Address.City,
		&u.Address.State, &u.Address.ZipCode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

// SaveAddress 用户不存在时插入一条 customer 记录，存在则更新地址。
func (s *UserStore) SaveAddress(ctx context.Context, id int, addr models.Address) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, role, full_name, street, city, state, zip_code)
		 VALUES (?, 'customer', ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE
		   full_name = VALUES(full_name), street = VALUES(street), city = VALUES(city),
		   state = VALUES(state), zip_code = VALUES(zip_code)`,
		id, addr.FullName, addr.Street, addr.City, addr.State, addr.ZipCode)
	if err != nil {
		return fmt.Errorf("save address: %w", err)
	}
	return nil
}
