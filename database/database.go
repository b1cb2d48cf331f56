package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"commerce-service/config"
)

var DB *sql.DB

func InitDB(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	DB = db
	log.Println("Database connected and migrated")
	return nil
}

func CloseDB() {
	if DB != nil {
		if err := DB.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}
}

// MySQL 不允许一次 Exec 跑多条语句，逐条建表
func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			role VARCHAR(16) NOT NULL DEFAULT 'customer',
			full_name VARCHAR(255) NOT NULL DEFAULT '',
			street VARCHAR(255) NOT NULL DEFAULT '',
			city VARCHAR(100) NOT NULL DEFAULT '',
			state VARCHAR(100) NOT NULL DEFAULT '',
			zip_code VARCHAR(20) NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			image_url VARCHAR(512) NOT NULL DEFAULT '',
			category VARCHAR(100) NOT NULL DEFAULT '',
			price DOUBLE NOT NULL,
			stock INT NOT NULL DEFAULT 0,
			is_on_sale BOOLEAN NOT NULL DEFAULT FALSE,
			sale_price DOUBLE NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL,
			total DOUBLE NOT NULL,
			status VARCHAR(16) NOT NULL DEFAULT 'pending',
			ship_full_name VARCHAR(255) NOT NULL,
			ship_street VARCHAR(255) NOT NULL,
			ship_city VARCHAR(100) NOT NULL,
			ship_state VARCHAR(100) NOT NULL,
			ship_zip_code VARCHAR(20) NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			INDEX idx_orders_user (user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id INT AUTO_INCREMENT PRIMARY KEY,
			order_id INT NOT NULL,
			product_id INT NOT NULL,
			product_name VARCHAR(255) NOT NULL,
			quantity INT NOT NULL,
			price DOUBLE NOT NULL,
			INDEX idx_order_items_order (order_id)
		)`,
		`CREATE TABLE IF NOT EXISTS sales (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL,
			total DOUBLE NOT NULL,
			created_at DATETIME NOT NULL,
			INDEX idx_sales_user (user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS sale_items (
			id INT AUTO_INCREMENT PRIMARY KEY,
			sale_id INT NOT NULL,
			product_id INT NOT NULL,
			product_name VARCHAR(255) NOT NULL,
			quantity INT NOT NULL,
			price DOUBLE NOT NULL,
			INDEX idx_sale_items_sale (sale_id)
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id CHAR(36) PRIMARY KEY,
			sender_id INT NOT NULL,
			recipient_id INT NOT NULL,
			content TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			INDEX idx_messages_pair (sender_id, recipient_id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
