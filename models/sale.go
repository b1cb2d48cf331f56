package models

import "time"

// Sale 线下即时交易，无状态流转、无收货地址、无税费运费。
type Sale struct {
	ID        int         `json:"id"`
	UserID    int         `json:"user_id"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	CreatedAt time.Time   `json:"created_at"`
}
