package models

import (
	"time"
)

// 订单状态
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

type Address struct {
	FullName string `json:"full_name"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zip_code"`
}

// Complete 五个字段齐全才视为可用收货地址。
func (a Address) Complete() bool {
	return a.FullName != "" && a.Street != "" && a.City != "" &&
		a.State != "" && a.ZipCode != ""
}

type Order struct {
	ID        int         `json:"id"`
	UserID    int         `json:"user_id"`
	Items     []OrderItem `json:"items"`
	Shipping  Address     `json:"shipping_address"`
	Total     float64     `json:"total"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// OrderItem 下单时的快照，价格不随商品后续调价变化。
type OrderItem struct {
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type OrderItemDetail struct {
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Subtotal    float64 `json:"subtotal"`
}

type OrderResponse struct {
	ID        int               `json:"id"`
	UserID    int               `json:"user_id"`
	Total     float64           `json:"total"`
	Status    string            `json:"status"`
	Shipping  Address           `json:"shipping_address"`
	CreatedAt time.Time         `json:"created_at"`
	Items     []OrderItemDetail `json:"items"`
}

type OrderEvent struct {
	OrderID  int       `json:"order_id"`
	UserID   int       `json:"user_id"`
	Type     string    `json:"type"` // created, status_updated, cancelled, payment_check, sale_created
	Status   string    `json:"status"`
	Total    float64   `json:"total"`
	Occurred time.Time `json:"occurred"`
}

// ValidStatus 判断是否为已知订单状态。
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}
