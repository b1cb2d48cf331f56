package services

import (
	"context"

	"commerce-service/models"
)

// ProductStore 商品持久化接口。查无记录时返回 (nil, nil)。
// 所有库存扣减都必须经过 DecrementStock，便于底层换成条件更新。
type ProductStore interface {
	GetProduct(ctx context.Context, id int) (*models.Product, error)
	// DecrementStock 原子扣减库存，库存不足时返回 false。
	DecrementStock(ctx context.Context, id, quantity int) (bool, error)
	// IncrementStock 回补库存（取消订单的回补策略用）。
	IncrementStock(ctx context.Context, id, quantity int) error
}

type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) (int, error)
	GetOrder(ctx context.Context, id int) (*models.Order, error)
	ListOrdersByUser(ctx context.Context, userID int) ([]models.Order, error)
	ListAllOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int, status string) error
	DeleteOrder(ctx context.Context, id int) error
}

type SaleStore interface {
	CreateSale(ctx context.Context, sale *models.Sale) (int, error)
	ListSalesByUser(ctx context.Context, userID int) ([]models.Sale, error)
	ListAllSales(ctx context.Context) ([]models.Sale, error)
}

type UserStore interface {
	GetUser(ctx context.Context, id int) (*models.User, error)
	SaveAddress(ctx context.Context, id int, addr models.Address) error
}

// CartStore 购物车存储：每个用户一份 productID -> quantity 映射。
type CartStore interface {
	GetQuantities(ctx context.Context, userID int) (map[int]int, error)
	GetQuantity(ctx context.Context, userID, productID int) (int, bool, error)
	// AddQuantity 累加已有数量（新条目从 0 起加）。
	AddQuantity(ctx context.Context, userID, productID, quantity int) error
	// SetQuantity 覆盖数量。
	SetQuantity(ctx context.Context, userID, productID, quantity int) error
	RemoveItem(ctx context.Context, userID, productID int) error
}
