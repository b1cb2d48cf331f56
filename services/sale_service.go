package services

import (
	"context"
	"fmt"
	"time"

	"commerce-service/models"
)

// SaleService 即时交易（线下/柜台结账）：和下单走同样的逐行
// 定价和扣库存流程，但不收税、不收运费、没有地址和状态流转。
type SaleService struct {
	products ProductStore
	sales    SaleStore
}

func NewSaleService(products ProductStore, sales SaleStore) *SaleService {
	return &SaleService{products: products, sales: sales}
}

func (s *SaleService) Create(ctx context.Context, userID int, lines []LineRequest) (*models.Sale, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: sale must contain at least one item", ErrValidation)
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive for product %d", ErrValidation, line.ProductID)
		}
	}

	var (
		total float64
		items []models.OrderItem
	)
	for _, line := range lines {
		product, err := s.products.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("load product %d: %w", line.ProductID, err)
		}
		if product == nil {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, line.ProductID)
		}
		if product.Stock < line.Quantity {
			return nil, fmt.Errorf("%w: product %d (available %d, requested %d)",
				ErrInsufficientStock, product.ID, product.Stock, line.Quantity)
		}

		ok, err := s.products.DecrementStock(ctx, product.ID, line.Quantity)
		if err != nil {
			return nil, fmt.Errorf("decrement stock for product %d: %w", product.ID, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: product %d", ErrInsufficientStock, product.ID)
		}

		unitPrice := product.UnitPrice()
		total += unitPrice * float64(line.Quantity)
		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			Price:       unitPrice,
		})
	}

	sale := &models.Sale{
		UserID:    userID,
		Items:     items,
		Total:     Round2(total),
		CreatedAt: time.Now(),
	}
	id, err := s.sales.CreateSale(ctx, sale)
	if err != nil {
		return nil, fmt.Errorf("persist sale: %w", err)
	}
	sale.ID = id
	return sale, nil
}

func (s *SaleService) List(ctx context.Context, actor models.Actor) ([]models.Sale, error) {
	if actor.IsAdmin() {
		return s.sales.ListAllSales(ctx)
	}
	return s.sales.ListSalesByUser(ctx, actor.ID)
}
