package services

import (
	"context"
	"fmt"
	"sort"

	"commerce-service/models"
)

type CartService struct {
	carts    CartStore
	products ProductStore
}

func NewCartService(carts CartStore, products ProductStore) *CartService {
	return &CartService{carts: carts, products: products}
}

// Get 返回填充了商品详情的购物车；没有购物车时返回空车，不报错。
func (s *CartService) Get(ctx context.Context, userID int) (*models.Cart, error) {
	quantities, err := s.carts.GetQuantities(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart for user %d: %w", userID, err)
	}

	cart := &models.Cart{UserID: userID, Items: []models.CartItem{}}

	productIDs := make([]int, 0, len(quantities))
	for id := range quantities {
		productIDs = append(productIDs, id)
	}
	sort.Ints(productIDs)

	var total float64
	for _, id := range productIDs {
		product, err := s.products.GetProduct(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load product %d: %w", id, err)
		}
		if product == nil {
			// 商品已下架，从车里清掉
			if err := s.carts.RemoveItem(ctx, userID, id); err != nil {
				return nil, fmt.Errorf("prune cart item %d: %w", id, err)
			}
			continue
		}
		qty := quantities[id]
		cart.Items = append(cart.Items, models.CartItem{Product: *product, Quantity: qty})
		total += product.UnitPrice() * float64(qty)
	}
	cart.Total = Round2(total)
	return cart, nil
}

// Add 同商品累加数量，新商品追加条目。
func (s *CartService) Add(ctx context.Context, userID, productID, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("load product %d: %w", productID, err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
	}
	if err := s.carts.AddQuantity(ctx, userID, productID, quantity); err != nil {
		return nil, fmt.Errorf("add to cart: %w", err)
	}
	return s.Get(ctx, userID)
}

// Update 覆盖已有条目的数量（与 Add 的累加相反）；数量 <= 0 直接删条目。
// 条目不存在时报 NotFound。
func (s *CartService) Update(ctx context.Context, userID, productID, quantity int) (*models.Cart, error) {
	_, exists, err := s.carts.GetQuantity(ctx, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("load cart item: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: product %d not in cart", ErrNotFound, productID)
	}

	if quantity <= 0 {
		if err := s.carts.RemoveItem(ctx, userID, productID); err != nil {
			return nil, fmt.Errorf("remove cart item: %w", err)
		}
	} else {
		if err := s.carts.SetQuantity(ctx, userID, productID, quantity); err != nil {
			return nil, fmt.Errorf("update cart item: %w", err)
		}
	}
	return s.Get(ctx, userID)
}

// Remove 删除条目，幂等：条目不存在也不报错。
func (s *CartService) Remove(ctx context.Context, userID, productID int) (*models.Cart, error) {
	if err := s.carts.RemoveItem(ctx, userID, productID); err != nil {
		return nil, fmt.Errorf("remove cart item: %w", err)
	}
	return s.Get(ctx, userID)
}
