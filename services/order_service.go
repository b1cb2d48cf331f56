package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"commerce-service/models"
)

const (
	shippingCost = 5.99
	taxRate      = 0.08
)

// 状态更新权限策略
const (
	StatusPolicyOwner = "owner" // 仅本人或管理员
	StatusPolicyAny   = "any"   // 任何已认证用户
)

// Round2 四舍五入保留两位小数（half-up）。
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// LineRequest 下单请求中的一行：商品与数量。
type LineRequest struct {
	ProductID int `json:"product_id" binding:"required"`
	Quantity  int `json:"quantity" binding:"required,gt=0"`
}

type OrderService struct {
	products ProductStore
	orders   OrderStore
	users    UserStore

	statusPolicy    string
	restockOnCancel bool
}

func NewOrderService(products ProductStore, orders OrderStore, users UserStore, statusPolicy string, restockOnCancel bool) *OrderService {
	if statusPolicy != StatusPolicyAny {
		statusPolicy = StatusPolicyOwner
	}
	return &OrderService{
		products:        products,
		orders:          orders,
		users:           users,
		statusPolicy:    statusPolicy,
		restockOnCancel: restockOnCancel,
	}
}

// Create 把商品/数量列表转成持久化订单：校验库存、解析单价（促销价优先）、
// 逐行立即扣库存、计算总价（含运费和税）。
// 逐行处理且每行扣减立即提交：第 N 行失败时前 N-1 行的扣减不回滚，
// 调用方会收到错误但不会生成订单。
func (s *OrderService) Create(ctx context.Context, userID int, lines []LineRequest, addr *models.Address) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive for product %d", ErrValidation, line.ProductID)
		}
	}

	shipping, err := s.resolveShipping(ctx, userID, addr)
	if err != nil {
		return nil, err
	}

	var (
		subtotal float64
		items    []models.OrderItem
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
			// 条件更新失败说明并发请求抢先扣走了库存
			return nil, fmt.Errorf("%w: product %d", ErrInsufficientStock, product.ID)
		}

		unitPrice := product.UnitPrice()
		subtotal += unitPrice * float64(line.Quantity)
		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			Price:       unitPrice,
		})
	}

	now := time.Now()
	order := &models.Order{
		UserID:    userID,
		Items:     items,
		Shipping:  shipping,
		Total:     Round2(subtotal + shippingCost + subtotal*taxRate),
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.orders.CreateOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}
	order.ID = id
	return order, nil
}

// resolveShipping 优先用请求里完整的地址，否则回落到用户档案地址。
func (s *OrderService) resolveShipping(ctx context.Context, userID int, addr *models.Address) (models.Address, error) {
	if addr != nil && addr.Complete() {
		return *addr, nil
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return models.Address{}, fmt.Errorf("load user %d: %w", userID, err)
	}
	if user != nil && user.Address.Complete() {
		return user.Address, nil
	}
	return models.Address{}, fmt.Errorf("%w: missing shipping address", ErrValidation)
}

// Get 返回订单详情；非管理员只能看自己的订单（按不存在处理）。
func (s *OrderService) Get(ctx context.Context, id int, actor models.Actor) (*models.Order, error) {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load order %d: %w", id, err)
	}
	if order == nil || (order.UserID != actor.ID && !actor.IsAdmin()) {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
	}
	return order, nil
}

// List 管理员看全部订单，普通用户只看自己的。
func (s *OrderService) List(ctx context.Context, actor models.Actor) ([]models.Order, error) {
	if actor.IsAdmin() {
		return s.orders.ListAllOrders(ctx)
	}
	return s.orders.ListOrdersByUser(ctx, actor.ID)
}

// 状态机：pending → processing → shipped → delivered 只进不退，
// cancelled 可从任意非终态进入；delivered 和 cancelled 是终态。
var statusRank = map[string]int{
	models.StatusPending:    0,
	models.StatusProcessing: 1,
	models.StatusShipped:    2,
	models.StatusDelivered:  3,
}

func canTransition(from, to string) bool {
	if from == models.StatusDelivered || from == models.StatusCancelled {
		return false
	}
	if to == models.StatusCancelled {
		return true
	}
	return statusRank[to] > statusRank[from]
}

// UpdateStatus 校验目标状态与流转合法性后落库。
// 权限由 statusPolicy 决定：owner 模式要求本人或管理员。
func (s *OrderService) UpdateStatus(ctx context.Context, id int, newStatus string, actor models.Actor) (*models.Order, error) {
	if !models.ValidStatus(newStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, newStatus)
	}

	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load order %d: %w", id, err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
	}
	if s.statusPolicy == StatusPolicyOwner && order.UserID != actor.ID && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: not allowed to update order %d", ErrUnauthorized, id)
	}
	if !canTransition(order.Status, newStatus) {
		return nil, fmt.Errorf("%w: cannot move order %d from %s to %s", ErrConflict, id, order.Status, newStatus)
	}

	if newStatus == models.StatusCancelled {
		s.maybeRestock(ctx, order)
	}
	if err := s.orders.UpdateOrderStatus(ctx, id, newStatus); err != nil {
		return nil, fmt.Errorf("update order %d status: %w", id, err)
	}
	order.Status = newStatus
	return order, nil
}

// Cancel 本人或管理员可取消；已取消的订单报冲突，已送达的订单不可取消。
func (s *OrderService) Cancel(ctx context.Context, id int, actor models.Actor) (*models.Order, error) {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load order %d: %w", id, err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
	}
	if order.UserID != actor.ID && !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: not allowed to cancel order %d", ErrUnauthorized, id)
	}
	if order.Status == models.StatusCancelled {
		return nil, fmt.Errorf("%w: order %d already cancelled", ErrConflict, id)
	}
	if order.Status == models.StatusDelivered {
		return nil, fmt.Errorf("%w: order %d already delivered", ErrConflict, id)
	}

	s.maybeRestock(ctx, order)
	if err := s.orders.UpdateOrderStatus(ctx, id, models.StatusCancelled); err != nil {
		return nil, fmt.Errorf("cancel order %d: %w", id, err)
	}
	order.Status = models.StatusCancelled
	return order, nil
}

// maybeRestock 按配置回补库存。回补失败只记日志，不阻塞取消。
func (s *OrderService) maybeRestock(ctx context.Context, order *models.Order) {
	if !s.restockOnCancel {
		return
	}
	for _, item := range order.Items {
		if err := s.products.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			log.Printf("Failed to restock product %d for order %d: %v", item.ProductID, order.ID, err)
		}
	}
}

// Delete 物理删除订单，本人或管理员可操作，不受状态机限制。
func (s *OrderService) Delete(ctx context.Context, id int, actor models.Actor) error {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return fmt.Errorf("load order %d: %w", id, err)
	}
	if order == nil {
		return fmt.Errorf("%w: order %d", ErrNotFound, id)
	}
	if order.UserID != actor.ID && !actor.IsAdmin() {
		return fmt.Errorf("%w: not allowed to delete order %d", ErrUnauthorized, id)
	}
	if err := s.orders.DeleteOrder(ctx, id); err != nil {
		return fmt.Errorf("delete order %d: %w", id, err)
	}
	return nil
}
