package services

import (
	"context"
	"errors"
	"sort"

	"commerce-service/models"
)

// 内存版 store 实现，仅测试用。

type memProductStore struct {
	products map[int]*models.Product
	// 第 n 次 DecrementStock 时强制失败（0 表示不注入）
	failDecrementAt int
	decrementCalls  int
}

func newMemProductStore(products ...models.Product) *memProductStore {
	m := &memProductStore{products: make(map[int]*models.Product)}
	for i := range products {
		p := products[i]
		m.products[p.ID] = &p
	}
	return m
}

func (m *memProductStore) GetProduct(_ context.Context, id int) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProductStore) DecrementStock(_ context.Context, id, quantity int) (bool, error) {
	m.decrementCalls++
	if m.failDecrementAt > 0 && m.decrementCalls == m.failDecrementAt {
		return false, errors.New("injected store failure")
	}
	p, ok := m.products[id]
	if !ok || p.Stock < quantity {
		return false, nil
	}
	p.Stock -= quantity
	return true, nil
}

func (m *memProductStore) IncrementStock(_ context.Context, id, quantity int) error {
	p, ok := m.products[id]
	if !ok {
		return errors.New("product not found")
	}
	p.Stock += quantity
	return nil
}

func (m *memProductStore) stock(id int) int {
	return m.products[id].Stock
}

type memOrderStore struct {
	nextID int
	orders map[int]*models.Order
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{nextID: 1, orders: make(map[int]*models.Order)}
}

func (m *memOrderStore) CreateOrder(_ context.Context, order *models.Order) (int, error) {
	id := m.nextID
	m.nextID++
	cp := *order
	cp.ID = id
	m.orders[id] = &cp
	return id, nil
}

func (m *memOrderStore) GetOrder(_ context.Context, id int) (*models.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *memOrderStore) ListOrdersByUser(_ context.Context, userID int) ([]models.Order, error) {
	var out []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memOrderStore) ListAllOrders(_ context.Context) ([]models.Order, error) {
	var out []models.Order
	for _, o := range m.orders {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memOrderStore) UpdateOrderStatus(_ context.Context, id int, status string) error {
	o, ok := m.orders[id]
	if !ok {
		return errors.New("order not found")
	}
	o.Status = status
	return nil
}

func (m *memOrderStore) DeleteOrder(_ context.Context, id int) error {
	delete(m.orders, id)
	return nil
}

type memSaleStore struct {
	nextID int
	sales  map[int]*models.Sale
}

func newMemSaleStore() *memSaleStore {
	return &memSaleStore{nextID: 1, sales: make(map[int]*models.Sale)}
}

func (m *memSaleStore) CreateSale(_ context.Context, sale *models.Sale) (int, error) {
	id := m.nextID
	m.nextID++
	cp := *sale
	cp.ID = id
	m.sales[id] = &cp
	return id, nil
}

func (m *memSaleStore) ListSalesByUser(_ context.Context, userID int) ([]models.Sale, error) {
	var out []models.Sale
	for _, s := range m.sales {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memSaleStore) ListAllSales(_ context.Context) ([]models.Sale, error) {
	var out []models.Sale
	for _, s := range m.sales {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type memUserStore struct {
	users map[int]*models.User
}

func newMemUserStore(users ...models.User) *memUserStore {
	m := &memUserStore{users: make(map[int]*models.User)}
	for i := range users {
		u := users[i]
		m.users[u.ID] = &u
	}
	return m
}

func (m *memUserStore) GetUser(_ context.Context, id int) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUserStore) SaveAddress(_ context.Context, id int, addr models.Address) error {
	u, ok := m.users[id]
	if !ok {
		m.users[id] = &models.User{ID: id, Role: models.RoleCustomer, Address: addr}
		return nil
	}
	u.Address = addr
	return nil
}

type memCartStore struct {
	carts map[int]map[int]int // userID -> productID -> quantity
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: make(map[int]map[int]int)}
}

func (m *memCartStore) GetQuantities(_ context.Context, userID int) (map[int]int, error) {
	out := make(map[int]int)
	for id, qty := range m.carts[userID] {
		out[id] = qty
	}
	return out, nil
}

func (m *memCartStore) GetQuantity(_ context.Context, userID, productID int) (int, bool, error) {
	qty, ok := m.carts[userID][productID]
	return qty, ok, nil
}

func (m *memCartStore) AddQuantity(_ context.Context, userID, productID, quantity int) error {
	if m.carts[userID] == nil {
		m.carts[userID] = make(map[int]int)
	}
	m.carts[userID][productID] += quantity
	return nil
}

func (m *memCartStore) SetQuantity(_ context.Context, userID, productID, quantity int) error {
	if m.carts[userID] == nil {
		m.carts[userID] = make(map[int]int)
	}
	m.carts[userID][productID] = quantity
	return nil
}

func (m *memCartStore) RemoveItem(_ context.Context, userID, productID int) error {
	delete(m.carts[userID], productID)
	return nil
}
