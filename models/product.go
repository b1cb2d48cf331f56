package models

import "time"

type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category"`
	Price       float64   `json:"price" binding:"required,gt=0"`
	Stock       int       `json:"stock" binding:"gte=0"`
	IsOnSale    bool      `json:"is_on_sale"`
	SalePrice   float64   `json:"sale_price"` // 0 表示未设置
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Normalize 在写入前修正促销价：
// 促销中但促销价缺失或不低于原价时，按原价九折；未促销时清空促销价。
func (p *Product) Normalize() {
	if p.IsOnSale {
		if p.SalePrice <= 0 || p.SalePrice >= p.Price {
			p.SalePrice = p.Price * 0.9
		}
	} else {
		p.SalePrice = 0
	}
}

// UnitPrice 返回当前生效单价（促销价优先）。
func (p *Product) UnitPrice() float64 {
	if p.IsOnSale && p.SalePrice > 0 {
		return p.SalePrice
	}
	return p.Price
}
