package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductNormalize_OnSaleWithoutSalePrice(t *testing.T) {
	p := Product{Price: 100, IsOnSale: true}
	p.Normalize()
	assert.InDelta(t, 90.0, p.SalePrice, 1e-9)
}

func TestProductNormalize_SalePriceNotBelowPrice(t *testing.T) {
	cases := []struct {
		name      string
		salePrice float64
	}{
		{"equal to price", 100},
		{"above price", 120},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Product{Price: 100, IsOnSale: true, SalePrice: tc.salePrice}
			p.Normalize()
			assert.InDelta(t, 90.0, p.SalePrice, 1e-9)
		})
	}
}

func TestProductNormalize_ValidSalePriceKept(t *testing.T) {
	p := Product{Price: 100, IsOnSale: true, SalePrice: 75}
	p.Normalize()
	assert.InDelta(t, 75.0, p.SalePrice, 1e-9)
}

func TestProductNormalize_NotOnSaleClearsSalePrice(t *testing.T) {
	p := Product{Price: 100, IsOnSale: false, SalePrice: 75}
	p.Normalize()
	assert.Zero(t, p.SalePrice)
}

func TestProductUnitPrice(t *testing.T) {
	onSale := Product{Price: 100, IsOnSale: true, SalePrice: 80}
	assert.InDelta(t, 80.0, onSale.UnitPrice(), 1e-9)

	regular := Product{Price: 100}
	assert.InDelta(t, 100.0, regular.UnitPrice(), 1e-9)

	// 促销标记但价格未设置时回落到原价
	flagged := Product{Price: 100, IsOnSale: true}
	assert.InDelta(t, 100.0, flagged.UnitPrice(), 1e-9)
}

func TestAddressComplete(t *testing.T) {
	full := Address{FullName: "n", Street: "s", City: "c", State: "st", ZipCode: "z"}
	assert.True(t, full.Complete())

	partial := full
	partial.ZipCode = ""
	assert.False(t, partial.Complete())
	assert.False(t, Address{}.Complete())
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus("archived"))
	assert.False(t, ValidStatus(""))
}
