package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commerce-service/models"
)

func newSaleFixture(products ...models.Product) (*SaleService, *memProductStore, *memSaleStore) {
	ps := newMemProductStore(products...)
	ss := newMemSaleStore()
	return NewSaleService(ps, ss), ps, ss
}

func TestSaleCreate_RawTotalNoTaxNoShipping(t *testing.T) {
	svc, _, _ := newSaleFixture(
		models.Product{ID: 10, Name: "Pen", Price: 5, Stock: 10},
		models.Product{ID: 11, Name: "Eraser", Price: 2, Stock: 10},
	)

	sale, err := svc.Create(context.Background(), 7, []LineRequest{
		{ProductID: 10, Quantity: 1},
		{ProductID: 11, Quantity: 3},
	})
	require.NoError(t, err)
	assert.InDelta(t, 11.00, sale.Total, 1e-9)
	assert.Equal(t, 7, sale.UserID)
	assert.Len(t, sale.Items, 2)
}

func TestSaleCreate_UsesSalePriceAndDecrementsStock(t *testing.T) {
	svc, ps, _ := newSaleFixture(
		models.Product{ID: 10, Name: "Pen", Price: 5, IsOnSale: true, SalePrice: 4, Stock: 10},
	)

	sale, err := svc.Create(context.Background(), 7, []LineRequest{{ProductID: 10, Quantity: 2}})
	require.NoError(t, err)
	assert.InDelta(t, 8.00, sale.Total, 1e-9)
	assert.Equal(t, 8, ps.stock(10))
}

func TestSaleCreate_InsufficientStock(t *testing.T) {
	svc, ps, ss := newSaleFixture(models.Product{ID: 10, Name: "Pen", Price: 5, Stock: 1})

	_, err := svc.Create(context.Background(), 7, []LineRequest{{ProductID: 10, Quantity: 2}})
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 1, ps.stock(10))
	assert.Empty(t, ss.sales)
}

func TestSaleCreate_EmptyLines(t *testing.T) {
	svc, _, _ := newSaleFixture()

	_, err := svc.Create(context.Background(), 7, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSaleList_Scoping(t *testing.T) {
	svc, _, _ := newSaleFixture(models.Product{ID: 10, Name: "Pen", Price: 5, Stock: 10})

	_, err := svc.Create(context.Background(), 7, []LineRequest{{ProductID: 10, Quantity: 1}})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 8, []LineRequest{{ProductID: 10, Quantity: 1}})
	require.NoError(t, err)

	own, err := svc.List(context.Background(), models.Actor{ID: 7, Role: models.RoleCustomer})
	require.NoError(t, err)
	assert.Len(t, own, 1)

	all, err := svc.List(context.Background(), models.Actor{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
