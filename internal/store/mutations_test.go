package store

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/storeroom/pkg/types"
)

func TestInsertOrders(t *testing.T) {
	s := openSeededStore(t)
	ctx := context.Background()

	ids, err := s.InsertOrders(ctx, SampleOrders())
	require.NoError(t, err)
	require.Len(t, ids, 7)
	for i := 1; i < len(ids); i++ {
		assert.Greater(t, ids[i], ids[i-1], "IDs are generated in batch order")
	}

	orders, err := s.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 7)
	assert.Equal(t, ids[0], orders[0].OrderID)
	assert.Equal(t, int64(1), orders[0].CustomerID)
	assert.Equal(t, "2024-05-01", types.FormatOrderDate(orders[0].OrderDate))
	assert.Equal(t, "2024-05-08", types.FormatOrderDate(orders[6].OrderDate))
}

func TestInsertOrders_StoresISODateText(t *testing.T) {
	s := openSeededStore(t)
	ctx := context.Background()

	_, err := s.InsertOrders(ctx, []types.NewOrder{
		{CustomerID: 1, ProductID: 1, Quantity: 1, OrderDate: date(t, "2024-05-01")},
	})
	require.NoError(t, err)

	var raw, kind string
	require.NoError(t, s.db.QueryRow("SELECT CAST(order_date AS TEXT), typeof(order_date) FROM orders").Scan(&raw, &kind))
	assert.Equal(t, "2024-05-01", raw)
	assert.Equal(t, "text", kind)
}

func TestInsertOrders_AtomicOnConstraintViolation(t *testing.T) {
	tests := []struct {
		name string
		bad  types.NewOrder
	}{
		{"unknown product", types.NewOrder{CustomerID: 1, ProductID: 99, Quantity: 1}},
		{"unknown customer", types.NewOrder{CustomerID: 42, ProductID: 1, Quantity: 1}},
		{"zero quantity", types.NewOrder{CustomerID: 1, ProductID: 1, Quantity: 0}},
		{"negative quantity", types.NewOrder{CustomerID: 1, ProductID: 1, Quantity: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openSeededStore(t)
			ctx := context.Background()

			_, err := s.InsertOrders(ctx, SampleOrders()[:2])
			require.NoError(t, err)

			bad := tt.bad
			bad.OrderDate = date(t, "2024-06-01")
			batch := append(SampleOrders(), bad)

			ids, err := s.InsertOrders(ctx, batch)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrConstraint)
			assert.Nil(t, ids)

			assert.Equal(t, 2, countRows(t, s, "orders"), "no row of the failed batch is persisted")
		})
	}
}

func TestInsertOrders_EmptyBatch(t *testing.T) {
	s := openSeededStore(t)

	ids, err := s.InsertOrders(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.Equal(t, 0, countRows(t, s, "orders"))
}

func TestIncreasePrices(t *testing.T) {
	tests := []struct {
		name     string
		category string
	}{
		{"exact category", "Телефоны"},
		{"lower case", "телефоны"},
		{"upper case", "ТЕЛЕФОНЫ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openSeededStore(t)
			ctx := context.Background()

			before, err := s.ListProducts(ctx)
			require.NoError(t, err)

			n, err := s.IncreasePrices(ctx, tt.category, 1.10)
			require.NoError(t, err)
			assert.Equal(t, int64(2), n)

			after, err := s.ListProducts(ctx)
			require.NoError(t, err)
			require.Len(t, after, len(before))

			for i := range before {
				if before[i].Category == "Телефоны" {
					assert.InDelta(t, before[i].Price*1.10, after[i].Price, 1e-9, "product %d", before[i].ProductID)
					continue
				}
				assert.Equal(t, before[i].Price, after[i].Price, "product %d unchanged", before[i].ProductID)
			}
		})
	}
}

func TestIncreasePrices_Compounds(t *testing.T) {
	s := openSeededStore(t)
	ctx := context.Background()

	_, err := s.IncreasePrices(ctx, "Телефоны", 1.10)
	require.NoError(t, err)
	_, err = s.IncreasePrices(ctx, "Телефоны", 1.10)
	require.NoError(t, err)

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 900*1.10*1.10, products[2].Price, 1e-9)
	assert.InDelta(t, 540*1.10*1.10, products[3].Price, 1e-9)
}

func TestIncreasePrices_NoMatch(t *testing.T) {
	s := openSeededStore(t)

	n, err := s.IncreasePrices(context.Background(), "Tablets", 2)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestIncreasePrices_InvalidFactor(t *testing.T) {
	s := openSeededStore(t)

	for _, f := range []float64{0, -1.1, math.NaN(), math.Inf(1)} {
		_, err := s.IncreasePrices(context.Background(), "Телефоны", f)
		assert.ErrorIs(t, err, types.ErrInvalidFactor, "factor %v", f)
	}

	products, err := s.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 900.0, products[2].Price)
}

func TestIncreasePrices_AffectsTotalSales(t *testing.T) {
	s := openSeededStore(t)
	ctx := context.Background()

	_, err := s.InsertOrders(ctx, SampleOrders())
	require.NoError(t, err)
	_, err = s.IncreasePrices(ctx, "Телефоны", 1.10)
	require.NoError(t, err)

	// Phone orders: product 3 x1 (900) and product 4 x1 (540) gain 10%.
	total, err := s.TotalSales(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 12500+144.0, total.InexactFloat64(), 1e-6)
}

func TestIncreasePrices_OverflowRejected(t *testing.T) {
	s := openSeededStore(t)
	ctx := context.Background()

	_, err := s.InsertOrders(ctx, SampleOrders())
	require.NoError(t, err)

	n, err := s.IncreasePrices(ctx, "Ноутбуки", 1e306)
	require.ErrorIs(t, err, types.ErrInvalidFactor)
	assert.Zero(t, n)

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, products[0].Price)
	assert.Equal(t, 2000.0, products[1].Price)

	total, err := s.TotalSales(ctx)
	require.NoError(t, err)
	assert.Equal(t, "12500.00", total.StringFixed(2))
	_, err = s.AverageOrderValue(ctx)
	require.NoError(t, err)
}
