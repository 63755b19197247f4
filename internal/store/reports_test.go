package store

import (
	"context"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/storeroom/pkg/types"
)

func TestReports_EmptyOrders(t *testing.T) {
	s := openSeededStore(t)
	ctx := context.Background()

	total, err := s.TotalSales(ctx)
	require.NoError(t, err)
	assert.True(t, total.IsZero(), "total sales with no orders is zero, got %s", total)

	_, err = s.AverageOrderValue(ctx)
	assert.ErrorIs(t, err, types.ErrNoData)

	_, err = s.MostPopularCategory(ctx)
	assert.ErrorIs(t, err, types.ErrNoData)

	perCustomer, err := s.OrdersPerCustomer(ctx)
	require.NoError(t, err)
	assert.Empty(t, perCustomer, "customers without orders are excluded")

	byCategory, err := s.ProductCountByCategory(ctx)
	require.NoError(t, err)
	assert.Len(t, byCategory, 3)
}

func TestReports_SingleOrderScenario(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx,
		[]types.Product{types.NewProduct(1, "Lenovo44", "Laptops", 1500)},
		[]types.Customer{{CustomerID: 1, FirstName: "A", LastName: "B", Email: "a@x.com"}},
	))
	_, err := s.InsertOrders(ctx, []types.NewOrder{
		{CustomerID: 1, ProductID: 1, Quantity: 2, OrderDate: date(t, "2024-05-01")},
	})
	require.NoError(t, err)

	total, err := s.TotalSales(ctx)
	require.NoError(t, err)
	assert.Equal(t, "3000.00", total.StringFixed(2))

	avg, err := s.AverageOrderValue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "3000.00", avg.StringFixed(2))
}

func TestReports_SampleOrders(t *testing.T) {
	s := openSeededStore(t)
	ctx := context.Background()

	_, err := s.InsertOrders(ctx, SampleOrders())
	require.NoError(t, err)

	// Recompute total sales independently of the engine.
	prices := map[int64]float64{}
	for _, p := range SeedProducts() {
		prices[p.ProductID] = p.Price
	}
	want := decimal.Zero
	for _, o := range SampleOrders() {
		want = want.Add(decimal.NewFromFloat(prices[o.ProductID]).Mul(decimal.NewFromInt(o.Quantity)))
	}

	total, err := s.TotalSales(ctx)
	require.NoError(t, err)
	assert.True(t, want.Equal(total), "want %s got %s", want, total)
	assert.Equal(t, "12500.00", total.StringFixed(2))

	avg, err := s.AverageOrderValue(ctx)
	require.NoError(t, err)
	assert.InDelta(t, total.InexactFloat64()/7, avg.InexactFloat64(), 1e-9)
	assert.Equal(t, "1785.71", avg.StringFixed(2))

	top, err := s.MostPopularCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.CategoryCount{Category: "Ноутбуки", Count: 3}, top)

	perCustomer, err := s.OrdersPerCustomer(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.CustomerOrders{
		{CustomerID: 1, FirstName: "Андрей", LastName: "Василий", Orders: 2},
		{CustomerID: 2, FirstName: "Илья", LastName: "Анатолий", Orders: 2},
		{CustomerID: 3, FirstName: "Лев", LastName: "Толстой", Orders: 1},
		{CustomerID: 4, FirstName: "Макс", LastName: "Сергеевич", Orders: 1},
		{CustomerID: 5, FirstName: "Егор", LastName: "Генадиевич", Orders: 1},
	}, perCustomer)

	byCategory, err := s.ProductCountByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.CategoryCount{
		{Category: "Ноутбуки", Count: 2},
		{Category: "Планшеты", Count: 2},
		{Category: "Телефоны", Count: 2},
	}, byCategory)
}

func TestMostPopularCategory_TwoCustomersSameCategory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx,
		[]types.Product{
			types.NewProduct(1, "iphone16pro", "Phones", 900),
			types.NewProduct(2, "samsungs24", "Phones", 540),
			types.NewProduct(3, "ipadair2", "Tablets", 600),
		},
		[]types.Customer{
			{CustomerID: 1, FirstName: "A", LastName: "B", Email: "a@x.com"},
			{CustomerID: 2, FirstName: "C", LastName: "D", Email: "c@x.com"},
		},
	))
	_, err := s.InsertOrders(ctx, []types.NewOrder{
		{CustomerID: 1, ProductID: 1, Quantity: 1, OrderDate: date(t, "2024-05-01")},
		{CustomerID: 2, ProductID: 2, Quantity: 5, OrderDate: date(t, "2024-05-02")},
	})
	require.NoError(t, err)

	top, err := s.MostPopularCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.CategoryCount{Category: "Phones", Count: 2}, top)
}

func TestMostPopularCategory_TieGoesToFirstCategory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx,
		[]types.Product{
			types.NewProduct(1, "b", "Beta", 10),
			types.NewProduct(2, "a", "Alpha", 10),
		},
		[]types.Customer{{CustomerID: 1, FirstName: "A", LastName: "B", Email: "a@x.com"}},
	))
	_, err := s.InsertOrders(ctx, []types.NewOrder{
		{CustomerID: 1, ProductID: 1, Quantity: 1, OrderDate: date(t, "2024-05-01")},
		{CustomerID: 1, ProductID: 2, Quantity: 1, OrderDate: date(t, "2024-05-01")},
	})
	require.NoError(t, err)

	top, err := s.MostPopularCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.CategoryCount{Category: "Alpha", Count: 1}, top)
}

func TestProductCountByCategory_OnlyDefinedCategories(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx,
		[]types.Product{types.NewProduct(1, "x", "Only", 1)},
		nil,
	))

	byCategory, err := s.ProductCountByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.CategoryCount{{Category: "Only", Count: 1}}, byCategory)
}

func TestSummary(t *testing.T) {
	s := openSeededStore(t)
	ctx := context.Background()

	empty, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.True(t, empty.TotalSales.IsZero())
	assert.Nil(t, empty.AverageOrderValue)
	assert.Nil(t, empty.MostPopularCategory)
	assert.Empty(t, empty.OrdersPerCustomer)
	assert.Len(t, empty.ProductCountByCategory, 3)

	_, err = s.InsertOrders(ctx, SampleOrders())
	require.NoError(t, err)

	full, err := s.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "12500.00", full.TotalSales.StringFixed(2))
	require.NotNil(t, full.AverageOrderValue)
	assert.Equal(t, "1785.71", full.AverageOrderValue.StringFixed(2))
	require.NotNil(t, full.MostPopularCategory)
	assert.Equal(t, "Ноутбуки", full.MostPopularCategory.Category)
	assert.Len(t, full.OrdersPerCustomer, 5)
}

func TestMoney_NonFiniteIsStorageError(t *testing.T) {
	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		_, err := money("total sales", v)
		assert.ErrorIs(t, err, types.ErrStorage, "value %v", v)
	}

	d, err := money("total sales", 1785.7142857)
	require.NoError(t, err)
	assert.Equal(t, "1785.71", d.StringFixed(2))
}
