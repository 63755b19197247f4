package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/storeroom/pkg/types"
)

const (
	totalSalesSQL = `SELECT COALESCE(SUM(p.price * o.quantity), 0)
FROM orders o
JOIN products p ON o.product_id = p.product_id`

	averageOrderValueSQL = `SELECT AVG(p.price * o.quantity)
FROM orders o
JOIN products p ON o.product_id = p.product_id`

	ordersPerCustomerSQL = `SELECT c.customer_id, c.first_name, c.last_name, COUNT(o.order_id)
FROM customers c
JOIN orders o ON c.customer_id = o.customer_id
GROUP BY c.customer_id, c.first_name, c.last_name
ORDER BY c.customer_id`

	mostPopularCategorySQL = `SELECT p.category, COUNT(*) AS cnt
FROM orders o
JOIN products p ON o.product_id = p.product_id
GROUP BY p.category
ORDER BY cnt DESC, p.category ASC
LIMIT 1`

	productCountByCategorySQL = `SELECT category, COUNT(*)
FROM products
GROUP BY category
ORDER BY category`
)

// TotalSales returns the sum of price * quantity over all orders, or zero
// when there are none.
func (s *Store) TotalSales(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.withTx(ctx, "total_sales", func(tx txn) error {
		var err error
		total, err = totalSales(ctx, tx)
		return err
	})
	return total, err
}

// AverageOrderValue returns the mean of price * quantity over all orders.
// It returns types.ErrNoData when there are no orders.
func (s *Store) AverageOrderValue(ctx context.Context) (decimal.Decimal, error) {
	var avg decimal.Decimal
	err := s.withTx(ctx, "average_order_value", func(tx txn) error {
		var err error
		avg, err = averageOrderValue(ctx, tx)
		return err
	})
	return avg, err
}

// OrdersPerCustomer counts orders per customer. Customers without orders
// are not listed. Rows are ordered by customer ID.
func (s *Store) OrdersPerCustomer(ctx context.Context) ([]types.CustomerOrders, error) {
	var out []types.CustomerOrders
	err := s.withTx(ctx, "orders_per_customer", func(tx txn) error {
		var err error
		out, err = ordersPerCustomer(ctx, tx)
		return err
	})
	return out, err
}

// MostPopularCategory returns the category with the most orders. Ties go to
// the category that sorts first. It returns types.ErrNoData when there are
// no orders.
func (s *Store) MostPopularCategory(ctx context.Context) (types.CategoryCount, error) {
	var top types.CategoryCount
	err := s.withTx(ctx, "most_popular_category", func(tx txn) error {
		var err error
		top, err = mostPopularCategory(ctx, tx)
		return err
	})
	return top, err
}

// ProductCountByCategory counts products per category, ordered by category.
func (s *Store) ProductCountByCategory(ctx context.Context) ([]types.CategoryCount, error) {
	var out []types.CategoryCount
	err := s.withTx(ctx, "product_count_by_category", func(tx txn) error {
		var err error
		out, err = productCountByCategory(ctx, tx)
		return err
	})
	return out, err
}

// Summary runs every report in one transaction. Unlike the single reports
// it does not fail on an empty orders table: the average and the popular
// category are left nil.
func (s *Store) Summary(ctx context.Context) (types.Summary, error) {
	var sum types.Summary
	err := s.withTx(ctx, "summary", func(tx txn) error {
		var err error
		if sum.TotalSales, err = totalSales(ctx, tx); err != nil {
			return err
		}

		avg, err := averageOrderValue(ctx, tx)
		switch {
		case err == nil:
			sum.AverageOrderValue = &avg
		case !errors.Is(err, types.ErrNoData):
			return err
		}

		top, err := mostPopularCategory(ctx, tx)
		switch {
		case err == nil:
			sum.MostPopularCategory = &top
		case !errors.Is(err, types.ErrNoData):
			return err
		}

		if sum.OrdersPerCustomer, err = ordersPerCustomer(ctx, tx); err != nil {
			return err
		}
		sum.ProductCountByCategory, err = productCountByCategory(ctx, tx)
		return err
	})
	return sum, err
}

func totalSales(ctx context.Context, tx txn) (decimal.Decimal, error) {
	var total float64
	if err := tx.queryRow(ctx, totalSalesSQL).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("total sales: %w", err)
	}
	return money("total sales", total)
}

func averageOrderValue(ctx context.Context, tx txn) (decimal.Decimal, error) {
	var avg sql.NullFloat64
	if err := tx.queryRow(ctx, averageOrderValueSQL).Scan(&avg); err != nil {
		return decimal.Zero, fmt.Errorf("average order value: %w", err)
	}
	if !avg.Valid {
		return decimal.Zero, fmt.Errorf("average order value: %w", types.ErrNoData)
	}
	return money("average order value", avg.Float64)
}

// money converts an engine aggregate. A non-finite value means a stored price
// overflowed, which decimal cannot represent.
func money(what string, v float64) (decimal.Decimal, error) {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return decimal.Zero, fmt.Errorf("%s: non-finite value %v: %w", what, v, types.ErrStorage)
	}
	return decimal.NewFromFloat(v), nil
}

func ordersPerCustomer(ctx context.Context, tx txn) ([]types.CustomerOrders, error) {
	rows, err := tx.query(ctx, ordersPerCustomerSQL)
	if err != nil {
		return nil, fmt.Errorf("orders per customer: %w", err)
	}
	defer rows.Close()

	out := []types.CustomerOrders{}
	for rows.Next() {
		var co types.CustomerOrders
		if err := rows.Scan(&co.CustomerID, &co.FirstName, &co.LastName, &co.Orders); err != nil {
			return nil, fmt.Errorf("scanning orders per customer: %w", err)
		}
		out = append(out, co)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders per customer: %w", err)
	}
	return out, nil
}

func mostPopularCategory(ctx context.Context, tx txn) (types.CategoryCount, error) {
	var top types.CategoryCount
	err := tx.queryRow(ctx, mostPopularCategorySQL).Scan(&top.Category, &top.Count)
	if errors.Is(err, sql.ErrNoRows) {
		return types.CategoryCount{}, fmt.Errorf("most popular category: %w", types.ErrNoData)
	}
	if err != nil {
		return types.CategoryCount{}, fmt.Errorf("most popular category: %w", err)
	}
	return top, nil
}

func productCountByCategory(ctx context.Context, tx txn) ([]types.CategoryCount, error) {
	rows, err := tx.query(ctx, productCountByCategorySQL)
	if err != nil {
		return nil, fmt.Errorf("product count by category: %w", err)
	}
	defer rows.Close()

	out := []types.CategoryCount{}
	for rows.Next() {
		var cc types.CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return nil, fmt.Errorf("scanning product count: %w", err)
		}
		out = append(out, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("product count by category: %w", err)
	}
	return out, nil
}
