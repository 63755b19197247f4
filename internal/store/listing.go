package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/storeroom/pkg/types"
)

// ListProducts returns every product ordered by product ID.
func (s *Store) ListProducts(ctx context.Context) ([]types.Product, error) {
	var out []types.Product
	err := s.withTx(ctx, "list_products", func(tx txn) error {
		var err error
		out, err = listProducts(ctx, tx)
		return err
	})
	return out, err
}

// ListCustomers returns every customer ordered by customer ID.
func (s *Store) ListCustomers(ctx context.Context) ([]types.Customer, error) {
	var out []types.Customer
	err := s.withTx(ctx, "list_customers", func(tx txn) error {
		var err error
		out, err = listCustomers(ctx, tx)
		return err
	})
	return out, err
}

// ListOrders returns every order ordered by order ID.
func (s *Store) ListOrders(ctx context.Context) ([]types.Order, error) {
	var out []types.Order
	err := s.withTx(ctx, "list_orders", func(tx txn) error {
		var err error
		out, err = listOrders(ctx, tx)
		return err
	})
	return out, err
}

func listProducts(ctx context.Context, tx txn) ([]types.Product, error) {
	rows, err := tx.query(ctx, "SELECT product_id, name, category, price FROM products ORDER BY product_id")
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	out := []types.Product{}
	for rows.Next() {
		var p types.Product
		var name sql.NullString
		if err := rows.Scan(&p.ProductID, &name, &p.Category, &p.Price); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		if name.Valid {
			p.Name = &name.String
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func listCustomers(ctx context.Context, tx txn) ([]types.Customer, error) {
	rows, err := tx.query(ctx, "SELECT customer_id, first_name, last_name, email FROM customers ORDER BY customer_id")
	if err != nil {
		return nil, fmt.Errorf("querying customers: %w", err)
	}
	defer rows.Close()

	out := []types.Customer{}
	for rows.Next() {
		var c types.Customer
		if err := rows.Scan(&c.CustomerID, &c.FirstName, &c.LastName, &c.Email); err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func listOrders(ctx context.Context, tx txn) ([]types.Order, error) {
	rows, err := tx.query(ctx, "SELECT order_id, customer_id, product_id, quantity, order_date FROM orders ORDER BY order_id")
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	out := []types.Order{}
	for rows.Next() {
		var o types.Order
		var date any
		if err := rows.Scan(&o.OrderID, &o.CustomerID, &o.ProductID, &o.Quantity, &date); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		if o.OrderDate, err = scanOrderDate(date); err != nil {
			return nil, fmt.Errorf("order %d: %w", o.OrderID, err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
