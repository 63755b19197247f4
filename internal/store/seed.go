package store

import (
	"context"
	"fmt"
	"time"

	"github.com/mesh-intelligence/storeroom/pkg/types"
)

// seedProducts is the fixed product catalog loaded by ResetAndSeed.
var seedProducts = []types.Product{
	types.NewProduct(1, "Lenovo44", "Ноутбуки", 1500),
	types.NewProduct(2, "AsusA15", "Ноутбуки", 2000),
	types.NewProduct(3, "iphone16pro", "Телефоны", 900),
	types.NewProduct(4, "samsungs24", "Телефоны", 540),
	types.NewProduct(5, "ipadair2", "Планшеты", 600),
	types.NewProduct(6, "ipad 6 air", "Планшеты", 230),
}

// seedCustomers is the fixed customer list loaded by ResetAndSeed.
var seedCustomers = []types.Customer{
	{CustomerID: 1, FirstName: "Андрей", LastName: "Василий", Email: "andre12@gmail.com"},
	{CustomerID: 2, FirstName: "Илья", LastName: "Анатолий", Email: "ilyaanatoli23@gmail.com"},
	{CustomerID: 3, FirstName: "Лев", LastName: "Толстой", Email: "levtolstov34@gmail.com"},
	{CustomerID: 4, FirstName: "Макс", LastName: "Сергеевич", Email: "maksserhi23@gmail.com"},
	{CustomerID: 5, FirstName: "Егор", LastName: "Генадиевич", Email: "egorgenadiev56@gmail.com"},
}

// SeedProducts returns a copy of the fixed product catalog.
func SeedProducts() []types.Product {
	out := make([]types.Product, len(seedProducts))
	copy(out, seedProducts)
	return out
}

// SeedCustomers returns a copy of the fixed customer list.
func SeedCustomers() []types.Customer {
	out := make([]types.Customer, len(seedCustomers))
	copy(out, seedCustomers)
	return out
}

// SampleOrders returns the demonstration batch the shell inserts from its
// "add orders" entry. It references only seeded customers and products.
func SampleOrders() []types.NewOrder {
	day := func(d int) time.Time { return time.Date(2024, time.May, d, 0, 0, 0, 0, time.UTC) }
	return []types.NewOrder{
		{CustomerID: 1, ProductID: 1, Quantity: 1, OrderDate: day(1)},
		{CustomerID: 2, ProductID: 2, Quantity: 2, OrderDate: day(3)},
		{CustomerID: 1, ProductID: 3, Quantity: 1, OrderDate: day(4)},
		{CustomerID: 3, ProductID: 1, Quantity: 3, OrderDate: day(5)},
		{CustomerID: 4, ProductID: 4, Quantity: 1, OrderDate: day(6)},
		{CustomerID: 5, ProductID: 6, Quantity: 2, OrderDate: day(7)},
		{CustomerID: 2, ProductID: 5, Quantity: 1, OrderDate: day(8)},
	}
}

// ResetAndSeed replaces all content with the fixed products and customers.
// Orders are left empty.
func (s *Store) ResetAndSeed(ctx context.Context) error {
	return s.Seed(ctx, seedProducts, seedCustomers)
}

// Seed deletes every order, customer and product, then inserts the given
// products and customers, all in one transaction. Nothing is visible if any
// step fails.
func (s *Store) Seed(ctx context.Context, products []types.Product, customers []types.Customer) error {
	if err := validateProducts(products); err != nil {
		err = fmt.Errorf("seed: %w", err)
		s.metrics.Observe("seed", 0, err)
		return err
	}
	return s.withTx(ctx, "seed", func(tx txn) error {
		if err := resetTables(ctx, tx); err != nil {
			return err
		}
		if err := insertProducts(ctx, tx, products); err != nil {
			return err
		}
		return insertCustomers(ctx, tx, customers)
	})
}

func validateProducts(products []types.Product) error {
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func resetTables(ctx context.Context, tx txn) error {
	for _, stmt := range resetDML {
		if _, err := tx.exec(ctx, stmt); err != nil {
			return fmt.Errorf("reset (%s): %w", stmt, err)
		}
	}
	return nil
}

func insertProducts(ctx context.Context, tx txn, products []types.Product) error {
	for _, p := range products {
		_, err := tx.exec(ctx,
			"INSERT INTO products (product_id, name, category, price) VALUES (?, ?, ?, ?)",
			p.ProductID, p.Name, p.Category, p.Price,
		)
		if err != nil {
			return fmt.Errorf("seeding product %d: %w", p.ProductID, err)
		}
	}
	return nil
}

func insertCustomers(ctx context.Context, tx txn, customers []types.Customer) error {
	for _, c := range customers {
		_, err := tx.exec(ctx,
			"INSERT INTO customers (customer_id, first_name, last_name, email) VALUES (?, ?, ?, ?)",
			c.CustomerID, c.FirstName, c.LastName, c.Email,
		)
		if err != nil {
			return fmt.Errorf("seeding customer %d: %w", c.CustomerID, err)
		}
	}
	return nil
}
