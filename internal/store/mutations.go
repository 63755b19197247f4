package store

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/text/cases"

	"github.com/mesh-intelligence/storeroom/pkg/types"
)

// InsertOrders inserts every row of batch as a new order and returns the
// generated order IDs in batch order. The batch is all-or-nothing: a
// non-positive quantity, an unknown customer or an unknown product rejects
// the whole batch with an error wrapping types.ErrConstraint. An empty batch
// is a no-op.
func (s *Store) InsertOrders(ctx context.Context, batch []types.NewOrder) ([]int64, error) {
	for i, o := range batch {
		if err := o.Validate(); err != nil {
			err = fmt.Errorf("insert_orders: row %d: %w", i, err)
			s.metrics.Observe("insert_orders", 0, err)
			return nil, err
		}
	}
	if len(batch) == 0 {
		return []int64{}, nil
	}

	ids := make([]int64, 0, len(batch))
	err := s.withTx(ctx, "insert_orders", func(tx txn) error {
		for i, o := range batch {
			var id int64
			err := tx.queryRow(ctx,
				"INSERT INTO orders (customer_id, product_id, quantity, order_date) VALUES (?, ?, ?, ?) RETURNING order_id",
				o.CustomerID, o.ProductID, o.Quantity, types.FormatOrderDate(o.OrderDate),
			).Scan(&id)
			if err != nil {
				return fmt.Errorf("row %d (customer %d, product %d): %w", i, o.CustomerID, o.ProductID, err)
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// IncreasePrices multiplies the price of every product whose category
// matches category under Unicode case folding, and returns how many products
// changed. No match is not an error. Each call multiplies the current price,
// so repeated calls compound. A factor that would overflow any matching
// price rejects the whole call with types.ErrInvalidFactor.
func (s *Store) IncreasePrices(ctx context.Context, category string, factor float64) (int64, error) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		err := fmt.Errorf("increase_prices: factor %v: %w", factor, types.ErrInvalidFactor)
		s.metrics.Observe("increase_prices", 0, err)
		return 0, err
	}

	var changed int64
	err := s.withTx(ctx, "increase_prices", func(tx txn) error {
		matches, err := productsInCategory(ctx, tx, category)
		if err != nil {
			return err
		}
		for _, m := range matches {
			if next := m.price * factor; math.IsInf(next, 0) {
				return fmt.Errorf("product %d price %v x %v overflows: %w", m.id, m.price, factor, types.ErrInvalidFactor)
			}
		}
		for _, m := range matches {
			id := m.id
			res, err := tx.exec(ctx, "UPDATE products SET price = price * ? WHERE product_id = ?", factor, id)
			if err != nil {
				return fmt.Errorf("updating product %d: %w", id, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("updating product %d: %w", id, err)
			}
			changed += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}

type priced struct {
	id    int64
	price float64
}

// productsInCategory matches in Go because SQLite's LOWER() folds ASCII only.
func productsInCategory(ctx context.Context, tx txn, category string) ([]priced, error) {
	fold := cases.Fold()
	want := fold.String(category)

	rows, err := tx.query(ctx, "SELECT product_id, category, price FROM products ORDER BY product_id")
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var out []priced
	for rows.Next() {
		var p priced
		var cat string
		if err := rows.Scan(&p.id, &cat, &p.price); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		if fold.String(cat) == want {
			out = append(out, p)
		}
	}
	return out, rows.Err()
}
