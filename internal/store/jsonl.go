package store

// A dump directory holds one JSONL file per table, rows in primary key
// order, plus manifest.json. Each file is written atomically.

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/storeroom/pkg/types"
)

// Dump file names inside the dump directory.
const (
	ProductsFile  = "products.jsonl"
	CustomersFile = "customers.jsonl"
	OrdersFile    = "orders.jsonl"
	ManifestFile  = "manifest.json"
)

// Manifest describes one dump.
type Manifest struct {
	DumpID    string    `json:"dump_id"`
	CreatedAt time.Time `json:"created_at"`
	Driver    string    `json:"driver"`
	Products  int       `json:"products"`
	Customers int       `json:"customers"`
	Orders    int       `json:"orders"`
}

// Dump writes every product, customer and order to JSONL files in dir, read
// from a single transaction, followed by a manifest.
func (s *Store) Dump(ctx context.Context, dir string) (Manifest, error) {
	var (
		products  []types.Product
		customers []types.Customer
		orders    []types.Order
	)
	err := s.withTx(ctx, "dump", func(tx txn) error {
		var err error
		if products, err = listProducts(ctx, tx); err != nil {
			return err
		}
		if customers, err = listCustomers(ctx, tx); err != nil {
			return err
		}
		orders, err = listOrders(ctx, tx)
		return err
	})
	if err != nil {
		return Manifest{}, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Manifest{}, fmt.Errorf("%w: create dump dir: %w", types.ErrStorage, err)
	}
	if err := writeTable(filepath.Join(dir, ProductsFile), products); err != nil {
		return Manifest{}, err
	}
	if err := writeTable(filepath.Join(dir, CustomersFile), customers); err != nil {
		return Manifest{}, err
	}
	if err := writeTable(filepath.Join(dir, OrdersFile), orders); err != nil {
		return Manifest{}, err
	}

	m := Manifest{
		DumpID:    generateUUID(),
		CreatedAt: time.Now().UTC(),
		Driver:    s.dialect.name,
		Products:  len(products),
		Customers: len(customers),
		Orders:    len(orders),
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return Manifest{}, fmt.Errorf("marshal manifest: %w", err)
	}
	err = atomicWrite(filepath.Join(dir, ManifestFile), func(w io.Writer) error {
		_, err := w.Write(append(data, '\n'))
		return err
	})
	if err != nil {
		return Manifest{}, fmt.Errorf("%w: writing manifest: %w", types.ErrStorage, err)
	}
	return m, nil
}

// Restore replaces all content with the JSONL files in dir, keeping the
// dumped IDs. It runs in one transaction.
func (s *Store) Restore(ctx context.Context, dir string) error {
	products, err := readTable[types.Product](filepath.Join(dir, ProductsFile))
	if err != nil {
		return err
	}
	customers, err := readTable[types.Customer](filepath.Join(dir, CustomersFile))
	if err != nil {
		return err
	}
	orders, err := readTable[types.Order](filepath.Join(dir, OrdersFile))
	if err != nil {
		return err
	}
	if err := validateRestore(products, orders); err != nil {
		err = fmt.Errorf("restore: %w", err)
		s.metrics.Observe("restore", 0, err)
		return err
	}

	return s.withTx(ctx, "restore", func(tx txn) error {
		if err := resetTables(ctx, tx); err != nil {
			return err
		}
		if err := insertProducts(ctx, tx, products); err != nil {
			return err
		}
		if err := insertCustomers(ctx, tx, customers); err != nil {
			return err
		}
		for _, o := range orders {
			_, err := tx.exec(ctx,
				"INSERT INTO orders (order_id, customer_id, product_id, quantity, order_date) VALUES (?, ?, ?, ?, ?)",
				o.OrderID, o.CustomerID, o.ProductID, o.Quantity, types.FormatOrderDate(o.OrderDate),
			)
			if err != nil {
				return fmt.Errorf("restoring order %d: %w", o.OrderID, err)
			}
		}
		for _, stmt := range s.dialect.afterRestore {
			if _, err := tx.exec(ctx, stmt); err != nil {
				return fmt.Errorf("after restore: %w", err)
			}
		}
		return nil
	})
}

// validateRestore applies the checks InsertOrders and Seed make, since a dump
// file may have been edited by hand.
func validateRestore(products []types.Product, orders []types.Order) error {
	if err := validateProducts(products); err != nil {
		return err
	}
	for _, o := range orders {
		no := types.NewOrder{CustomerID: o.CustomerID, ProductID: o.ProductID, Quantity: o.Quantity, OrderDate: o.OrderDate}
		if err := no.Validate(); err != nil {
			return fmt.Errorf("order %d: %w", o.OrderID, err)
		}
	}
	return nil
}

// generateUUID generates a UUID v7 for dump IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// writeTable streams items to path as one JSON object per line. Blank lines
// are never written, so a table file holds exactly len(items) lines.
func writeTable[T any](path string, items []T) error {
	err := atomicWrite(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		for i, item := range items {
			if err := enc.Encode(item); err != nil {
				return fmt.Errorf("record %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: writing %s: %w", types.ErrStorage, filepath.Base(path), err)
	}
	return nil
}

// readTable decodes a table file written by writeTable. Blank lines are
// skipped so hand-edited dumps still load; any other malformed line fails
// the whole file.
func readTable[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrStorage, err)
	}
	defer f.Close()

	name := filepath.Base(path)
	items := []T{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for line := 1; scanner.Scan(); line++ {
		b := bytes.TrimSpace(scanner.Bytes())
		if len(b) == 0 {
			continue
		}
		var item T
		if err := json.Unmarshal(b, &item); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", name, line, err)
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", types.ErrStorage, name, err)
	}
	return items, nil
}

// atomicWrite writes path through a synced temp file in the same directory
// and renames it into place, so readers see the old file or the new one.
func atomicWrite(path string, fill func(w io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	w := bufio.NewWriter(tmp)
	if err := fill(w); err != nil {
		return fail(err)
	}
	if err := w.Flush(); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
