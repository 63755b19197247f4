// Package batch reads order batches for InsertOrders from YAML or JSON files
// and from inline "customer,product,quantity,date" strings.
package batch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/storeroom/pkg/types"
)

// ErrEmptyBatch is returned when a batch file holds no orders.
var ErrEmptyBatch = errors.New("batch contains no orders")

// fileOrder is one order as written in a batch file. Dates stay strings so
// both quoted and unquoted YAML dates parse the same way.
type fileOrder struct {
	CustomerID int64  `yaml:"customer_id"`
	ProductID  int64  `yaml:"product_id"`
	Quantity   int64  `yaml:"quantity"`
	OrderDate  string `yaml:"order_date"`
}

type batchFile struct {
	Orders []fileOrder `yaml:"orders"`
}

// Load reads a batch file. JSON is accepted because it is valid YAML.
func Load(path string) ([]types.NewOrder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open batch: %w", err)
	}
	defer f.Close()

	orders, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return orders, nil
}

// Parse decodes a batch document of the form
//
//	orders:
//	  - customer_id: 1
//	    product_id: 1
//	    quantity: 2
//	    order_date: 2024-05-01
func Parse(r io.Reader) ([]types.NewOrder, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var bf batchFile
	if err := dec.Decode(&bf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyBatch
		}
		return nil, fmt.Errorf("decode batch: %w", err)
	}
	if len(bf.Orders) == 0 {
		return nil, ErrEmptyBatch
	}

	out := make([]types.NewOrder, 0, len(bf.Orders))
	for i, fo := range bf.Orders {
		d, err := types.ParseOrderDate(fo.OrderDate)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", i+1, err)
		}
		out = append(out, types.NewOrder{
			CustomerID: fo.CustomerID,
			ProductID:  fo.ProductID,
			Quantity:   fo.Quantity,
			OrderDate:  d,
		})
	}
	return out, nil
}

// ParseInline parses an inline "customer,product,quantity,date" order.
func ParseInline(line string) (types.NewOrder, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 4 {
		return types.NewOrder{}, fmt.Errorf("invalid order %q (expected customer,product,quantity,date)", line)
	}

	var ids [3]int64
	for i, name := range []string{"customer", "product", "quantity"} {
		v, err := strconv.ParseInt(strings.TrimSpace(parts[i]), 10, 64)
		if err != nil {
			return types.NewOrder{}, fmt.Errorf("invalid %s in %q: %w", name, line, err)
		}
		ids[i] = v
	}
	d, err := types.ParseOrderDate(strings.TrimSpace(parts[3]))
	if err != nil {
		return types.NewOrder{}, err
	}
	return types.NewOrder{CustomerID: ids[0], ProductID: ids[1], Quantity: ids[2], OrderDate: d}, nil
}
