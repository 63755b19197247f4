package shell

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/storeroom/internal/export"
	"github.com/mesh-intelligence/storeroom/internal/metrics"
	"github.com/mesh-intelligence/storeroom/pkg/types"
)

// Library is the report and mutation surface the menu drives.
// *store.Store satisfies it.
type Library interface {
	InsertOrders(ctx context.Context, batch []types.NewOrder) ([]int64, error)
	TotalSales(ctx context.Context) (decimal.Decimal, error)
	OrdersPerCustomer(ctx context.Context) ([]types.CustomerOrders, error)
	AverageOrderValue(ctx context.Context) (decimal.Decimal, error)
	MostPopularCategory(ctx context.Context) (types.CategoryCount, error)
	ProductCountByCategory(ctx context.Context) ([]types.CategoryCount, error)
	IncreasePrices(ctx context.Context, category string, factor float64) (int64, error)
	ListProducts(ctx context.Context) ([]types.Product, error)
}

// StatsSource reports operation counters. *metrics.Recorder satisfies it.
type StatsSource interface {
	Operations() ([]metrics.OperationStat, error)
}

// Handler runs one command and writes its result to out.
type Handler func(ctx context.Context, out io.Writer) error

// ErrNoHandler is returned when a command has no registered handler.
var ErrNoHandler = errors.New("no handler for command")

// Default price increase applied by CommandIncreasePrices.
const (
	DefaultPriceCategory = "Телефоны"
	DefaultPriceFactor   = 1.10
)

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*dispatcherConfig)

type dispatcherConfig struct {
	orders   []types.NewOrder
	category string
	factor   float64
	stats    StatsSource
}

// WithOrders sets the batch CommandInsertOrders inserts.
func WithOrders(batch []types.NewOrder) DispatcherOption {
	return func(c *dispatcherConfig) { c.orders = batch }
}

// WithPriceIncrease sets the category and factor CommandIncreasePrices uses.
func WithPriceIncrease(category string, factor float64) DispatcherOption {
	return func(c *dispatcherConfig) {
		c.category = category
		c.factor = factor
	}
}

// WithStats sets the counter source for CommandStats.
func WithStats(s StatsSource) DispatcherOption {
	return func(c *dispatcherConfig) { c.stats = s }
}

// Dispatcher maps commands to handlers.
type Dispatcher struct {
	handlers map[Command]Handler
}

// NewDispatcher registers a handler for every command except CommandExit,
// which the loop handles itself.
func NewDispatcher(lib Library, opts ...DispatcherOption) *Dispatcher {
	cfg := dispatcherConfig{
		category: DefaultPriceCategory,
		factor:   DefaultPriceFactor,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	d := &Dispatcher{handlers: make(map[Command]Handler)}
	d.Register(CommandInsertOrders, insertOrders(lib, cfg.orders))
	d.Register(CommandTotalSales, totalSales(lib))
	d.Register(CommandOrdersPerCustomer, ordersPerCustomer(lib))
	d.Register(CommandAverageOrderValue, averageOrderValue(lib))
	d.Register(CommandMostPopularCategory, mostPopularCategory(lib))
	d.Register(CommandProductsByCategory, productsByCategory(lib))
	d.Register(CommandIncreasePrices, increasePrices(lib, cfg.category, cfg.factor))
	d.Register(CommandShowProducts, showProducts(lib))
	d.Register(CommandStats, showStats(cfg.stats))
	return d
}

// Register sets the handler for c, replacing any previous one.
func (d *Dispatcher) Register(c Command, h Handler) {
	d.handlers[c] = h
}

// Dispatch runs the handler for c.
func (d *Dispatcher) Dispatch(ctx context.Context, c Command, out io.Writer) error {
	h, ok := d.handlers[c]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoHandler, c)
	}
	return h(ctx, out)
}

func insertOrders(lib Library, batch []types.NewOrder) Handler {
	return func(ctx context.Context, out io.Writer) error {
		ids, err := lib.InsertOrders(ctx, batch)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "Inserted %d orders.\n", len(ids))
		return err
	}
}

func totalSales(lib Library) Handler {
	return func(ctx context.Context, out io.Writer) error {
		total, err := lib.TotalSales(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "Total sales: %s\n", export.Money(total))
		return err
	}
}

func ordersPerCustomer(lib Library) Handler {
	return func(ctx context.Context, out io.Writer) error {
		rows, err := lib.OrdersPerCustomer(ctx)
		if err != nil {
			return err
		}
		return export.WriteText(out, export.OrdersPerCustomerTable(rows))
	}
}

func averageOrderValue(lib Library) Handler {
	return func(ctx context.Context, out io.Writer) error {
		avg, err := lib.AverageOrderValue(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "Average order value: %s\n", export.Money(avg))
		return err
	}
}

func mostPopularCategory(lib Library) Handler {
	return func(ctx context.Context, out io.Writer) error {
		top, err := lib.MostPopularCategory(ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "Most popular category: %s (%d orders)\n", top.Category, top.Count)
		return err
	}
}

func productsByCategory(lib Library) Handler {
	return func(ctx context.Context, out io.Writer) error {
		rows, err := lib.ProductCountByCategory(ctx)
		if err != nil {
			return err
		}
		return export.WriteText(out, export.ProductsByCategoryTable(rows))
	}
}

func increasePrices(lib Library, category string, factor float64) Handler {
	return func(ctx context.Context, out io.Writer) error {
		n, err := lib.IncreasePrices(ctx, category, factor)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "Prices in %s multiplied by %g (%d products).\n", category, factor, n)
		return err
	}
}

func showProducts(lib Library) Handler {
	return func(ctx context.Context, out io.Writer) error {
		products, err := lib.ListProducts(ctx)
		if err != nil {
			return err
		}
		return export.WriteText(out, export.ProductsTable(products))
	}
}

func showStats(src StatsSource) Handler {
	return func(_ context.Context, out io.Writer) error {
		if src == nil {
			_, err := fmt.Fprintln(out, "Operation stats are not being recorded.")
			return err
		}
		stats, err := src.Operations()
		if err != nil {
			return fmt.Errorf("gathering stats: %w", err)
		}
		t := export.Table{
			Name:    "Stats",
			Title:   "Operation stats",
			Headers: []string{"OPERATION", "OUTCOME", "COUNT"},
		}
		for _, s := range stats {
			t.Rows = append(t.Rows, []string{s.Operation, s.Outcome, fmt.Sprintf("%.0f", s.Count)})
		}
		return export.WriteText(out, t)
	}
}
