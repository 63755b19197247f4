package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/storeroom/internal/export"
	"github.com/mesh-intelligence/storeroom/internal/store"
)

// Report names accepted by "storeroom report".
const (
	reportTotalSales         = "total-sales"
	reportAverageOrder       = "average-order"
	reportPopularCategory    = "popular-category"
	reportOrdersPerCustomer  = "orders-per-customer"
	reportProductsByCategory = "products-by-category"
	reportSummary            = "summary"
)

var reportNames = []string{
	reportTotalSales,
	reportAverageOrder,
	reportPopularCategory,
	reportOrdersPerCustomer,
	reportProductsByCategory,
	reportSummary,
}

func newReportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "report <name>",
		Short: "Run a sales report",
		Long: `Report runs one of the fixed reports over the stored orders.

Valid reports: ` + strings.Join(reportNames, ", ") + `

Average order value and most popular category fail with exit code 1 when
there are no orders; summary reports them as n/a instead.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: reportNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(reportNames, args[0]) {
				return unknownReport(args[0])
			}
			return a.withStore(cmd, func(s *store.Store) error {
				return runReport(cmd, a, s, args[0])
			})
		},
	}
}

func runReport(cmd *cobra.Command, a *app, s *store.Store, name string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	switch name {
	case reportTotalSales:
		total, err := s.TotalSales(ctx)
		if err != nil {
			return err
		}
		return a.scalar(out, "total_sales", "Total sales", export.Money(total), total)

	case reportAverageOrder:
		avg, err := s.AverageOrderValue(ctx)
		if err != nil {
			return err
		}
		return a.scalar(out, "average_order_value", "Average order value", export.Money(avg), avg)

	case reportPopularCategory:
		top, err := s.MostPopularCategory(ctx)
		if err != nil {
			return err
		}
		if a.flags.jsonMode {
			return export.WriteJSON(out, top)
		}
		_, err = fmt.Fprintf(out, "Most popular category: %s (%d orders)\n", top.Category, top.Count)
		return err

	case reportOrdersPerCustomer:
		rows, err := s.OrdersPerCustomer(ctx)
		if err != nil {
			return err
		}
		return a.render(out, rows, export.OrdersPerCustomerTable(rows))

	case reportProductsByCategory:
		rows, err := s.ProductCountByCategory(ctx)
		if err != nil {
			return err
		}
		return a.render(out, rows, export.ProductsByCategoryTable(rows))

	case reportSummary:
		sum, err := s.Summary(ctx)
		if err != nil {
			return err
		}
		return a.render(out, sum, export.SummaryTables(sum)...)

	default:
		return unknownReport(name)
	}
}

func unknownReport(name string) error {
	return userError(fmt.Sprintf("unknown report %q (valid: %s)", name, strings.Join(reportNames, ", ")), nil)
}
