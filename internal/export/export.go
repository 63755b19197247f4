// Package export renders report results and table listings as text, JSON,
// CSV or XLSX.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/storeroom/pkg/types"
)

// Format is an output encoding.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat maps a format name to a Format. Matching ignores case.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: text, json, csv, xlsx)", ErrUnknownFormat, name)
	}
}

// Table is one titled grid of cells. Name doubles as the XLSX sheet name.
type Table struct {
	Name    string
	Title   string
	Headers []string
	Rows    [][]string
}

// Money formats an amount with two decimals.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func price(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

func count(n int64) string {
	return strconv.FormatInt(n, 10)
}

// SummaryTable lists the scalar reports as metric/value pairs. Reports with
// no data are shown as "n/a".
func SummaryTable(s types.Summary) Table {
	avg, top, topOrders := "n/a", "n/a", "n/a"
	if s.AverageOrderValue != nil {
		avg = Money(*s.AverageOrderValue)
	}
	if s.MostPopularCategory != nil {
		top = s.MostPopularCategory.Category
		topOrders = count(s.MostPopularCategory.Count)
	}
	return Table{
		Name:    "Summary",
		Title:   "Summary",
		Headers: []string{"METRIC", "VALUE"},
		Rows: [][]string{
			{"Total sales", Money(s.TotalSales)},
			{"Average order value", avg},
			{"Most popular category", top},
			{"Orders in most popular category", topOrders},
		},
	}
}

// OrdersPerCustomerTable renders the orders-per-customer report.
func OrdersPerCustomerTable(rows []types.CustomerOrders) Table {
	t := Table{
		Name:    "OrdersPerCustomer",
		Title:   "Orders per customer",
		Headers: []string{"ID", "FIRST NAME", "LAST NAME", "ORDERS"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{count(r.CustomerID), r.FirstName, r.LastName, count(r.Orders)})
	}
	return t
}

// ProductsByCategoryTable renders the product-count-by-category report.
func ProductsByCategoryTable(rows []types.CategoryCount) Table {
	t := Table{
		Name:    "ProductsByCategory",
		Title:   "Products by category",
		Headers: []string{"CATEGORY", "PRODUCTS"},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{r.Category, count(r.Count)})
	}
	return t
}

// ProductsTable renders the product catalog. Null names show as empty.
func ProductsTable(products []types.Product) Table {
	t := Table{
		Name:    "Products",
		Title:   "Products",
		Headers: []string{"ID", "NAME", "CATEGORY", "PRICE"},
	}
	for _, p := range products {
		t.Rows = append(t.Rows, []string{count(p.ProductID), p.DisplayName(), p.Category, price(p.Price)})
	}
	return t
}

// CustomersTable renders the customer list.
func CustomersTable(customers []types.Customer) Table {
	t := Table{
		Name:    "Customers",
		Title:   "Customers",
		Headers: []string{"ID", "FIRST NAME", "LAST NAME", "EMAIL"},
	}
	for _, c := range customers {
		t.Rows = append(t.Rows, []string{count(c.CustomerID), c.FirstName, c.LastName, c.Email})
	}
	return t
}

// OrdersTable renders stored orders.
func OrdersTable(orders []types.Order) Table {
	t := Table{
		Name:    "Orders",
		Title:   "Orders",
		Headers: []string{"ID", "CUSTOMER", "PRODUCT", "QUANTITY", "DATE"},
	}
	for _, o := range orders {
		t.Rows = append(t.Rows, []string{
			count(o.OrderID), count(o.CustomerID), count(o.ProductID),
			count(o.Quantity), types.FormatOrderDate(o.OrderDate),
		})
	}
	return t
}

// SummaryTables splits a Summary into the tables every tabular format writes.
func SummaryTables(s types.Summary) []Table {
	return []Table{
		SummaryTable(s),
		OrdersPerCustomerTable(s.OrdersPerCustomer),
		ProductsByCategoryTable(s.ProductCountByCategory),
	}
}

// WriteSummary writes s to w in the given format.
func WriteSummary(w io.Writer, format Format, s types.Summary) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, s)
	case FormatText:
		return WriteText(w, SummaryTables(s)...)
	case FormatCSV:
		return WriteCSV(w, SummaryTables(s)...)
	case FormatXLSX:
		return WriteXLSX(w, SummaryTables(s)...)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
