package types

import "github.com/shopspring/decimal"

// CustomerOrders is one row of the orders-per-customer report.
type CustomerOrders struct {
	CustomerID int64  `json:"customer_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Orders     int64  `json:"orders"`
}

// CategoryCount pairs a product category with a count. The count means
// orders for the popular-category report and products for the
// products-by-category report.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// Summary bundles every report. AverageOrderValue and MostPopularCategory are
// nil when there are no orders.
type Summary struct {
	TotalSales             decimal.Decimal  `json:"total_sales"`
	AverageOrderValue      *decimal.Decimal `json:"average_order_value"`
	MostPopularCategory    *CategoryCount   `json:"most_popular_category"`
	OrdersPerCustomer      []CustomerOrders `json:"orders_per_customer"`
	ProductCountByCategory []CategoryCount  `json:"product_count_by_category"`
}
