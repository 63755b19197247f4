package types

import (
	"fmt"
	"time"
)

// OrderDateLayout is the ISO date format orders are stored in.
const OrderDateLayout = "2006-01-02"

// Order is a stored order row.
type Order struct {
	OrderID    int64     `json:"order_id"`
	CustomerID int64     `json:"customer_id"`
	ProductID  int64     `json:"product_id"`
	Quantity   int64     `json:"quantity"`
	OrderDate  time.Time `json:"order_date"`
}

// NewOrder is one row of an InsertOrders batch. The order ID is assigned by
// the engine on insert.
type NewOrder struct {
	CustomerID int64     `json:"customer_id" yaml:"customer_id"`
	ProductID  int64     `json:"product_id" yaml:"product_id"`
	Quantity   int64     `json:"quantity" yaml:"quantity"`
	OrderDate  time.Time `json:"order_date" yaml:"order_date"`
}

// Validate checks the fields the schema cannot express. Referential checks
// are left to the engine.
func (o NewOrder) Validate() error {
	if o.Quantity <= 0 {
		return fmt.Errorf("quantity %d for customer %d product %d: %w",
			o.Quantity, o.CustomerID, o.ProductID, ErrConstraint)
	}
	if o.OrderDate.IsZero() {
		return fmt.Errorf("missing order date for customer %d product %d: %w",
			o.CustomerID, o.ProductID, ErrConstraint)
	}
	return nil
}

// FormatOrderDate renders t the way order_date is stored.
func FormatOrderDate(t time.Time) string {
	return t.Format(OrderDateLayout)
}

// ParseOrderDate parses a stored order_date value. Engines that return DATE
// columns as timestamps are handled by the caller before this point.
func ParseOrderDate(s string) (time.Time, error) {
	t, err := time.Parse(OrderDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse order date %q: %w", s, err)
	}
	return t, nil
}
