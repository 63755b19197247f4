package types

import (
	"fmt"
	"math"
)

// Product is a catalog item. Category is the grouping key for reports.
type Product struct {
	ProductID int64   `json:"product_id" yaml:"product_id"`
	Name      *string `json:"name" yaml:"name"` // nullable column
	Category  string  `json:"category" yaml:"category"`
	Price     float64 `json:"price" yaml:"price"`
}

// DisplayName returns the product name or an empty string when unset.
func (p Product) DisplayName() string {
	if p.Name == nil {
		return ""
	}
	return *p.Name
}

// NewProduct builds a Product with a non-null name.
func NewProduct(id int64, name, category string, price float64) Product {
	return Product{ProductID: id, Name: &name, Category: category, Price: price}
}

// Validate rejects prices the reports cannot total: negative or non-finite.
func (p Product) Validate() error {
	if p.Price < 0 || math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
		return fmt.Errorf("product %d price %v: %w", p.ProductID, p.Price, ErrConstraint)
	}
	return nil
}
