package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderValidate(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		order   NewOrder
		wantErr bool
	}{
		{"positive quantity", NewOrder{CustomerID: 1, ProductID: 1, Quantity: 2, OrderDate: day}, false},
		{"zero quantity", NewOrder{CustomerID: 1, ProductID: 1, Quantity: 0, OrderDate: day}, true},
		{"negative quantity", NewOrder{CustomerID: 1, ProductID: 1, Quantity: -3, OrderDate: day}, true},
		{"missing date", NewOrder{CustomerID: 1, ProductID: 1, Quantity: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.order.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrConstraint)
		})
	}
}

func TestOrderDateRoundTrip(t *testing.T) {
	got, err := ParseOrderDate("2024-05-03")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-03", FormatOrderDate(got))

	_, err = ParseOrderDate("03/05/2024")
	assert.Error(t, err)
}

func TestProductDisplayName(t *testing.T) {
	p := NewProduct(1, "Lenovo44", "Ноутбуки", 1500)
	assert.Equal(t, "Lenovo44", p.DisplayName())

	p.Name = nil
	assert.Equal(t, "", p.DisplayName())
}

func TestCustomerFullName(t *testing.T) {
	c := Customer{FirstName: "Лев", LastName: "Толстой"}
	assert.Equal(t, "Лев Толстой", c.FullName())
}
