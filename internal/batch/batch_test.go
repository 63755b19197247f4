package batch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/storeroom/pkg/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    int
		wantErr bool
	}{
		{
			name: "yaml with unquoted dates",
			doc: `orders:
  - customer_id: 1
    product_id: 1
    quantity: 2
    order_date: 2024-05-01
  - customer_id: 2
    product_id: 3
    quantity: 1
    order_date: "2024-05-03"
`,
			want: 2,
		},
		{
			name: "json document",
			doc:  `{"orders": [{"customer_id": 1, "product_id": 2, "quantity": 1, "order_date": "2024-05-04"}]}`,
			want: 1,
		},
		{
			name:    "unknown field",
			doc:     "orders:\n  - customer: 1\n",
			wantErr: true,
		},
		{
			name:    "bad date",
			doc:     "orders:\n  - customer_id: 1\n    product_id: 1\n    quantity: 1\n    order_date: 05/01/2024\n",
			wantErr: true,
		},
		{
			name:    "empty document",
			doc:     "",
			wantErr: true,
		},
		{
			name:    "no orders",
			doc:     "orders: []\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestParse_Fields(t *testing.T) {
	got, err := Parse(strings.NewReader("orders:\n  - {customer_id: 3, product_id: 1, quantity: 3, order_date: 2024-05-05}\n"))
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, int64(3), got[0].CustomerID)
	assert.Equal(t, int64(1), got[0].ProductID)
	assert.Equal(t, int64(3), got[0].Quantity)
	assert.Equal(t, "2024-05-05", types.FormatOrderDate(got[0].OrderDate))
}

func TestParse_EmptyBatchSentinel(t *testing.T) {
	_, err := Parse(strings.NewReader("orders: []\n"))
	assert.ErrorIs(t, err, ErrEmptyBatch)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.yaml")
	require.NoError(t, os.WriteFile(path, []byte("orders:\n  - {customer_id: 1, product_id: 1, quantity: 1, order_date: 2024-05-01}\n"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseInline(t *testing.T) {
	got, err := ParseInline("1, 4, 2, 2024-05-06")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.CustomerID)
	assert.Equal(t, int64(4), got.ProductID)
	assert.Equal(t, int64(2), got.Quantity)
	assert.Equal(t, "2024-05-06", types.FormatOrderDate(got.OrderDate))

	for _, bad := range []string{"1,2,3", "a,2,3,2024-05-01", "1,2,x,2024-05-01", "1,2,3,tomorrow"} {
		_, err := ParseInline(bad)
		assert.Error(t, err, bad)
	}
}
