package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		key  string
		want Command
		ok   bool
	}{
		{"0", CommandExit, true},
		{"1", CommandInsertOrders, true},
		{"7", CommandIncreasePrices, true},
		{"9", CommandStats, true},
		{"10", 0, false},
		{"-1", 0, false},
		{"x", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := ParseKey(tt.key)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "InsertOrders", CommandInsertOrders.String())
	assert.Equal(t, "Stats", CommandStats.String())
	assert.Equal(t, "Command(42)", Command(42).String())
}

func TestMenuCoversEveryCommand(t *testing.T) {
	seen := make(map[Command]bool)
	for _, c := range menuOrder {
		assert.True(t, c.Valid())
		assert.NotEmpty(t, c.Label())
		seen[c] = true
	}
	assert.Len(t, seen, commandCount)
}
