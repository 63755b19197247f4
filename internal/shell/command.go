// Package shell implements the interactive menu. Each menu entry is a
// Command; a Dispatcher routes commands to handlers over a Library, so the
// loop itself never names store operations.
package shell

import "strconv"

//go:generate go tool stringer -type=Command -trimprefix=Command -output=command_string.go

// Command is one menu entry. The numeric value is the key typed at the
// prompt.
type Command int

const (
	CommandExit Command = iota
	CommandInsertOrders
	CommandTotalSales
	CommandOrdersPerCustomer
	CommandAverageOrderValue
	CommandMostPopularCategory
	CommandProductsByCategory
	CommandIncreasePrices
	CommandShowProducts
	CommandStats

	commandCount = int(iota)
)

// menuOrder lists commands in the order the menu prints them.
var menuOrder = []Command{
	CommandInsertOrders,
	CommandTotalSales,
	CommandOrdersPerCustomer,
	CommandAverageOrderValue,
	CommandMostPopularCategory,
	CommandProductsByCategory,
	CommandIncreasePrices,
	CommandShowProducts,
	CommandStats,
	CommandExit,
}

var labels = map[Command]string{
	CommandExit:                "Exit",
	CommandInsertOrders:        "Add sample orders",
	CommandTotalSales:          "Total sales",
	CommandOrdersPerCustomer:   "Orders per customer",
	CommandAverageOrderValue:   "Average order value",
	CommandMostPopularCategory: "Most popular category",
	CommandProductsByCategory:  "Products by category",
	CommandIncreasePrices:      "Increase prices",
	CommandShowProducts:        "Show products",
	CommandStats:               "Operation stats",
}

// Key returns the menu key for c.
func (c Command) Key() string {
	return strconv.Itoa(int(c))
}

// Label returns the menu text for c.
func (c Command) Label() string {
	if l, ok := labels[c]; ok {
		return l
	}
	return c.String()
}

// Valid reports whether c is a defined command.
func (c Command) Valid() bool {
	return c >= 0 && int(c) < commandCount
}

// ParseKey maps a menu key to its command.
func ParseKey(key string) (Command, bool) {
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, false
	}
	c := Command(n)
	return c, c.Valid()
}
