// Command storeroom is the storeroom inventory and order tracker CLI.
package main

import (
	"os"

	"github.com/mesh-intelligence/storeroom/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
