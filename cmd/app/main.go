// Arnold Cat Map viewer
// License: MIT

package main

import (
	"os"

	"arnold-cat-map/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
