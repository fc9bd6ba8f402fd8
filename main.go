// File: /main.go
package main

import (
	"os"

	"carservice-api/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
