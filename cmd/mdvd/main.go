package main

import (
	"os"

	"github.com/subconv/mdvd/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
