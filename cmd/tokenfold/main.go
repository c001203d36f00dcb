package main

import (
	"os"

	"github.com/tokenfold/tokenfold/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
