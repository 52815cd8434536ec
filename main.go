package main

import (
	"os"

	"github.com/alphabetz/alphabetz/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
