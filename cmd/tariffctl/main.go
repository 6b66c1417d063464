package main

import (
	"os"

	"github.com/flowers-delivery/cmd/tariffctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
