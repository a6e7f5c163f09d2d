package main

import (
	"os"

	"github.com/allanpk716/cert_generator/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
