package main

import (
	"os"

	"github.com/abhisek/tuturo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
