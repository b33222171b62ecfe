package main

import (
	"os"

	"github.com/skycast/skycast/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
