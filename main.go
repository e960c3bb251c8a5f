package main

import (
	"os"

	"github.com/rav6044/smartpark/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
