package main

import (
	"os"

	"github.com/coral-dex/pricing/cmd/pricesim/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
