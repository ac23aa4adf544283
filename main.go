package main

import (
	"os"

	"github.com/f-sartori-v/mobauto2-decomp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
