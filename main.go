package main

import (
	"os"

	"github.com/yusufk/chefmate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
