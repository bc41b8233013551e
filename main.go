package main

import (
	"os"

	"github.com/alynch/portfolio-matcher/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
