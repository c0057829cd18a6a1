package main

import (
	"os"

	"github.com/tamcore/pycollect/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
