package main

import (
	"os"

	"github.com/kd7yxm/go-clonemode/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
