package main

import (
	"os"

	"github.com/hamedtrades1-cmyk/subnow/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
