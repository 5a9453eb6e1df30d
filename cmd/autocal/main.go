package main

import (
	"os"

	"github.com/vuhoang/autocal/cmd/autocal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
