package main

import (
	"os"

	"github.com/defogjs/defog/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
