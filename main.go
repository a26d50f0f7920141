package main

import (
	"os"

	"github.com/rasingollam/AI-Tutor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
