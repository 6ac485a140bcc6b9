package main

import (
	"os"

	"github.com/mbattaglia/cedear-screener/cmd/screener/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
