package main

import (
	"os"

	"chromactl/cmd/chromactl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
