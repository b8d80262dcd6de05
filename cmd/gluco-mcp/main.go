package main

import (
	"fmt"
	"gluco-mcp/cmd/gluco-mcp/commands"
	"os"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
