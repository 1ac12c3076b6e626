// Package main provides the entry point for impsim.
// Impsim is an emulator for the IMPS instruction set, a reduced MIPS.
//
// For the full CLI, use: go run ./cmd/impsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("impsim - IMPS instruction set emulator")
	fmt.Println("")
	fmt.Println("Usage: impsim [-t] <executable>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -t    Trace executed instructions and register changes")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/impsim' for the full CLI,")
	fmt.Println("'go run ./cmd/impsdump' to inspect an image,")
	fmt.Println("or 'go run ./cmd/impsbench' to run the reference programs.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/impsim' instead.")
	}
}
