// Package main provides impsdump, an inspector for IMPS binary images.
// It prints the image header and a disassembly listing with the debug
// offset recorded for each instruction.
package main

import (
	"fmt"
	"os"

	"github.com/k0kubun/pp/v3"

	"github.com/sarchlab/impsim/insts"
	"github.com/sarchlab/impsim/loader"
)

// imageSummary is the header view printed ahead of the listing.
type imageSummary struct {
	Instructions int
	EntryPoint   uint32
	DataSize     int
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: impsdump <executable>\n")
		os.Exit(1)
	}

	program, err := loader.Load(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	pp.Println(imageSummary{
		Instructions: len(program.Instructions),
		EntryPoint:   program.EntryPoint,
		DataSize:     len(program.Data),
	})

	decoder := insts.NewDecoder()
	for i, word := range program.Instructions {
		marker := " "
		if uint32(i) == program.EntryPoint {
			marker = ">"
		}

		inst := decoder.Decode(word)
		fmt.Printf("%s%4d: 0x%08x  %-28s # offset %d\n",
			marker, i, word, inst.String(), program.DebugOffsets[i])
	}
}
