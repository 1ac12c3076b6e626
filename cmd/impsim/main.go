// Package main provides the entry point for impsim.
// Impsim executes IMPS binary images in a functional emulator.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/impsim/emu"
	"github.com/sarchlab/impsim/loader"
)

var trace = flag.Bool("t", false, "Trace executed instructions and register changes")

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 1 {
		usage()
		atexit.Exit(1)
	}
	imagePath := flag.Arg(0)

	program, err := loader.Load(imagePath)
	if err != nil {
		if errors.Is(err, loader.ErrInvalidImage) {
			fmt.Fprintln(os.Stderr, "Invalid IMPS file")
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		atexit.Exit(1)
	}

	stdout := bufio.NewWriter(os.Stdout)
	atexit.Register(func() { _ = stdout.Flush() })

	opts := []emu.EmulatorOption{
		emu.WithStdin(os.Stdin),
		emu.WithStdout(stdout),
	}
	if *trace {
		lines, err := emu.NewFileLineSource(listingPath(imagePath))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			atexit.Exit(1)
		}
		atexit.Register(func() { _ = lines.Close() })
		opts = append(opts, emu.WithTrace(lines))
	}

	emulator := emu.NewEmulator(program, opts...)

	result := emulator.Run()
	if result.Err != nil {
		// Program output precedes the diagnostic.
		_ = stdout.Flush()
		fmt.Fprintf(os.Stderr, "IMPS error: %v\n", result.Err)
		atexit.Exit(1)
	}

	atexit.Exit(result.ExitCode)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: impsim [-t] <executable>\n")
}

// listingPath derives the companion source listing from the image path:
// everything from the last dot on is replaced by ".s". A path without a
// dot gets ".s" appended.
func listingPath(imagePath string) string {
	if dot := strings.LastIndex(imagePath, "."); dot != -1 {
		return imagePath[:dot] + ".s"
	}
	return imagePath + ".s"
}
