// Command impsbench runs the reference IMPS programs through the emulator
// and reports per-program results.
//
// Usage:
//
//	go run ./cmd/impsbench [flags]
//
// Flags:
//
//	-csv   Output results in CSV format (default: human-readable)
//	-json  Output results as an indented JSON report
//	-v     Include program output and exit codes in the report
//	-max   Instruction bound per program (default 1000000)
//
// Example:
//
//	# Run everything with human-readable output
//	go run ./cmd/impsbench
//
//	# Output CSV for spreadsheet comparison
//	go run ./cmd/impsbench -csv > results.csv
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/impsim/benchmarks"
)

func main() {
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	jsonOutput := flag.Bool("json", false, "Output results as a JSON report")
	verbose := flag.Bool("v", false, "Include program output in the report")
	maxInstructions := flag.Uint64("max", 1000000,
		"Instruction bound per program, 0 for none")
	flag.Parse()

	config := benchmarks.DefaultConfig()
	config.Output = os.Stdout
	config.Verbose = *verbose
	config.MaxInstructions = *maxInstructions

	harness := benchmarks.NewHarness(config)
	harness.AddBenchmarks(benchmarks.GetReferencePrograms())

	results := harness.RunAll()

	switch {
	case *jsonOutput:
		if err := harness.WriteJSON(results); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case *csvOutput:
		harness.PrintCSV(results)
	default:
		harness.PrintResults(results)
	}

	for _, r := range results {
		if !r.Passed() {
			os.Exit(1)
		}
	}
}
