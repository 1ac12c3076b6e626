// Package benchmarks provides reference IMPS programs and a harness for
// running them through the emulator.
package benchmarks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sarchlab/impsim/emu"
	"github.com/sarchlab/impsim/loader"
)

// Result holds the outcome of a single benchmark run.
type Result struct {
	// Name identifies the benchmark
	Name string `json:"name"`

	// Description explains what the benchmark exercises
	Description string `json:"description"`

	// Output is everything the program printed
	Output string `json:"output"`

	// OutputOK reports whether Output matched the benchmark's expectation
	OutputOK bool `json:"output_ok"`

	// Exited reports a clean termination through the exit syscall
	Exited bool `json:"exited"`

	// ExitCode is the program's exit status
	ExitCode int `json:"exit_code"`

	// Instructions is the number of instructions executed
	Instructions uint64 `json:"instructions"`

	// WallTime is the host time the run took
	WallTime time.Duration `json:"wall_time_ns"`

	// Error carries the fault that ended the run, if any
	Error string `json:"error,omitempty"`
}

// Passed reports whether the run terminated cleanly with the expected
// output.
func (r Result) Passed() bool {
	return r.Exited && r.OutputOK && r.Error == ""
}

// Benchmark defines a single benchmark program.
type Benchmark struct {
	// Name identifies the benchmark
	Name string

	// Description explains what the benchmark exercises
	Description string

	// Program is the IMPS program to execute
	Program *loader.Program

	// Stdin is fed to the read-character syscall
	Stdin string

	// WantOutput is the expected program output
	WantOutput string
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// Output is where reports are written (default: os.Stdout)
	Output io.Writer

	// MaxInstructions bounds each run; 0 means no bound
	MaxInstructions uint64

	// Verbose enables per-run detail in PrintResults
	Verbose bool
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		Output:          os.Stdout,
		MaxInstructions: 1000000,
	}
}

// Harness runs benchmarks and reports results.
type Harness struct {
	config     HarnessConfig
	benchmarks []Benchmark
}

// NewHarness creates a new benchmark harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	return &Harness{
		config:     config,
		benchmarks: []Benchmark{},
	}
}

// AddBenchmark adds a benchmark to the harness.
func (h *Harness) AddBenchmark(b Benchmark) {
	h.benchmarks = append(h.benchmarks, b)
}

// AddBenchmarks adds multiple benchmarks to the harness.
func (h *Harness) AddBenchmarks(benchmarks []Benchmark) {
	h.benchmarks = append(h.benchmarks, benchmarks...)
}

// RunAll executes all benchmarks and returns results.
func (h *Harness) RunAll() []Result {
	results := make([]Result, 0, len(h.benchmarks))

	for _, bench := range h.benchmarks {
		results = append(results, h.runBenchmark(bench))
	}

	return results
}

// runBenchmark executes a single benchmark on a fresh emulator.
func (h *Harness) runBenchmark(bench Benchmark) Result {
	var stdout bytes.Buffer

	emulator := emu.NewEmulator(
		bench.Program,
		emu.WithStdin(strings.NewReader(bench.Stdin)),
		emu.WithStdout(&stdout),
		emu.WithMaxInstructions(h.config.MaxInstructions),
	)

	start := time.Now()
	stepResult := emulator.Run()
	wallTime := time.Since(start)

	result := Result{
		Name:         bench.Name,
		Description:  bench.Description,
		Output:       stdout.String(),
		OutputOK:     stdout.String() == bench.WantOutput,
		Exited:       stepResult.Exited,
		ExitCode:     stepResult.ExitCode,
		Instructions: emulator.InstructionCount(),
		WallTime:     wallTime,
	}
	if stepResult.Err != nil {
		result.Error = stepResult.Err.Error()
	}

	return result
}

// PrintResults outputs benchmark results in a human-readable format.
func (h *Harness) PrintResults(results []Result) {
	_, _ = fmt.Fprintln(h.config.Output, "=== IMPS Benchmark Results ===")
	_, _ = fmt.Fprintln(h.config.Output, "")

	for _, r := range results {
		status := "PASS"
		if !r.Passed() {
			status = "FAIL"
		}

		_, _ = fmt.Fprintf(h.config.Output, "Benchmark: %s [%s]\n", r.Name, status)
		_, _ = fmt.Fprintf(h.config.Output, "  Description:  %s\n", r.Description)
		_, _ = fmt.Fprintf(h.config.Output, "  Instructions: %d\n", r.Instructions)
		_, _ = fmt.Fprintf(h.config.Output, "  Wall Time:    %v\n", r.WallTime)
		if r.Error != "" {
			_, _ = fmt.Fprintf(h.config.Output, "  Error:        %s\n", r.Error)
		}
		if h.config.Verbose {
			_, _ = fmt.Fprintf(h.config.Output, "  Output:       %q\n", r.Output)
			_, _ = fmt.Fprintf(h.config.Output, "  Exit Code:    %d\n", r.ExitCode)
		}
		_, _ = fmt.Fprintln(h.config.Output, "")
	}
}

// PrintCSV outputs benchmark results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []Result) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,instructions,wall_time_ns,exited,output_ok,exit_code")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%d,%t,%t,%d\n",
			r.Name,
			r.Instructions,
			r.WallTime.Nanoseconds(),
			r.Exited,
			r.OutputOK,
			r.ExitCode,
		)
	}
}

// Report bundles results with aggregate figures for machine consumption.
type Report struct {
	Results []Result      `json:"results"`
	Summary ReportSummary `json:"summary"`
}

// ReportSummary aggregates a benchmark run.
type ReportSummary struct {
	TotalBenchmarks   int           `json:"total_benchmarks"`
	Passed            int           `json:"passed"`
	TotalInstructions uint64        `json:"total_instructions"`
	TotalWallTime     time.Duration `json:"total_wall_time_ns"`
}

// WriteJSON writes results and their summary as indented JSON.
func (h *Harness) WriteJSON(results []Result) error {
	report := Report{
		Results: results,
		Summary: ReportSummary{TotalBenchmarks: len(results)},
	}
	for _, r := range results {
		if r.Passed() {
			report.Summary.Passed++
		}
		report.Summary.TotalInstructions += r.Instructions
		report.Summary.TotalWallTime += r.WallTime
	}

	encoder := json.NewEncoder(h.config.Output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// Helper functions for building IMPS programs

// BuildProgram assembles instruction words into a program image with no
// data segment.
func BuildProgram(instrs ...uint32) *loader.Program {
	return BuildProgramWithData(nil, instrs...)
}

// BuildProgramWithData assembles instruction words and an initial data
// segment into a program image. Debug offsets are zeroed; benchmark
// programs carry no source listing.
func BuildProgramWithData(data []byte, instrs ...uint32) *loader.Program {
	return &loader.Program{
		Instructions: instrs,
		DebugOffsets: make([]uint32, len(instrs)),
		Data:         data,
	}
}

// Instruction encoding helpers

// EncodeADDI encodes ADDI: rt = rs + imm, checked.
func EncodeADDI(rt, rs uint8, imm int16) uint32 {
	return encodeImm(0x08, rs, rt, uint16(imm))
}

// EncodeADDIU encodes ADDIU: rt = rs + imm, wrapping.
func EncodeADDIU(rt, rs uint8, imm int16) uint32 {
	return encodeImm(0x09, rs, rt, uint16(imm))
}

// EncodeORI encodes ORI: rt = rs | imm.
func EncodeORI(rt, rs uint8, imm uint16) uint32 {
	return encodeImm(0x0D, rs, rt, imm)
}

// EncodeLUI encodes LUI: rt = imm << 16.
func EncodeLUI(rt uint8, imm uint16) uint32 {
	return encodeImm(0x0F, 0, rt, imm)
}

// EncodeADD encodes ADD: rd = rs + rt, checked.
func EncodeADD(rd, rs, rt uint8) uint32 {
	return encodeReg(0x00, rs, rt, rd, 0x20)
}

// EncodeADDU encodes ADDU: rd = rs + rt, wrapping.
func EncodeADDU(rd, rs, rt uint8) uint32 {
	return encodeReg(0x00, rs, rt, rd, 0x21)
}

// EncodeMUL encodes MUL: rd = rs * rt, low 32 bits.
func EncodeMUL(rd, rs, rt uint8) uint32 {
	return encodeReg(0x1C, rs, rt, rd, 0x02)
}

// EncodeSLT encodes SLT: rd = 1 if rs < rt (signed), else 0.
func EncodeSLT(rd, rs, rt uint8) uint32 {
	return encodeReg(0x00, rs, rt, rd, 0x2A)
}

// EncodeCLO encodes CLO: rd = count of leading ones in rs.
func EncodeCLO(rd, rs uint8) uint32 {
	return encodeReg(0x00, rs, 0, rd, 0x11)
}

// EncodeCLZ encodes CLZ: rd = count of leading zeros in rs.
func EncodeCLZ(rd, rs uint8) uint32 {
	return encodeReg(0x00, rs, 0, rd, 0x10)
}

// EncodeBEQ encodes BEQ: branch by offset instructions when rs == rt.
func EncodeBEQ(rs, rt uint8, offset int16) uint32 {
	return encodeImm(0x04, rs, rt, uint16(offset))
}

// EncodeBNE encodes BNE: branch by offset instructions when rs != rt.
func EncodeBNE(rs, rt uint8, offset int16) uint32 {
	return encodeImm(0x05, rs, rt, uint16(offset))
}

// EncodeLB encodes LB: rt = sign-extended byte at base+offset.
func EncodeLB(rt, base uint8, offset int16) uint32 {
	return encodeImm(0x20, base, rt, uint16(offset))
}

// EncodeLH encodes LH: rt = sign-extended halfword at base+offset.
func EncodeLH(rt, base uint8, offset int16) uint32 {
	return encodeImm(0x21, base, rt, uint16(offset))
}

// EncodeLW encodes LW: rt = word at base+offset.
func EncodeLW(rt, base uint8, offset int16) uint32 {
	return encodeImm(0x23, base, rt, uint16(offset))
}

// EncodeSB encodes SB: byte at base+offset = rt[7:0].
func EncodeSB(rt, base uint8, offset int16) uint32 {
	return encodeImm(0x28, base, rt, uint16(offset))
}

// EncodeSH encodes SH: halfword at base+offset = rt[15:0].
func EncodeSH(rt, base uint8, offset int16) uint32 {
	return encodeImm(0x29, base, rt, uint16(offset))
}

// EncodeSW encodes SW: word at base+offset = rt.
func EncodeSW(rt, base uint8, offset int16) uint32 {
	return encodeImm(0x2B, base, rt, uint16(offset))
}

// EncodeSYSCALL encodes SYSCALL.
func EncodeSYSCALL() uint32 {
	return encodeReg(0x00, 0, 0, 0, 0x0C)
}

func encodeImm(opcode uint32, rs, rt uint8, imm uint16) uint32 {
	var inst uint32
	inst |= opcode << 26
	inst |= uint32(rs&0x1F) << 21
	inst |= uint32(rt&0x1F) << 16
	inst |= uint32(imm)
	return inst
}

func encodeReg(opcode uint32, rs, rt, rd uint8, funct uint32) uint32 {
	var inst uint32
	inst |= opcode << 26
	inst |= uint32(rs&0x1F) << 21
	inst |= uint32(rt&0x1F) << 16
	inst |= uint32(rd&0x1F) << 11
	inst |= funct
	return inst
}
