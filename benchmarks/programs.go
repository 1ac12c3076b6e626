// Package benchmarks provides the catalog of reference IMPS programs.
package benchmarks

// GetReferencePrograms returns the standard set of reference programs.
// Each program exercises one slice of the instruction set or syscall
// surface and carries the exact output it must produce.
func GetReferencePrograms() []Benchmark {
	return []Benchmark{
		helloString(),
		countdownLoop(),
		arithmeticMix(),
		bitScan(),
		negativePrint(),
		memoryLadder(),
		echoChar(),
	}
}

// helloString prints a string from the data segment and exits.
func helloString() Benchmark {
	return Benchmark{
		Name:        "hello_string",
		Description: "print-string syscall over the data segment",
		Program: BuildProgramWithData(
			[]byte("Hello, IMPS!\n\x00"),
			EncodeADDI(2, 0, 4),  // $v0 = 4 (print string)
			EncodeLUI(4, 0x1001), // $a0 = 0x10010000
			EncodeSYSCALL(),
			EncodeADDI(2, 0, 10), // $v0 = 10 (exit)
			EncodeSYSCALL(),
		),
		WantOutput: "Hello, IMPS!\n",
	}
}

// countdownLoop counts 5 down to 1, printing each value, driven by a
// backward BNE.
func countdownLoop() Benchmark {
	return Benchmark{
		Name:        "countdown_loop",
		Description: "backward BNE loop printing the counter",
		Program: BuildProgram(
			EncodeADDI(8, 0, 5), // $t0 = 5
			EncodeADDI(2, 0, 1), // $v0 = 1 (print int)
			EncodeADD(4, 8, 0),  // $a0 = $t0
			EncodeSYSCALL(),
			EncodeADDI(2, 0, 11),  // $v0 = 11 (print char)
			EncodeADDI(4, 0, ' '), // $a0 = ' '
			EncodeSYSCALL(),
			EncodeADDI(8, 8, -1), // $t0--
			EncodeBNE(8, 0, -7),  // loop while $t0 != 0
			EncodeADDI(2, 0, 10), // $v0 = 10 (exit)
			EncodeSYSCALL(),
		),
		WantOutput: "5 4 3 2 1 ",
	}
}

// arithmeticMix multiplies, compares both directions with SLT, and sums
// the comparison bits.
func arithmeticMix() Benchmark {
	return Benchmark{
		Name:        "arithmetic_mix",
		Description: "MUL, SLT, and ADDU combined",
		Program: BuildProgram(
			EncodeADDI(8, 0, 7), // $t0 = 7
			EncodeADDI(9, 0, 6), // $t1 = 6
			EncodeMUL(10, 8, 9), // $t2 = 42
			EncodeADDI(2, 0, 1),
			EncodeADD(4, 10, 0),
			EncodeSYSCALL(), // "42"
			EncodeADDI(2, 0, 11),
			EncodeADDI(4, 0, ' '),
			EncodeSYSCALL(),
			EncodeSLT(11, 8, 9), // $t3 = (7 < 6) = 0
			EncodeSLT(12, 9, 8), // $t4 = (6 < 7) = 1
			EncodeADDU(13, 11, 12),
			EncodeADDI(2, 0, 1),
			EncodeADD(4, 13, 0),
			EncodeSYSCALL(), // "1"
			EncodeADDI(2, 0, 10),
			EncodeSYSCALL(),
		),
		WantOutput: "42 1",
	}
}

// bitScan prints the leading-zero count of 1 and the leading-one count
// of 0xFFFF0000.
func bitScan() Benchmark {
	return Benchmark{
		Name:        "bit_scan",
		Description: "CLZ and CLO over known bit patterns",
		Program: BuildProgram(
			EncodeADDI(8, 0, 1), // $t0 = 1
			EncodeCLZ(9, 8),     // $t1 = 31
			EncodeADDI(2, 0, 1),
			EncodeADD(4, 9, 0),
			EncodeSYSCALL(), // "31"
			EncodeADDI(2, 0, 11),
			EncodeADDI(4, 0, ' '),
			EncodeSYSCALL(),
			EncodeLUI(10, 0xFFFF), // $t2 = 0xFFFF0000
			EncodeCLO(11, 10),     // $t3 = 16
			EncodeADDI(2, 0, 1),
			EncodeADD(4, 11, 0),
			EncodeSYSCALL(), // "16"
			EncodeADDI(2, 0, 10),
			EncodeSYSCALL(),
		),
		WantOutput: "31 16",
	}
}

// negativePrint prints a negative value, pinning the signed rendering of
// the print-integer syscall.
func negativePrint() Benchmark {
	return Benchmark{
		Name:        "negative_print",
		Description: "print-integer renders signed decimal",
		Program: BuildProgram(
			EncodeADDI(8, 0, -42),
			EncodeADDI(2, 0, 1),
			EncodeADD(4, 8, 0),
			EncodeSYSCALL(),
			EncodeADDI(2, 0, 10),
			EncodeSYSCALL(),
		),
		WantOutput: "-42",
	}
}

// memoryLadder stores and reloads at all three widths, pinning the
// sign-extension rules on the way back out.
func memoryLadder() Benchmark {
	return Benchmark{
		Name:        "memory_ladder",
		Description: "byte, half, and word store/load with sign extension",
		Program: BuildProgramWithData(
			make([]byte, 16),
			EncodeLUI(16, 0x1001), // $s0 = segment base
			EncodeADDI(8, 0, -1),  // $t0 = 0xFFFFFFFF
			EncodeSB(8, 16, 0),
			EncodeLB(9, 16, 0), // $t1 = -1
			EncodeADDI(2, 0, 1),
			EncodeADD(4, 9, 0),
			EncodeSYSCALL(), // "-1"
			EncodeADDI(2, 0, 11),
			EncodeADDI(4, 0, ' '),
			EncodeSYSCALL(),
			EncodeORI(10, 0, 0x8000), // $t2 = 0x00008000
			EncodeSH(10, 16, 4),
			EncodeLH(11, 16, 4), // $t3 = -32768
			EncodeADDI(2, 0, 1),
			EncodeADD(4, 11, 0),
			EncodeSYSCALL(), // "-32768"
			EncodeADDI(2, 0, 11),
			EncodeADDI(4, 0, ' '),
			EncodeSYSCALL(),
			EncodeSW(8, 16, 8),
			EncodeLW(12, 16, 8), // $t4 = 0xFFFFFFFF
			EncodeCLO(13, 12),   // $t5 = 32
			EncodeADDI(2, 0, 1),
			EncodeADD(4, 13, 0),
			EncodeSYSCALL(), // "32"
			EncodeADDI(2, 0, 10),
			EncodeSYSCALL(),
		),
		WantOutput: "-1 -32768 32",
	}
}

// echoChar reads one character from stdin and prints it back.
func echoChar() Benchmark {
	return Benchmark{
		Name:        "echo_char",
		Description: "read-character syscall echoed through print-character",
		Program: BuildProgram(
			EncodeADDI(2, 0, 12), // $v0 = 12 (read char)
			EncodeSYSCALL(),      // $v0 = input byte
			EncodeADD(4, 2, 0),   // $a0 = $v0
			EncodeADDI(2, 0, 11), // $v0 = 11 (print char)
			EncodeSYSCALL(),
			EncodeADDI(2, 0, 10),
			EncodeSYSCALL(),
		),
		Stdin:      "A",
		WantOutput: "A",
	}
}
