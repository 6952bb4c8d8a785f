// Command bfzk-prover reads a Brainfuck program from disk, executes it,
// and reports whether the resulting trace satisfies the arithmetization.
// Grounded on cmd/vybium-vm-prover/main.go's stdlib-only CLI style (read
// file, run, report, os.Exit), simplified to drop the JSON-lines
// claim/non-determinism protocol that belongs to the teacher's much
// larger ISA: spec §6's surface is just
// `bfzk-prover <program-path> [domain-k]`.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bfzk/bfzk/pkg/bfzk"
)

func main() {
	if len(os.Args) < 2 {
		fatal("usage: bfzk-prover <program-path> [domain-k]")
	}

	source, err := os.ReadFile(os.Args[1])
	if err != nil {
		fatal(fmt.Sprintf("failed to read program: %v", err))
	}

	config := bfzk.DefaultConfig()
	if len(os.Args) >= 3 {
		k, err := strconv.Atoi(os.Args[2])
		if err != nil {
			fatal(fmt.Sprintf("invalid domain-k %q: %v", os.Args[2], err))
		}
		config.DomainExponent = k
	}

	logStderr("compiling program...")
	program, err := bfzk.CompileProgram(source)
	if err != nil {
		fatal(fmt.Sprintf("compile failed: %v", err))
	}

	logStderr("creating VM...")
	vm, err := bfzk.NewVM(config)
	if err != nil {
		fatal(fmt.Sprintf("failed to create VM: %v", err))
	}

	logStderr("executing program...")
	et, err := vm.Execute(program, nil)
	if err != nil {
		fatal(fmt.Sprintf("execution failed: %v", err))
	}
	logStderr(fmt.Sprintf("execution completed in %d cycles", et.CycleCount))

	logStderr("running mock prover...")
	verdict, err := vm.Prove(et, nil)
	if err != nil {
		fatal(fmt.Sprintf("prove failed: %v", err))
	}

	if !verdict.Satisfied {
		logStderr("constraints violated:")
		for _, failure := range verdict.Failures {
			logStderr("  " + failure.String())
		}
		os.Exit(1)
	}

	logStderr("all constraints satisfied")
}

func logStderr(msg string) {
	fmt.Fprintln(os.Stderr, "bfzk-prover:", msg)
}

func fatal(msg string) {
	logStderr("ERROR: " + msg)
	os.Exit(1)
}
