package bfzk

import (
	"github.com/bfzk/bfzk/internal/bfzk/compile"
	"github.com/bfzk/bfzk/internal/bfzk/field"
	"github.com/bfzk/bfzk/internal/bfzk/prover"
	"github.com/bfzk/bfzk/internal/bfzk/trace"
)

// FieldElement is the public alias for a value in this module's field.
type FieldElement = field.Element

// Field is the public alias for the prime field the arithmetization runs over.
type Field = field.Field

// Program is a compiled Brainfuck program: opcode bytes with resolved
// bracket jump targets (spec §3's data model).
type Program struct {
	internal *compile.Program
}

// CompileProgram validates bracket matching and resolves jump targets,
// grounded on original_source/src/main.rs's code::compile step (spec
// §2.3's supplemented bracket-matching compiler).
func CompileProgram(source []byte) (*Program, error) {
	compiled, err := compile.Compile(source)
	if err != nil {
		return nil, wrap(ErrMalformedProgram, "failed to compile program", err)
	}
	return &Program{internal: compiled}, nil
}

// Len returns the number of program cells: one per ordinary instruction,
// two per bracket (its opcode and its jump-target operand).
func (p *Program) Len() int { return p.internal.Len() }

// InputBytes turns an ASCII string into the byte sequence a program
// consumes one GETCHAR at a time (original_source's code::easygen).
func InputBytes(s string) []byte { return compile.InputBytes(s) }

// ExecutionTrace is the Processor matrix and everything derived from a
// single run: the input it ran on, its row count, and what PUTCHAR
// emitted, plus the internal row data Prove needs.
type ExecutionTrace struct {
	Program    *Program
	Input      []byte
	CycleCount int
	Output     []byte

	internal *trace.Result
}

// Verdict is the mock prover's satisfaction report.
type Verdict = prover.Verdict

// Failure names one broken gate, lookup, or linkage argument.
type Failure = prover.Failure
