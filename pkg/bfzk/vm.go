// Package bfzk is the public API: compile a Brainfuck program, execute it
// to build the Processor/Memory/Instruction trace, and run the mock
// prover to check that trace satisfies every gate and linkage argument of
// the arithmetization. Grounded on pkg/vybium-starks-vm/vm.go's
// NewVM/Execute/GetState shape.
package bfzk

import (
	"github.com/bfzk/bfzk/internal/bfzk/field"
	"github.com/bfzk/bfzk/internal/bfzk/prover"
	"github.com/bfzk/bfzk/internal/bfzk/trace"
	"github.com/bfzk/bfzk/internal/bfzk/transcript"
)

// VM is the public interface to the arithmetization: execute a program to
// build its trace, then prove that trace satisfies the constraint system.
type VM interface {
	// Execute runs program over input and records the Processor matrix
	// the other tables are built from.
	Execute(program *Program, input []byte) (*ExecutionTrace, error)

	// Prove runs the mock prover over an executed trace. expectedOutput,
	// if non-nil, is checked against what PUTCHAR emitted via the
	// evaluation argument of spec §4.7; pass nil to skip that check.
	Prove(et *ExecutionTrace, expectedOutput []byte) (*Verdict, error)
}

type vmImpl struct {
	config *Config
	field  *field.Field
}

// NewVM creates a VM from config, which must pass Validate.
func NewVM(config *Config) (VM, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, wrap(ErrInvalidConfig, "invalid config", err)
	}
	f, err := field.New(config.FieldModulus)
	if err != nil {
		return nil, wrap(ErrFieldCreation, "failed to create field", err)
	}
	return &vmImpl{config: config, field: f}, nil
}

func (v *vmImpl) Execute(program *Program, input []byte) (*ExecutionTrace, error) {
	if program == nil {
		return nil, wrap(ErrInvalidInput, "program must not be nil", nil)
	}
	result, err := trace.Run(v.field, program.internal, input, v.config.CellRange)
	if err != nil {
		return nil, wrap(ErrAssignmentFailure, "trace execution failed", err)
	}
	domainSize := v.config.DomainSize()
	if uint64(len(result.Rows)) > domainSize {
		return nil, wrap(ErrTraceOverflow, "trace exceeds domain size", nil)
	}
	if uint64(program.internal.Len()) > domainSize {
		return nil, wrap(ErrTraceOverflow, "program exceeds domain size", nil)
	}

	return &ExecutionTrace{
		Program:    program,
		Input:      input,
		CycleCount: len(result.Rows),
		Output:     result.Output,
		internal:   result,
	}, nil
}

func (v *vmImpl) Prove(et *ExecutionTrace, expectedOutput []byte) (*Verdict, error) {
	if et == nil || et.internal == nil {
		return nil, wrap(ErrInvalidInput, "execution trace must come from Execute", nil)
	}
	ch := transcript.New(v.field, v.config.HashFunction)
	verdict := prover.Check(v.field, et.Program.internal, et.internal, et.Input, expectedOutput, v.config.CellRange, ch)
	return verdict, nil
}
