// Package trace runs a compiled program step by step and records the
// register snapshots the Processor table is built from, mirroring the
// "record before executing, then step" split of
// internal/vybium-starks-vm/vm/trace_recorder.go and vm_state.go's
// ExecuteAndTrace in the teacher repo.
package trace

import (
	"fmt"

	"github.com/bfzk/bfzk/internal/bfzk/compile"
	"github.com/bfzk/bfzk/internal/bfzk/field"
	"github.com/bfzk/bfzk/internal/bfzk/opcode"
)

// Row is one register snapshot: the seven-element tuple spec §3 calls the
// "Register snapshot".
type Row struct {
	Clk field.Element
	IP  field.Element
	CI  field.Element
	NI  field.Element
	MP  field.Element
	MV  field.Element
	MVI field.Element
}

// Result is the execution trace: the Processor matrix in execution order,
// the bytes emitted by PUTCHAR, and how many times each program address was
// executed (the final halt row is not counted).
type Result struct {
	Rows                []Row
	Output              []byte
	InstructionCounts   map[int]uint64
	InputBytesConsumed  int
}

// maxSteps bounds interpretation so a non-halting program (explicitly out
// of scope, spec §1) fails fast instead of looping forever.
const maxSteps = 10_000_000

// Run executes prog over a zero-initialized, growable tape and returns the
// recorded trace. CellRange is R from spec §3/§4.2; ADD/SUB wrap modulo it.
func Run(f *field.Field, prog *compile.Program, input []byte, cellRange uint64) (*Result, error) {
	if cellRange < 2 {
		return nil, fmt.Errorf("trace: cell range must be at least 2, got %d", cellRange)
	}

	tape := make(map[int]uint64)
	mp := 0
	clk := 0
	ip := 0
	inputIdx := 0

	var rows []Row
	var output []byte
	counts := make(map[int]uint64)

	for steps := 0; ; steps++ {
		if ip >= len(prog.Code) {
			break
		}
		if steps >= maxSteps {
			return nil, fmt.Errorf("trace: exceeded %d steps without halting", maxSteps)
		}

		op := opcode.Opcode(prog.Code[ip])
		mv := tape[mp]
		mvField := f.ElemUint64(mv)
		mvi := f.Zero()
		if mv != 0 {
			inv, err := mvField.Inv()
			if err != nil {
				return nil, fmt.Errorf("trace: failed to invert nonzero cell: %w", err)
			}
			mvi = inv
		}

		rows = append(rows, Row{
			Clk: f.ElemUint64(uint64(clk)),
			IP:  f.ElemUint64(uint64(ip)),
			CI:  f.ElemUint64(uint64(op)),
			NI:  nextInstructionField(f, prog, ip),
			MP:  f.ElemInt64(int64(mp)),
			MV:  mvField,
			MVI: mvi,
		})
		counts[ip]++

		switch op {
		case opcode.SHL:
			mp--
			if mp < 0 {
				return nil, fmt.Errorf("trace: memory pointer moved left of cell 0 at ip=%d", ip)
			}
			ip++
		case opcode.SHR:
			mp++
			ip++
		case opcode.ADD:
			tape[mp] = (mv + 1) % cellRange
			ip++
		case opcode.SUB:
			tape[mp] = (mv + cellRange - 1) % cellRange
			ip++
		case opcode.GETCHAR:
			var b byte
			if inputIdx < len(input) {
				b = input[inputIdx]
				inputIdx++
			}
			tape[mp] = uint64(b) % cellRange
			ip++
		case opcode.PUTCHAR:
			output = append(output, byte(mv))
			ip++
		case opcode.LB:
			if mv == 0 {
				ip = int(prog.Code[ip+1])
			} else {
				ip += 2
			}
		case opcode.RB:
			if mv != 0 {
				ip = int(prog.Code[ip+1])
			} else {
				ip += 2
			}
		default:
			return nil, fmt.Errorf("trace: unknown opcode %v at ip=%d", op, ip)
		}
		clk++
	}

	// Halt row: ci=0, ni=0, the final (mp, mv, mvi) held constant.
	mv := tape[mp]
	mvField := f.ElemUint64(mv)
	mvi := f.Zero()
	if mv != 0 {
		inv, err := mvField.Inv()
		if err != nil {
			return nil, fmt.Errorf("trace: failed to invert nonzero cell: %w", err)
		}
		mvi = inv
	}
	rows = append(rows, Row{
		Clk: f.ElemUint64(uint64(clk)),
		IP:  f.ElemUint64(uint64(ip)),
		CI:  f.Zero(),
		NI:  f.Zero(),
		MP:  f.ElemInt64(int64(mp)),
		MV:  mvField,
		MVI: mvi,
	})

	return &Result{
		Rows:               rows,
		Output:             output,
		InstructionCounts:  counts,
		InputBytesConsumed: inputIdx,
	}, nil
}

// nextInstructionField computes the row's ni value: program[ip+1],
// uniformly — spec §3's literal definition of the successor field. For a
// bracket, ip+1 is its own operand cell, so this is exactly the jump
// target; for anything else it's the next instruction's opcode byte (zero
// past the end of the program).
func nextInstructionField(f *field.Field, prog *compile.Program, ip int) field.Element {
	if ip+1 < len(prog.Code) {
		return f.ElemUint64(prog.Code[ip+1])
	}
	return f.Zero()
}
