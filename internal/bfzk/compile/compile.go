// Package compile turns raw Brainfuck source into a Program, mirroring the
// compile step original_source/src/main.rs runs before interpretation
// (code::compile) — kept here as a thin, separate collaborator the trace
// builder never calls back into.
package compile

import (
	"fmt"

	"github.com/bfzk/bfzk/internal/bfzk/opcode"
)

// Program is a compiled instruction stream laid out the way zkbrainfuck's
// code::compile pass lays it out: an ordinary instruction occupies one
// cell, but a bracket (LB/RB) is followed by an operand cell holding its
// resolved jump-target address. ni is therefore uniformly "program[ip+1]"
// — for an ordinary instruction that's the next instruction's opcode
// byte, for a bracket it's the jump target its operand cell carries — and
// a taken bracket always advances ip by 2 to land past its own operand
// cell and into (or out of) the loop body.
type Program struct {
	Code []uint64
}

// Len returns the number of program cells — instructions and bracket
// operand cells together, since the Instruction table has one row per
// cell.
func (p *Program) Len() int { return len(p.Code) }

// Compile validates and compiles raw Brainfuck source into the sparse cell
// layout above. Non-opcode bytes are treated as comments and skipped,
// matching the dialect's usual tokenizer behavior. Unmatched brackets are
// reported as an error since a malformed program is a compile-time
// condition, not something the trace builder or arithmetization should
// ever see.
func Compile(source []byte) (*Program, error) {
	var ops []opcode.Opcode
	for _, b := range source {
		if opcode.IsValid(b) {
			ops = append(ops, opcode.Opcode(b))
		}
	}

	// Assign each instruction its cell address: brackets reserve an extra
	// cell for their operand, everything else takes a single cell.
	addr := make([]int, len(ops))
	cursor := 0
	for i, op := range ops {
		addr[i] = cursor
		if op == opcode.LB || op == opcode.RB {
			cursor += 2
		} else {
			cursor++
		}
	}

	code := make([]uint64, cursor)
	var openStack []int
	for i, op := range ops {
		a := addr[i]
		code[a] = uint64(op)
		switch op {
		case opcode.LB:
			openStack = append(openStack, i)
		case opcode.RB:
			if len(openStack) == 0 {
				return nil, fmt.Errorf("compile: unmatched ']' at instruction %d", i)
			}
			openIdx := openStack[len(openStack)-1]
			openStack = openStack[:len(openStack)-1]
			// '[' skips past ']'s operand cell when its branch isn't
			// taken; ']' jumps back past '['s operand cell, into the
			// loop body, when its branch is taken.
			code[addr[openIdx]+1] = uint64(a + 2)
			code[a+1] = uint64(addr[openIdx] + 2)
		}
	}
	if len(openStack) != 0 {
		return nil, fmt.Errorf("compile: unmatched '[' at instruction %d", openStack[len(openStack)-1])
	}

	return &Program{Code: code}, nil
}

// InputBytes turns an ASCII string into the byte sequence a program would
// consume one GETCHAR at a time, mirroring original_source's
// code::easygen helper.
func InputBytes(s string) []byte {
	return []byte(s)
}
