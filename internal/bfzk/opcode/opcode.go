// Package opcode defines the eight-instruction Brainfuck dialect and the
// deselector construction the Processor table's gates are built from.
package opcode

import "github.com/bfzk/bfzk/internal/bfzk/field"

// Opcode is one of the eight canonical Brainfuck instructions, encoded by
// its ASCII byte so the Processor table's ci column can carry it directly.
type Opcode byte

const (
	SHL     Opcode = '<'
	SHR     Opcode = '>'
	ADD     Opcode = '+'
	SUB     Opcode = '-'
	GETCHAR Opcode = ','
	PUTCHAR Opcode = '.'
	LB      Opcode = '['
	RB      Opcode = ']'
)

// All lists the eight opcodes in a fixed order used wherever a positional
// index into the deselector set is needed.
var All = [8]Opcode{SHL, SHR, ADD, SUB, GETCHAR, PUTCHAR, LB, RB}

// IsValid reports whether b is one of the eight canonical opcodes.
func IsValid(b byte) bool {
	switch Opcode(b) {
	case SHL, SHR, ADD, SUB, GETCHAR, PUTCHAR, LB, RB:
		return true
	default:
		return false
	}
}

// String gives a short mnemonic, used in diagnostics.
func (op Opcode) String() string {
	switch op {
	case SHL:
		return "SHL"
	case SHR:
		return "SHR"
	case ADD:
		return "ADD"
	case SUB:
		return "SUB"
	case GETCHAR:
		return "GETCHAR"
	case PUTCHAR:
		return "PUTCHAR"
	case LB:
		return "LB"
	case RB:
		return "RB"
	default:
		return "?"
	}
}

// Deselector returns D_op(ci) = prod_{v != op} (ci - v), evaluated over the
// field carrying ci. D_op(ci) is nonzero exactly when ci = op and zero for
// every other opcode in All, which is what lets a single gate select the
// one active branch per row without a conditional.
func Deselector(op Opcode, ci field.Element) field.Element {
	f := ci.Field()
	result := f.One()
	for _, v := range All {
		if v == op {
			continue
		}
		factor := ci.Sub(f.ElemUint64(uint64(v)))
		result = result.Mul(factor)
	}
	return result
}

// Deselectors evaluates Deselector for every opcode in All, in that order.
func Deselectors(ci field.Element) [8]field.Element {
	var out [8]field.Element
	for i, op := range All {
		out[i] = Deselector(op, ci)
	}
	return out
}

// Index positions into All (and into the array Deselectors returns), for
// readable gate code in the table package.
const (
	IdxSHL = iota
	IdxSHR
	IdxADD
	IdxSUB
	IdxGETCHAR
	IdxPUTCHAR
	IdxLB
	IdxRB
)
