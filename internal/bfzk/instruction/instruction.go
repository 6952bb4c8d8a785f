// Package instruction is the program-order view bound to the compiled
// code, used by the Processor to validate (ip, ci, ni). Grounded on
// internal/vybium-starks-vm/vm/program_table.go — its code-view rows and
// UpdateInstructionLookupLogDerivative's compressed-row log derivative —
// narrowed to drop the TIP-0006 chunked-hashing/program-attestation
// columns (indexInChunk, isHashInputPadding, chunkRate) irrelevant to a
// hash-free Brainfuck ISA, keeping just the is_code_row witness column
// spec §4.5 calls for.
package instruction

import (
	"fmt"
	"sort"

	"github.com/bfzk/bfzk/internal/bfzk/compile"
	"github.com/bfzk/bfzk/internal/bfzk/field"
	"github.com/bfzk/bfzk/internal/bfzk/trace"
)

// Row is one (ip, ci, ni) triple, tagged with whether it came from the
// compiled program (code view) or from an executed step (trace view).
type Row struct {
	IP        field.Element
	CI        field.Element
	NI        field.Element
	IsCodeRow bool
}

// Table glues the code view and trace view into a single table sorted by
// ip, code-view rows ordered before trace-view rows at each address.
type Table struct {
	Rows []Row
}

// Build constructs the code view (one row per program address, plus the
// ip = len(program) halt address with ci = ni = 0) and the trace view (one
// row per executed Processor step), then sorts the union by (ip,
// code-before-trace).
func Build(f *field.Field, prog *compile.Program, processorRows []trace.Row) *Table {
	var rows []Row
	for i, cell := range prog.Code {
		rows = append(rows, Row{
			IP:        f.ElemUint64(uint64(i)),
			CI:        f.ElemUint64(cell),
			NI:        codeViewNI(f, prog, i),
			IsCodeRow: true,
		})
	}
	rows = append(rows, Row{
		IP:        f.ElemUint64(uint64(len(prog.Code))),
		CI:        f.Zero(),
		NI:        f.Zero(),
		IsCodeRow: true,
	})
	for _, row := range processorRows {
		rows = append(rows, Row{IP: row.IP, CI: row.CI, NI: row.NI, IsCodeRow: false})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		ci, cj := rows[i].IP.Big(), rows[j].IP.Big()
		if c := ci.Cmp(cj); c != 0 {
			return c < 0
		}
		return rows[i].IsCodeRow && !rows[j].IsCodeRow
	})
	return &Table{Rows: rows}
}

func codeViewNI(f *field.Field, prog *compile.Program, ip int) field.Element {
	// program[ip+1], uniformly: for a bracket that's its own operand cell
	// (the jump target), for anything else the next opcode byte.
	if ip+1 < len(prog.Code) {
		return f.ElemUint64(prog.Code[ip+1])
	}
	return f.Zero()
}

// Violation names a failed instruction-table consistency gate: a
// trace-view row whose (ci, ni) disagree with the code-view row at the
// same program address.
type Violation struct {
	IP int
}

func (v Violation) String() string {
	return fmt.Sprintf("instruction table disagreement at ip=%d", v.IP)
}

// CheckCodeDominance enforces spec §4.5: within runs of equal ip, every
// trace-view row's (ci, ni) must equal the code-view row's. Empty-program
// address ip = len(program) is exempt from needing a trace-view row.
func (t *Table) CheckCodeDominance() []Violation {
	var out []Violation
	var codeRow *Row
	var lastIP *field.Element
	for i := range t.Rows {
		row := &t.Rows[i]
		if lastIP == nil || !row.IP.Equal(*lastIP) {
			codeRow = nil
			ip := row.IP
			lastIP = &ip
		}
		if row.IsCodeRow {
			r := *row
			codeRow = &r
			continue
		}
		if codeRow == nil {
			out = append(out, Violation{IP: int(row.IP.Uint64())})
			continue
		}
		if !row.CI.Equal(codeRow.CI) || !row.NI.Equal(codeRow.NI) {
			out = append(out, Violation{IP: int(row.IP.Uint64())})
		}
	}
	return out
}

// CodeView returns only the program-order rows, one per address, for the
// Processor<->Instruction lookup argument's table side.
func (t *Table) CodeView() []Row {
	var out []Row
	for _, row := range t.Rows {
		if row.IsCodeRow {
			out = append(out, row)
		}
	}
	return out
}

// CompressedCodeView returns alpha + beta*ip + gamma*ci + delta*ni for
// every code-view row, matching processor.Table.CompressedInstructionRows'
// condensation.
func (t *Table) CompressedCodeView(alpha, beta, gamma, delta field.Element) []field.Element {
	view := t.CodeView()
	out := make([]field.Element, len(view))
	for i, row := range view {
		out[i] = alpha.Add(beta.Mul(row.IP)).Add(gamma.Mul(row.CI)).Add(delta.Mul(row.NI))
	}
	return out
}

// Multiplicities returns, for each code-view address, how many times the
// Processor visited it — the weight the lookup argument's table side
// needs (spec §4.6 item 2).
func Multiplicities(counts map[int]uint64, codeView []Row) map[uint64]uint64 {
	out := make(map[uint64]uint64, len(codeView))
	for _, row := range codeView {
		ip := row.IP.Uint64()
		out[ip] = counts[int(ip)]
	}
	return out
}
