// Package memory is the time-sorted view of memory accesses: the same
// register snapshots as the Processor table, reordered by (mp, clk) and
// checked for the three consistency bullets of spec §4.4. Grounded
// structurally on internal/vybium-starks-vm/vm/ram_table.go (column
// slices, AddRow, sort-then-pad, the permutation-argument compressed-row
// pattern), narrowed from its 6-main/5-aux-column RAM table with a
// Bezout-relation contiguity argument down to the plain 3-column table
// and three gates spec §4.4 and §9's third open-question resolution call
// for — no more, no less.
package memory

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/bfzk/bfzk/internal/bfzk/field"
	"github.com/bfzk/bfzk/internal/bfzk/opcode"
	"github.com/bfzk/bfzk/internal/bfzk/trace"
)

// Table is the Processor snapshots sorted by (mp, clk) lexicographically.
type Table struct {
	Rows []trace.Row
}

// Build sorts a copy of the Processor rows by (mp, clk), the permutation
// spec §3 calls the Memory matrix.
func Build(processorRows []trace.Row) *Table {
	rows := make([]trace.Row, len(processorRows))
	copy(rows, processorRows)
	sort.SliceStable(rows, func(i, j int) bool {
		mi, mj := rows[i].MP.Big(), rows[j].MP.Big()
		if c := mi.Cmp(mj); c != 0 {
			return c < 0
		}
		return rows[i].Clk.Big().Cmp(rows[j].Clk.Big()) < 0
	})
	return &Table{Rows: rows}
}

// Violation names a failed memory-consistency gate.
type Violation struct {
	Gate string
	Row  int
}

func (v Violation) String() string {
	return fmt.Sprintf("%s failed at row %d", v.Gate, v.Row)
}

func isWriteOp(ci field.Element) bool {
	v := ci.Uint64()
	return v == uint64(opcode.ADD) || v == uint64(opcode.SUB) || v == uint64(opcode.GETCHAR)
}

// Check enforces spec §4.4's three bullets: no write between same-cell
// accesses means the value holds, a freshly grown cell starts at zero, and
// the pointer only ever grows by 0 or 1 between sorted rows.
func (t *Table) Check() []Violation {
	var out []Violation
	for i := 0; i+1 < len(t.Rows); i++ {
		cur, next := t.Rows[i], t.Rows[i+1]
		mpDiff := next.MP.Big().Cmp(cur.MP.Big())

		switch {
		case mpDiff == 0:
			if !isWriteOp(cur.CI) && !next.MV.Equal(cur.MV) {
				out = append(out, Violation{Gate: "no-write-same-value", Row: i})
			}
		case mpDiff > 0:
			diff := new(big.Int).Sub(next.MP.Big(), cur.MP.Big())
			if diff.Cmp(big.NewInt(1)) != 0 {
				out = append(out, Violation{Gate: "pointer-step-0-or-1", Row: i})
				continue
			}
			if !next.MV.IsZero() {
				out = append(out, Violation{Gate: "fresh-cell-zero", Row: i})
			}
		default:
			out = append(out, Violation{Gate: "pointer-step-0-or-1", Row: i})
		}
	}
	return out
}

// Triples returns the (clk, mp, mv) projection the linkage argument's
// permutation runs over.
func (t *Table) Triples() []trace.Row { return t.Rows }

// CompressedRows mirrors processor.Table.CompressedMemoryRows so both
// sides of the permutation argument condense identically.
func (t *Table) CompressedRows(alpha, beta, gamma, delta field.Element) []field.Element {
	out := make([]field.Element, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = alpha.Add(beta.Mul(row.Clk)).Add(gamma.Mul(row.MP)).Add(delta.Mul(row.MV))
	}
	return out
}
