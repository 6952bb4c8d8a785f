// Package rangetable is the fixed lookup column {0,...,R-1} that confines
// memory-cell values, scaled down from the cascade/multiplicity pattern in
// internal/vybium-starks-vm/vm/lookup_8bit_table.go (TIP-0005's 8-bit S-box
// lookup) to a plain identity table with no S-box computation.
package rangetable

import (
	"strconv"

	"github.com/bfzk/bfzk/internal/bfzk/field"
)

// Table is the range-check lookup column {0, 1, ..., R-1}.
type Table struct {
	f *field.Field
	R uint64
}

// New builds the range table over [0, R).
func New(f *field.Field, r uint64) *Table {
	return &Table{f: f, R: r}
}

// Contains reports whether v lies in [0, R).
func (t *Table) Contains(v field.Element) bool {
	return v.Uint64() < t.R
}

// Multiplicities counts how many times each table entry 0..R-1 is looked up
// by cells, the witness a real lookup argument commits to alongside the
// table column itself (lt.lookupMultiplicity in the teacher's table).
func (t *Table) Multiplicities(cells []field.Element) map[uint64]uint64 {
	mult := make(map[uint64]uint64, len(cells))
	for _, c := range cells {
		mult[c.Uint64()]++
	}
	return mult
}

// TraceLogDerivative computes sum_i 1/(challenge - cells[i]), the trace
// side of the log-derivative lookup argument (mirrors
// LookupArgumentComputer.ComputeLogDerivative in cross_table_arguments.go).
func (t *Table) TraceLogDerivative(cells []field.Element, challenge field.Element) (field.Element, error) {
	acc := t.f.Zero()
	for _, c := range cells {
		denom := challenge.Sub(c)
		inv, err := denom.Inv()
		if err != nil {
			return field.Element{}, err
		}
		acc = acc.Add(inv)
	}
	return acc, nil
}

// TableLogDerivative computes sum_{v=0}^{R-1} mult[v]/(challenge - v), the
// table side of the same argument, weighted by how many times each value
// was looked up.
func (t *Table) TableLogDerivative(mult map[uint64]uint64, challenge field.Element) (field.Element, error) {
	acc := t.f.Zero()
	for v := uint64(0); v < t.R; v++ {
		m := mult[v]
		if m == 0 {
			continue
		}
		denom := challenge.Sub(t.f.ElemUint64(v))
		inv, err := denom.Inv()
		if err != nil {
			return field.Element{}, err
		}
		acc = acc.Add(inv.Mul(t.f.ElemUint64(m)))
	}
	return acc, nil
}

// Check verifies every cell lies in range and that the trace- and
// table-side log derivatives agree at challenge — the lookup argument that
// binds every Processor mv to this table (spec invariant 4, testable
// property 4).
func (t *Table) Check(cells []field.Element, challenge field.Element) error {
	for i, c := range cells {
		if !t.Contains(c) {
			return &OutOfRangeError{Row: i, Value: c.Big().String(), R: t.R}
		}
	}
	trace, err := t.TraceLogDerivative(cells, challenge)
	if err != nil {
		return err
	}
	table, err := t.TableLogDerivative(t.Multiplicities(cells), challenge)
	if err != nil {
		return err
	}
	if !trace.Equal(table) {
		return &LogDerivativeMismatchError{}
	}
	return nil
}

// OutOfRangeError reports a cell value outside [0, R).
type OutOfRangeError struct {
	Row   int
	Value string
	R     uint64
}

func (e *OutOfRangeError) Error() string {
	return "rangetable: row " + strconv.Itoa(e.Row) + " value " + e.Value + " outside [0, R)"
}

// LogDerivativeMismatchError reports a failed lookup argument: some cell
// value does not occur in the range table with the claimed multiplicity.
type LogDerivativeMismatchError struct{}

func (e *LogDerivativeMismatchError) Error() string {
	return "rangetable: trace/table log-derivative mismatch"
}
