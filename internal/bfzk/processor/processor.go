// Package processor holds the Processor table: the seven advice columns
// (clk, ip, ci, ni, mp, mv, mvi) and the boundary/consistency/transition
// gates of spec §4.3. Named after and structured the way
// internal/vybium-starks-vm/protocols/constraints.go groups its
// ConstraintPolynomial/TransitionConstraintPolynomial checks under one
// CreateProcessorConstraints-style table type, but each gate here is a
// plain Check* method returning []Violation rather than a closure value —
// there's no degree tagging. The gate polynomials themselves are
// transcribed from original_source/src/processor_table.rs's halo2 gates
// (P0, C0, C1, P_1, P_2) with the wrap-form P3 spec §9 resolves the source's
// ambiguity in favor of.
package processor

import (
	"fmt"

	"github.com/bfzk/bfzk/internal/bfzk/field"
	"github.com/bfzk/bfzk/internal/bfzk/opcode"
	"github.com/bfzk/bfzk/internal/bfzk/trace"
)

// Table wraps the rows emitted by the trace builder with the cell range
// the consistency/transition gates are parameterized by.
type Table struct {
	Rows      []trace.Row
	CellRange uint64
}

// New builds a Processor table view over rows produced by trace.Run.
func New(rows []trace.Row, cellRange uint64) *Table {
	return &Table{Rows: rows, CellRange: cellRange}
}

// Violation names a single gate that failed to evaluate to zero.
type Violation struct {
	Gate  string
	Row   int
	Value field.Element
}

func (v Violation) String() string {
	return fmt.Sprintf("%s failed at row %d (value %s)", v.Gate, v.Row, v.Value.String())
}

// CheckBoundary enforces spec §4.3's s_b gates: clk=ip=mp=mv=0 at row 0.
func (t *Table) CheckBoundary() []Violation {
	if len(t.Rows) == 0 {
		return nil
	}
	r0 := t.Rows[0]
	var out []Violation
	for name, v := range map[string]field.Element{
		"boundary.clk": r0.Clk,
		"boundary.ip":  r0.IP,
		"boundary.mp":  r0.MP,
		"boundary.mv":  r0.MV,
	} {
		if !v.IsZero() {
			out = append(out, Violation{Gate: name, Row: 0, Value: v})
		}
	}
	return out
}

// CheckConsistency enforces C0/C1 on every row: mv*(mv*mvi-1)=0 and
// mvi*(mv*mvi-1)=0, the zero-test witness identity of spec §9.
func (t *Table) CheckConsistency() []Violation {
	var out []Violation
	for i, row := range t.Rows {
		witness := row.MV.Mul(row.MVI).Sub(row.MV.Field().One())
		c0 := row.MV.Mul(witness)
		c1 := row.MVI.Mul(witness)
		if !c0.IsZero() {
			out = append(out, Violation{Gate: "C0", Row: i, Value: c0})
		}
		if !c1.IsZero() {
			out = append(out, Violation{Gate: "C1", Row: i, Value: c1})
		}
	}
	return out
}

// CheckTransition enforces P0-P3 between every pair of adjacent rows.
func (t *Table) CheckTransition() []Violation {
	var out []Violation
	for i := 0; i+1 < len(t.Rows); i++ {
		cur, next := t.Rows[i], t.Rows[i+1]
		f := cur.Clk.Field()
		one := f.One()

		// P0: clk' = clk + 1.
		if v := next.Clk.Sub(cur.Clk).Sub(one); !v.IsZero() {
			out = append(out, Violation{Gate: "P0", Row: i, Value: v})
		}

		d := opcode.Deselectors(cur.CI)
		isZeroWitness := cur.MV.Mul(cur.MVI).Sub(one) // = 0 iff mv != 0, = -1 iff mv == 0

		// P1: instruction-pointer update.
		nonBracketSum := d[opcode.IdxADD].Add(d[opcode.IdxSUB]).Add(d[opcode.IdxSHL]).
			Add(d[opcode.IdxSHR]).Add(d[opcode.IdxGETCHAR]).Add(d[opcode.IdxPUTCHAR])
		ipAdvanceOne := next.IP.Sub(cur.IP).Sub(one)
		lbTerm := d[opcode.IdxLB].Mul(
			cur.MV.Mul(next.IP.Sub(cur.IP).Sub(f.ElemInt64(2))).
				Add(isZeroWitness.Mul(next.IP.Sub(cur.NI))),
		)
		rbTerm := d[opcode.IdxRB].Mul(
			isZeroWitness.Mul(next.IP.Sub(cur.IP).Sub(f.ElemInt64(2))).
				Add(cur.MV.Mul(next.IP.Sub(cur.NI))),
		)
		p1 := nonBracketSum.Mul(ipAdvanceOne).Add(lbTerm).Add(rbTerm)
		if !p1.IsZero() {
			out = append(out, Violation{Gate: "P1", Row: i, Value: p1})
		}

		// P2: memory-pointer update.
		movingSum := d[opcode.IdxADD].Add(d[opcode.IdxSUB]).Add(d[opcode.IdxLB]).
			Add(d[opcode.IdxRB]).Add(d[opcode.IdxGETCHAR]).Add(d[opcode.IdxPUTCHAR])
		shlTerm := d[opcode.IdxSHL].Mul(next.MP.Sub(cur.MP).Add(one))
		shrTerm := d[opcode.IdxSHR].Mul(next.MP.Sub(cur.MP).Sub(one))
		stayTerm := movingSum.Mul(next.MP.Sub(cur.MP))
		p2 := shlTerm.Add(shrTerm).Add(stayTerm)
		if !p2.IsZero() {
			out = append(out, Violation{Gate: "P2", Row: i, Value: p2})
		}

		// P3: memory-value update, wrap form combined with the Range
		// table lookup (spec §9's resolution of the open question).
		rMinusOne := f.ElemUint64(t.CellRange - 1)
		holdSum := d[opcode.IdxLB].Add(d[opcode.IdxRB]).Add(d[opcode.IdxPUTCHAR])
		holdTerm := holdSum.Mul(next.MV.Sub(cur.MV))
		addTerm := d[opcode.IdxADD].Mul(
			next.MV.Sub(cur.MV).Sub(one).Mul(next.MV.Sub(cur.MV).Add(rMinusOne)),
		)
		subTerm := d[opcode.IdxSUB].Mul(
			next.MV.Sub(cur.MV).Add(one).Mul(next.MV.Sub(cur.MV).Sub(rMinusOne)),
		)
		p3 := holdTerm.Add(addTerm).Add(subTerm)
		if !p3.IsZero() {
			out = append(out, Violation{Gate: "P3", Row: i, Value: p3})
		}
	}
	return out
}

// CheckClockMonotonicity is testable property 3 isolated from the rest of
// P0, useful for diagnostics that want to localize a clock-only tamper.
func (t *Table) CheckClockMonotonicity() []Violation {
	var out []Violation
	for i := 0; i+1 < len(t.Rows); i++ {
		f := t.Rows[i].Clk.Field()
		if v := t.Rows[i+1].Clk.Sub(t.Rows[i].Clk).Sub(f.One()); !v.IsZero() {
			out = append(out, Violation{Gate: "clock-monotone", Row: i, Value: v})
		}
	}
	return out
}

// RangeCells returns the mv column, the only column the Range table binds.
func (t *Table) RangeCells() []field.Element {
	cells := make([]field.Element, len(t.Rows))
	for i, row := range t.Rows {
		cells[i] = row.MV
	}
	return cells
}

// CompressedMemoryRows returns alpha + beta*clk + gamma*mp + delta*mv for
// every row, the condensed symbol the Processor<->Memory permutation
// argument runs its grand product over.
func (t *Table) CompressedMemoryRows(alpha, beta, gamma, delta field.Element) []field.Element {
	out := make([]field.Element, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = alpha.Add(beta.Mul(row.Clk)).Add(gamma.Mul(row.MP)).Add(delta.Mul(row.MV))
	}
	return out
}

// CompressedInstructionRows returns alpha + beta*ip + gamma*ci + delta*ni
// for every row, the condensed symbol the Processor<->Instruction lookup
// argument runs its log-derivative over.
func (t *Table) CompressedInstructionRows(alpha, beta, gamma, delta field.Element) []field.Element {
	out := make([]field.Element, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = alpha.Add(beta.Mul(row.IP)).Add(gamma.Mul(row.CI)).Add(delta.Mul(row.NI))
	}
	return out
}
