package trace

import (
	"testing"

	"github.com/bfzk/bfzk/internal/bfzk/compile"
	"github.com/bfzk/bfzk/internal/bfzk/field"
)

func testField(t *testing.T) *field.Field {
	t.Helper()
	f, err := field.NewFromUint64(3221225473)
	if err != nil {
		t.Fatalf("NewFromUint64: %v", err)
	}
	return f
}

// S1: ++>+< — inc cell0 twice, move right, inc cell1, move back.
func TestS1IncrementAndShift(t *testing.T) {
	f := testField(t)
	prog, err := compile.Compile([]byte("++>+<"))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	res, err := Run(f, prog, nil, 256)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	last := res.Rows[len(res.Rows)-1]
	if !last.MP.Equal(f.ElemInt64(0)) {
		t.Errorf("final mp = %v, want 0", last.MP)
	}
	if !last.MV.Equal(f.ElemInt64(2)) {
		t.Errorf("final mv (cell0) = %v, want 2", last.MV)
	}
}

// S2: +[-] — set to 1, loop-decrement to 0.
func TestS2LoopDecrement(t *testing.T) {
	f := testField(t)
	prog, err := compile.Compile([]byte("+[-]"))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	res, err := Run(f, prog, nil, 256)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	last := res.Rows[len(res.Rows)-1]
	if !last.MV.IsZero() {
		t.Errorf("final mv = %v, want 0", last.MV)
	}
}

// S3: ,+. with input "A" (65) should emit 66.
func TestS3GetcharPutchar(t *testing.T) {
	f := testField(t)
	prog, err := compile.Compile([]byte(",+."))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	res, err := Run(f, prog, compile.InputBytes("A"), 256)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Output) != 1 || res.Output[0] != 66 {
		t.Errorf("Output = %v, want [66]", res.Output)
	}
}

// S4: '-' from a fresh cell should wrap to R-1.
func TestS4SubWraps(t *testing.T) {
	f := testField(t)
	prog, err := compile.Compile([]byte("-"))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	res, err := Run(f, prog, nil, 256)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	last := res.Rows[len(res.Rows)-1]
	if !last.MV.Equal(f.ElemInt64(255)) {
		t.Errorf("final mv = %v, want 255", last.MV)
	}
}

// Bracket law (testable property 7), '[' half: '[' with mv=0 skips to ni.
func TestBracketLaw(t *testing.T) {
	f := testField(t)
	prog, err := compile.Compile([]byte("[+]"))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	res, err := Run(f, prog, nil, 256)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// mv starts at 0, so LB should jump straight past RB: only one row (LB)
	// plus the halt row should be recorded — the body never executes.
	if len(res.Rows) != 2 {
		t.Fatalf("expected 2 rows (LB + halt), got %d", len(res.Rows))
	}
}

func TestConsistencyWitness(t *testing.T) {
	f := testField(t)
	prog, err := compile.Compile([]byte("+++"))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	res, err := Run(f, prog, nil, 256)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, row := range res.Rows {
		prod := row.MV.Mul(row.MVI)
		if row.MV.IsZero() {
			if !row.MVI.IsZero() {
				t.Errorf("row %d: mv=0 but mvi != 0", i)
			}
		} else if !prod.Equal(f.One()) {
			t.Errorf("row %d: mv*mvi = %v, want 1", i, prod)
		}
	}
}
