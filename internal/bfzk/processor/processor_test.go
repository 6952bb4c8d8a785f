package processor

import (
	"testing"

	"github.com/bfzk/bfzk/internal/bfzk/compile"
	"github.com/bfzk/bfzk/internal/bfzk/field"
	"github.com/bfzk/bfzk/internal/bfzk/trace"
)

func testField(t *testing.T) *field.Field {
	t.Helper()
	f, err := field.NewFromUint64(3221225473)
	if err != nil {
		t.Fatalf("NewFromUint64: %v", err)
	}
	return f
}

func runProgram(t *testing.T, f *field.Field, src string, input []byte) *trace.Result {
	t.Helper()
	prog, err := compile.Compile([]byte(src))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	res, err := trace.Run(f, prog, input, 256)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return res
}

// S1, S2, S3, S4, S5: honest traces must satisfy every gate (testable property 2).
func TestHonestTracesSatisfyAllGates(t *testing.T) {
	f := testField(t)
	cases := []struct {
		name  string
		src   string
		input []byte
	}{
		{"S1", "++>+<", nil},
		{"S2", "+[-]", nil},
		{"S3", ",+.", compile.InputBytes("A")},
		{"S4", "-", nil},
		{"S5-hello", "++++++++[>++++[>++>+++>+++>+<<<<-]>+>+>->>+[<]<-]>>.>---.+++++++..+++.>>.<-.<.+++.------.--------.>>+.>++.", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := runProgram(t, f, tc.src, tc.input)
			table := New(res.Rows, 256)
			var violations []Violation
			violations = append(violations, table.CheckBoundary()...)
			violations = append(violations, table.CheckConsistency()...)
			violations = append(violations, table.CheckTransition()...)
			for _, v := range violations {
				t.Errorf("unexpected violation: %v", v)
			}
		})
	}
}

// S6: tampering a single mv cell must break at least one gate.
func TestTamperedTraceFailsSomeGate(t *testing.T) {
	f := testField(t)
	res := runProgram(t, f, "++>+<", nil)
	if len(res.Rows) < 4 {
		t.Fatalf("need at least 4 rows, got %d", len(res.Rows))
	}
	res.Rows[3].MV = f.ElemUint64(res.Rows[3].MV.Uint64() + 1)

	table := New(res.Rows, 256)
	var violations []Violation
	violations = append(violations, table.CheckConsistency()...)
	violations = append(violations, table.CheckTransition()...)
	if len(violations) == 0 {
		t.Fatal("tampered mv did not break any gate")
	}
}

// S6 variant: mv tampered without updating mvi must break C0/C1.
func TestTamperedValueBreaksConsistency(t *testing.T) {
	f := testField(t)
	res := runProgram(t, f, "+[-]", nil)
	for i := range res.Rows {
		if !res.Rows[i].MV.IsZero() {
			res.Rows[i].MV = res.Rows[i].MV.Add(f.One())
			break
		}
	}
	table := New(res.Rows, 256)
	violations := table.CheckConsistency()
	if len(violations) == 0 {
		t.Fatal("expected C0/C1 violation after corrupting mv without mvi")
	}
}

// Wrap law (testable property 6), SUB half: SUB at mv=0 wraps to R-1.
func TestWrapLaw(t *testing.T) {
	f := testField(t)
	res := runProgram(t, f, "-", nil)
	last := res.Rows[len(res.Rows)-1]
	if !last.MV.Equal(f.ElemUint64(255)) {
		t.Fatalf("SUB from 0: final mv = %v, want 255", last.MV)
	}
	table := New(res.Rows, 256)
	if v := table.CheckTransition(); len(v) != 0 {
		t.Errorf("wrap transition should satisfy P3, got violations: %v", v)
	}
}

// Bracket law (testable property 7).
func TestBracketLaw(t *testing.T) {
	f := testField(t)
	res := runProgram(t, f, "[+]", nil)
	table := New(res.Rows, 256)
	if v := table.CheckTransition(); len(v) != 0 {
		t.Errorf("unexpected violations for skipped loop: %v", v)
	}
}
