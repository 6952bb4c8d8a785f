package instruction

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

func runProgram(t *testing.T, f *field.Field, src string) (*compile.Program, *trace.Result) {
	t.Helper()
	prog, err := compile.Compile([]byte(src))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	res, err := trace.Run(f, prog, nil, 256)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return prog, res
}

func TestHonestTraceSatisfiesCodeDominance(t *testing.T) {
	f := testField(t)
	cases := []string{"++>+<", "+[-]", "-", "[+]"}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			prog, res := runProgram(t, f, src)
			table := Build(f, prog, res.Rows)
			if v := table.CheckCodeDominance(); len(v) != 0 {
				t.Errorf("unexpected violations: %v", v)
			}
		})
	}
}

func TestCodeViewHasOneRowPerAddressPlusHalt(t *testing.T) {
	f := testField(t)
	prog, res := runProgram(t, f, "++>+<")
	table := Build(f, prog, res.Rows)
	view := table.CodeView()
	if len(view) != prog.Len()+1 {
		t.Fatalf("CodeView len = %d, want %d", len(view), prog.Len()+1)
	}
}

func TestTamperedTraceBreaksCodeDominance(t *testing.T) {
	f := testField(t)
	prog, res := runProgram(t, f, "++>+<")
	res.Rows[1].CI = f.ElemUint64(99)
	table := Build(f, prog, res.Rows)
	if v := table.CheckCodeDominance(); len(v) == 0 {
		t.Fatal("expected code-dominance violation after tampering ci")
	}
}

func TestMultiplicitiesWeightsByVisitCount(t *testing.T) {
	f := testField(t)
	prog, res := runProgram(t, f, "+[-]")
	table := Build(f, prog, res.Rows)
	mult := Multiplicities(res.InstructionCounts, table.CodeView())
	var total uint64
	for _, c := range mult {
		total += c
	}
	// The halt row isn't a visited code address, so the count is one less
	// than the total row count.
	want := uint64(len(res.Rows) - 1)
	if total != want {
		t.Errorf("sum of multiplicities = %d, want %d", total, want)
	}
}
