package rangetable

import (
	"testing"

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

func TestCheckAccepts(t *testing.T) {
	f := testField(t)
	table := New(f, 256)
	cells := []field.Element{f.ElemUint64(0), f.ElemUint64(255), f.ElemUint64(17), f.ElemUint64(17)}
	challenge := f.ElemUint64(99999)
	if err := table.Check(cells, challenge); err != nil {
		t.Fatalf("Check: %v", err)
	}
}

func TestCheckRejectsOutOfRange(t *testing.T) {
	f := testField(t)
	table := New(f, 256)
	cells := []field.Element{f.ElemUint64(256)}
	if err := table.Check(cells, f.ElemUint64(7)); err == nil {
		t.Fatal("expected out-of-range error, got nil")
	}
}

func TestMultiplicities(t *testing.T) {
	f := testField(t)
	table := New(f, 256)
	mult := table.Multiplicities([]field.Element{f.ElemUint64(3), f.ElemUint64(3), f.ElemUint64(5)})
	if mult[3] != 2 || mult[5] != 1 {
		t.Errorf("Multiplicities = %v, want {3:2, 5:1}", mult)
	}
}
