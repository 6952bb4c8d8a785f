package opcode

import (
	"testing"

	"github.com/bfzk/bfzk/internal/bfzk/field"
)

func TestDeselector(t *testing.T) {
	f, err := field.NewFromUint64(3221225473)
	if err != nil {
		t.Fatalf("NewFromUint64: %v", err)
	}

	t.Run("NonzeroOnMatch", func(t *testing.T) {
		for _, op := range All {
			ci := f.ElemUint64(uint64(op))
			if Deselector(op, ci).IsZero() {
				t.Errorf("D_%s(%s) evaluated to zero on a matching ci", op, op)
			}
		}
	})

	t.Run("ZeroOnMismatch", func(t *testing.T) {
		for _, op := range All {
			for _, other := range All {
				if other == op {
					continue
				}
				ci := f.ElemUint64(uint64(other))
				if !Deselector(op, ci).IsZero() {
					t.Errorf("D_%s(%s) should be zero, was nonzero", op, other)
				}
			}
		}
	})
}

func TestIsValid(t *testing.T) {
	for _, op := range All {
		if !IsValid(byte(op)) {
			t.Errorf("IsValid(%v) = false, want true", op)
		}
	}
	if IsValid('x') {
		t.Errorf("IsValid('x') = true, want false")
	}
}
