package bfzk

import (
	"math/big"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig should validate, got: %v", err)
	}
}

func TestValidateRejectsSmallModulus(t *testing.T) {
	c := DefaultConfig()
	c.FieldModulus = big.NewInt(2)
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for modulus <= 2")
	}
}

func TestValidateRejectsDomainSmallerThanCellRange(t *testing.T) {
	c := DefaultConfig()
	c.DomainExponent = 2 // 2^2 = 4 < 256
	if err := c.Validate(); err == nil {
		t.Fatal("expected error when domain size is smaller than cell range")
	}
}

func TestValidateRejectsUnknownHashFunction(t *testing.T) {
	c := DefaultConfig()
	c.HashFunction = "poseidon"
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for unsupported hash function")
	}
}

func TestWithBuildersChain(t *testing.T) {
	c := DefaultConfig().WithDomainExponent(10).WithCellRange(512).WithHashFunction("sha256")
	if c.DomainExponent != 10 || c.CellRange != 512 || c.HashFunction != "sha256" {
		t.Fatalf("builder chain did not apply: %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("chained config should validate: %v", err)
	}
}

func TestDomainSize(t *testing.T) {
	c := DefaultConfig()
	c.DomainExponent = 4
	if got := c.DomainSize(); got != 16 {
		t.Fatalf("DomainSize() = %d, want 16", got)
	}
}

func TestSmallestDomainExponent(t *testing.T) {
	cases := []struct {
		traceLen, programLen int
		cellRange            uint64
		want                 int
	}{
		{traceLen: 5, programLen: 3, cellRange: 256, want: 8},
		{traceLen: 300, programLen: 10, cellRange: 256, want: 9},
		{traceLen: 0, programLen: 0, cellRange: 2, want: 1},
	}
	for _, tc := range cases {
		if got := SmallestDomainExponent(tc.traceLen, tc.programLen, tc.cellRange); got != tc.want {
			t.Errorf("SmallestDomainExponent(%d,%d,%d) = %d, want %d", tc.traceLen, tc.programLen, tc.cellRange, got, tc.want)
		}
	}
}
