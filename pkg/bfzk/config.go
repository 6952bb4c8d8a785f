package bfzk

import (
	"fmt"
	"math/big"
)

// Config configures the VM and mock prover, grounded on
// internal/vybium-starks-vm/utils/config.go's Config struct and fluent
// With* builder methods.
type Config struct {
	// FieldModulus is the prime the arithmetization's field is built over.
	FieldModulus *big.Int

	// DomainExponent is k: Execute rejects a trace or program longer than
	// 2^k rows. The trace is not padded to 2^k rows.
	DomainExponent int

	// CellRange is R, the memory-cell modulus. Conventionally 256.
	CellRange uint64

	// SecurityLevel is carried for parity with the teacher's config shape;
	// it has no effect on the mock prover, which makes no soundness claim
	// tied to a query count (the concrete proving backend is out of scope).
	SecurityLevel int

	// HashFunction selects the Fiat-Shamir transcript's hash: "sha3"
	// (default) or "sha256", mirroring Channel.hash's switch.
	HashFunction string
}

// DefaultConfig returns the example domain size from original_source's
// MockProver::run(8, ...) call: k=8, a 256-row domain.
func DefaultConfig() *Config {
	return &Config{
		FieldModulus:   big.NewInt(3221225473), // 3*2^30 + 1, fits the cell/clk ranges this arithmetization needs
		DomainExponent: 8,
		CellRange:      256,
		SecurityLevel:  128,
		HashFunction:   "sha3",
	}
}

// Validate checks the configuration is internally consistent, following
// utils.Config.Validate's fmt.Errorf convention.
func (c *Config) Validate() error {
	if c.FieldModulus == nil || c.FieldModulus.Cmp(big.NewInt(2)) <= 0 {
		return fmt.Errorf("bfzk: field modulus must be greater than 2")
	}
	if c.DomainExponent < 0 || c.DomainExponent > 62 {
		return fmt.Errorf("bfzk: domain exponent %d out of range", c.DomainExponent)
	}
	if c.CellRange < 2 {
		return fmt.Errorf("bfzk: cell range must be at least 2, got %d", c.CellRange)
	}
	domainSize := uint64(1) << uint(c.DomainExponent)
	if domainSize < c.CellRange {
		return fmt.Errorf("bfzk: domain size 2^%d (%d) must be at least cell range %d", c.DomainExponent, domainSize, c.CellRange)
	}
	if c.SecurityLevel <= 0 {
		return fmt.Errorf("bfzk: security level must be positive")
	}
	if c.HashFunction != "sha3" && c.HashFunction != "sha256" {
		return fmt.Errorf("bfzk: hash function must be 'sha3' or 'sha256', got %q", c.HashFunction)
	}
	return nil
}

// WithDomainExponent sets k and returns c for chaining.
func (c *Config) WithDomainExponent(k int) *Config {
	c.DomainExponent = k
	return c
}

// WithCellRange sets R and returns c for chaining.
func (c *Config) WithCellRange(r uint64) *Config {
	c.CellRange = r
	return c
}

// WithHashFunction sets the transcript hash and returns c for chaining.
func (c *Config) WithHashFunction(name string) *Config {
	c.HashFunction = name
	return c
}

// DomainSize returns 2^DomainExponent, the padded row budget of spec §6.
func (c *Config) DomainSize() uint64 {
	return uint64(1) << uint(c.DomainExponent)
}

// SmallestDomainExponent returns the smallest k with 2^k >= max(traceLen,
// programLen, R), per spec §9's domain-sizing note.
func SmallestDomainExponent(traceLen, programLen int, cellRange uint64) int {
	need := uint64(traceLen)
	if uint64(programLen) > need {
		need = uint64(programLen)
	}
	if cellRange > need {
		need = cellRange
	}
	k := 0
	for (uint64(1) << uint(k)) < need {
		k++
	}
	return k
}
