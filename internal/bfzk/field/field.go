// Package field wraps modular big.Int arithmetic behind a Field/Element
// pair so the rest of the arithmetization never touches math/big directly.
package field

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Field is a finite field Z/pZ for a prime modulus p.
type Field struct {
	modulus *big.Int
}

// Element is a value in a Field.
type Element struct {
	field *Field
	value *big.Int
}

// New creates a finite field with the given modulus.
func New(modulus *big.Int) (*Field, error) {
	if modulus.Cmp(big.NewInt(2)) <= 0 {
		return nil, fmt.Errorf("modulus must be greater than 2")
	}
	return &Field{modulus: new(big.Int).Set(modulus)}, nil
}

// NewFromUint64 creates a finite field from a uint64 modulus.
func NewFromUint64(modulus uint64) (*Field, error) {
	return New(new(big.Int).SetUint64(modulus))
}

// Modulus returns a copy of the field's modulus.
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.modulus)
}

// Elem creates an element from a big.Int, reducing modulo the field.
func (f *Field) Elem(value *big.Int) Element {
	normalized := new(big.Int).Mod(value, f.modulus)
	return Element{field: f, value: normalized}
}

// ElemInt64 creates an element from an int64.
func (f *Field) ElemInt64(value int64) Element {
	return f.Elem(big.NewInt(value))
}

// ElemUint64 creates an element from a uint64.
func (f *Field) ElemUint64(value uint64) Element {
	return f.Elem(new(big.Int).SetUint64(value))
}

// Random returns a cryptographically random element.
func (f *Field) Random() (Element, error) {
	value, err := rand.Int(rand.Reader, f.modulus)
	if err != nil {
		return Element{}, fmt.Errorf("field: random element: %w", err)
	}
	return f.Elem(value), nil
}

// Zero returns the additive identity.
func (f *Field) Zero() Element { return f.ElemInt64(0) }

// One returns the multiplicative identity.
func (f *Field) One() Element { return f.ElemInt64(1) }

// Equals reports whether two fields share the same modulus.
func (f *Field) Equals(other *Field) bool {
	return f.modulus.Cmp(other.modulus) == 0
}

// Field returns the field this element belongs to.
func (e Element) Field() *Field { return e.field }

// Big returns the element's value as a big.Int.
func (e Element) Big() *big.Int { return new(big.Int).Set(e.value) }

// Uint64 returns the element's value truncated to a uint64. Only meaningful
// for moduli and values that fit in 64 bits, which holds for every value
// this package produces (bytes, clocks, addresses).
func (e Element) Uint64() uint64 {
	return e.value.Uint64()
}

func (e Element) checkField(other Element) {
	if e.field == nil || other.field == nil || !e.field.Equals(other.field) {
		panic("field: operands belong to different fields")
	}
}

// Add returns e + other.
func (e Element) Add(other Element) Element {
	e.checkField(other)
	return e.field.Elem(new(big.Int).Add(e.value, other.value))
}

// Sub returns e - other.
func (e Element) Sub(other Element) Element {
	e.checkField(other)
	return e.field.Elem(new(big.Int).Sub(e.value, other.value))
}

// Neg returns -e.
func (e Element) Neg() Element {
	return e.field.Elem(new(big.Int).Neg(e.value))
}

// Mul returns e * other.
func (e Element) Mul(other Element) Element {
	e.checkField(other)
	return e.field.Elem(new(big.Int).Mul(e.value, other.value))
}

// Inv returns the multiplicative inverse of e via the extended Euclidean
// algorithm. Returns an error if e is zero.
func (e Element) Inv() (Element, error) {
	if e.value.Sign() == 0 {
		return Element{}, fmt.Errorf("field: cannot invert zero")
	}
	x := new(big.Int)
	y := new(big.Int)
	gcd := new(big.Int).GCD(x, y, e.value, e.field.modulus)
	if gcd.Cmp(big.NewInt(1)) != 0 {
		return Element{}, fmt.Errorf("field: inverse does not exist")
	}
	if x.Sign() < 0 {
		x.Add(x, e.field.modulus)
	}
	return e.field.Elem(x), nil
}

// Div returns e / other.
func (e Element) Div(other Element) (Element, error) {
	e.checkField(other)
	inv, err := other.Inv()
	if err != nil {
		return Element{}, fmt.Errorf("field: division: %w", err)
	}
	return e.Mul(inv), nil
}

// Exp returns e raised to the given exponent.
func (e Element) Exp(exponent *big.Int) Element {
	return e.field.Elem(new(big.Int).Exp(e.value, exponent, e.field.modulus))
}

// Square returns e * e.
func (e Element) Square() Element {
	return e.Mul(e)
}

// Equal reports whether two elements of the same field hold the same value.
func (e Element) Equal(other Element) bool {
	if e.field == nil || other.field == nil || !e.field.Equals(other.field) {
		return false
	}
	return e.value.Cmp(other.value) == 0
}

// IsZero reports whether e is the additive identity.
func (e Element) IsZero() bool {
	return e.value.Sign() == 0
}

// LessThan compares the underlying representatives; only meaningful for
// range-checking small values like byte cells, not as a field ordering.
func (e Element) LessThan(other Element) bool {
	return e.value.Cmp(other.value) < 0
}

// String renders the element's representative value.
func (e Element) String() string {
	return e.value.String()
}

// Bytes returns the big-endian byte representation of the element's value.
func (e Element) Bytes() []byte {
	return e.value.Bytes()
}
