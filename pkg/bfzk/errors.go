package bfzk

import "fmt"

// ErrorCode enumerates the failure taxonomy of spec §7.
type ErrorCode int

const (
	// ErrUnknown is the zero value; never returned deliberately.
	ErrUnknown ErrorCode = iota

	// ErrInvalidConfig means a Config failed Validate.
	ErrInvalidConfig

	// ErrFieldCreation means the configured field modulus could not back a field.Field.
	ErrFieldCreation

	// ErrMalformedProgram means the compiler rejected the source because of unmatched brackets (non-opcode bytes are skipped as comments, not rejected).
	ErrMalformedProgram

	// ErrTraceOverflow means execution produced more rows than 2^DomainExponent allows.
	ErrTraceOverflow

	// ErrAssignmentFailure means a cell value violated a field or range precondition during trace assignment.
	ErrAssignmentFailure

	// ErrConstraintUnsatisfied means the mock prover found at least one failing gate.
	ErrConstraintUnsatisfied

	// ErrInvalidInput means a caller-supplied argument (nil program, negative k, ...) was invalid.
	ErrInvalidInput
)

// BFError is this module's error type: a code, a message, and an optional
// wrapped cause, grounded on pkg/vybium-starks-vm/errors.go's VMError.
type BFError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *BFError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("bfzk error [%d]: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("bfzk error [%d]: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *BFError) Unwrap() error {
	return e.Cause
}

// Is compares error codes, so errors.Is(err, &BFError{Code: ErrTraceOverflow}) works.
func (e *BFError) Is(target error) bool {
	t, ok := target.(*BFError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func wrap(code ErrorCode, message string, cause error) *BFError {
	return &BFError{Code: code, Message: message, Cause: cause}
}
