package bfzk

import (
	"errors"
	"testing"
)

func TestBFErrorMessageIncludesCause(t *testing.T) {
	cause := errors.New("boom")
	err := wrap(ErrTraceOverflow, "trace too long", cause)
	if err.Unwrap() != cause {
		t.Fatalf("Unwrap() = %v, want %v", err.Unwrap(), cause)
	}
	msg := err.Error()
	if msg == "" {
		t.Fatal("Error() returned empty string")
	}
}

func TestBFErrorIsMatchesByCode(t *testing.T) {
	err := wrap(ErrInvalidConfig, "bad config", nil)
	if !errors.Is(err, &BFError{Code: ErrInvalidConfig}) {
		t.Fatal("errors.Is should match on code")
	}
	if errors.Is(err, &BFError{Code: ErrTraceOverflow}) {
		t.Fatal("errors.Is should not match a different code")
	}
}

func TestNewVMRejectsInvalidConfig(t *testing.T) {
	c := DefaultConfig()
	c.DomainExponent = -1
	_, err := NewVM(c)
	if err == nil {
		t.Fatal("expected error for invalid config")
	}
	if !errors.Is(err, &BFError{Code: ErrInvalidConfig}) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
