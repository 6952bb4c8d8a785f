package bfzk

import "testing"

func TestCompileProgramRejectsUnmatchedBracket(t *testing.T) {
	if _, err := CompileProgram([]byte("[++")); err == nil {
		t.Fatal("expected error for unmatched bracket")
	}
}

func TestCompileProgramLen(t *testing.T) {
	p, err := CompileProgram([]byte("++>+<"))
	if err != nil {
		t.Fatalf("CompileProgram: %v", err)
	}
	if p.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", p.Len())
	}
}

func TestInputBytesRoundTripsASCII(t *testing.T) {
	got := InputBytes("Hi")
	if string(got) != "Hi" {
		t.Fatalf("InputBytes(\"Hi\") = %q, want %q", got, "Hi")
	}
}
