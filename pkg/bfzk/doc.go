// Package bfzk proves, in zero knowledge, that a given Brainfuck program
// executes to produce a given output on a given input.
//
// # Quick start
//
//	vm, err := bfzk.NewVM(bfzk.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	program, err := bfzk.CompileProgram([]byte("++>+<"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	et, err := vm.Execute(program, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	verdict, err := vm.Prove(et, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !verdict.Satisfied {
//		fmt.Println("constraints violated:", verdict.Failures)
//	}
//
// # Architecture
//
//   - pkg/bfzk/: this package, the public API (Config, VM, errors).
//   - internal/bfzk/field: the prime field the arithmetization runs over.
//   - internal/bfzk/opcode: the eight-instruction dialect and deselectors.
//   - internal/bfzk/compile: bracket-matching and jump-target resolution.
//   - internal/bfzk/trace: the step-by-step interpreter that records the
//     Processor matrix.
//   - internal/bfzk/processor, memory, instruction, rangetable: the four
//     correlated tables of the arithmetization.
//   - internal/bfzk/linkage: the permutation/lookup arguments tying the
//     tables together.
//   - internal/bfzk/transcript: the Fiat-Shamir channel verifier
//     challenges are derived from.
//   - internal/bfzk/prover: the mock prover that ties all of the above
//     together into a satisfaction verdict.
//
// The concrete proving backend (commitment scheme, FFTs, a real
// transcript-bound verifier) is out of scope; this package exposes the
// arithmetization and a direct-evaluation mock prover only.
package bfzk
