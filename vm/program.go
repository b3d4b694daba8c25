package vm

import (
	"fmt"
	"strings"
)

// Op identifies the kind of a program instruction and determines which
// payload fields are valid.
type Op uint8

const (
	// OpChar consumes one input byte iff it equals the instruction's byte.
	OpChar Op = iota

	// OpAny consumes one input byte unconditionally.
	OpAny

	// OpMatch accepts: the pattern matched.
	OpMatch

	// OpJmp transfers control to the instruction's target unconditionally.
	OpJmp

	// OpSplit continues as two threads, one per target.
	OpSplit
)

// String returns a human-readable representation of the Op.
func (op Op) String() string {
	switch op {
	case OpChar:
		return "Char"
	case OpAny:
		return "Any"
	case OpMatch:
		return "Match"
	case OpJmp:
		return "Jmp"
	case OpSplit:
		return "Split"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(op))
	}
}

// Inst is a single program instruction. The op determines which payload
// fields are valid: c for OpChar, x for OpJmp, x and y for OpSplit.
type Inst struct {
	op Op
	c  byte
	x  int
	y  int
}

// Op returns the instruction's kind.
func (in Inst) Op() Op {
	return in.op
}

// Char returns the byte an OpChar instruction consumes.
// Returns 0 for other instruction kinds.
func (in Inst) Char() byte {
	if in.op == OpChar {
		return in.c
	}
	return 0
}

// Jmp returns the target of an OpJmp instruction.
// Returns -1 for other instruction kinds.
func (in Inst) Jmp() int {
	if in.op == OpJmp {
		return in.x
	}
	return -1
}

// Split returns the two targets of an OpSplit instruction.
// Returns (-1, -1) for other instruction kinds.
func (in Inst) Split() (a, b int) {
	if in.op == OpSplit {
		return in.x, in.y
	}
	return -1, -1
}

// String returns a human-readable representation of the instruction.
func (in Inst) String() string {
	switch in.op {
	case OpChar:
		return fmt.Sprintf("Char(%q)", in.c)
	case OpAny:
		return "Any"
	case OpMatch:
		return "Match"
	case OpJmp:
		return fmt.Sprintf("Jmp(%d)", in.x)
	case OpSplit:
		return fmt.Sprintf("Split(%d, %d)", in.x, in.y)
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(in.op))
	}
}

// Program is a compiled, immutable instruction sequence. The final
// instruction is always OpMatch and it is the only OpMatch in the sequence.
// A Program never mutates after compilation and may be shared by any number
// of concurrent Run calls.
type Program struct {
	insts   []Inst
	pattern string
}

// Len returns the number of instructions in the program.
func (p *Program) Len() int {
	return len(p.insts)
}

// Inst returns the instruction at index i.
func (p *Program) Inst(i int) Inst {
	return p.insts[i]
}

// Pattern returns the source pattern the program was compiled from.
func (p *Program) Pattern() string {
	return p.pattern
}

// String returns a multi-line disassembly of the program.
func (p *Program) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Program(%q, %d insts)\n", p.pattern, len(p.insts))
	for i, in := range p.insts {
		fmt.Fprintf(&b, "%4d  %s\n", i, in)
	}
	return b.String()
}
