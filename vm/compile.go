package vm

import (
	"fmt"
)

// MaxGroupDepth is the maximum group nesting depth the compiler accepts.
// Exceeding it is a compile error, never a runtime one.
const MaxGroupDepth = 10

// Compile translates a pattern into an immutable Program.
//
// The supported syntax is literals, '.' (any byte), '+' (one or more),
// '*' (zero or more), '|' (alternation) and '(' ')' for grouping. Groups do
// not capture; they only scope quantifiers and alternation.
//
// Compile is a pure function of the pattern text: compiling the same
// pattern twice yields structurally identical programs. Compilation fails
// with a *CompileError wrapping ErrLeadingQuantifier, ErrUnmatchedGroup or
// ErrGroupDepth; no partial program is ever returned.
func Compile(pattern string) (*Program, error) {
	c := compiler{pattern: pattern}
	if err := c.emit(); err != nil {
		return nil, err
	}

	// The pre-scan size formula is a structural invariant of the emission
	// pass: every literal, '.', '+' and '|' contributes exactly one
	// instruction, '*' exactly two, parentheses none.
	if want := instCount(pattern); len(c.insts) != want {
		return nil, fmt.Errorf("vm: compiling %q: emitted %d instructions, size formula predicts %d",
			pattern, len(c.insts), want)
	}

	return &Program{insts: c.insts, pattern: pattern}, nil
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
func MustCompile(pattern string) *Program {
	p, err := Compile(pattern)
	if err != nil {
		panic("vm: Compile(`" + pattern + "`): " + err.Error())
	}
	return p
}

// instCount computes the exact instruction count for a pattern in a single
// forward scan, without emitting anything. Grouping parentheses contribute
// nothing, '*' contributes a Split and a Jmp, and every other pattern byte
// (literal, '.', '+', '|') contributes exactly one instruction. The trailing
// Match adds one.
func instCount(pattern string) int {
	n := 1 // trailing Match
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '(', ')':
			// no instruction
		case '*':
			n += 2
		default:
			n++
		}
	}
	return n
}

// compiler holds the state of one emission pass.
//
// marks is the group-start stack: marks[depth] is the index of the current
// sub-expression at that nesting depth, the span a following quantifier or
// alternation operates on. A literal or '.' overwrites the slot at the
// current depth with its own index; '(' saves the group start in the slot
// and descends; ')' ascends, leaving the group start as the current mark so
// a trailing quantifier binds the whole group.
type compiler struct {
	pattern string
	insts   []Inst

	marks   [MaxGroupDepth + 1]int
	depth   int
	hasAtom [MaxGroupDepth + 1]bool
}

func (c *compiler) errorAt(pos int, err error) error {
	return &CompileError{Pattern: c.pattern, Pos: pos, Err: err}
}

func (c *compiler) emit() error {
	for pos := 0; pos < len(c.pattern); pos++ {
		ch := c.pattern[pos]
		i := len(c.insts)

		switch ch {
		case '(':
			if c.depth >= MaxGroupDepth {
				return c.errorAt(pos, ErrGroupDepth)
			}
			c.marks[c.depth] = i
			c.depth++
			c.hasAtom[c.depth] = false

		case ')':
			if c.depth == 0 {
				return c.errorAt(pos, ErrUnmatchedGroup)
			}
			c.depth--
			c.hasAtom[c.depth] = true

		case '+':
			// One or more: after the sub-expression matched once, a thread
			// may re-enter it (target mark) or fall through past the Split.
			if !c.hasAtom[c.depth] {
				return c.errorAt(pos, ErrLeadingQuantifier)
			}
			mark := c.marks[c.depth]
			c.insts = append(c.insts, Inst{op: OpSplit, x: mark, y: i + 1})

		case '*':
			// Zero or more: the sub-expression is shifted up one slot to
			// make room for a leading Split that can skip it entirely, and
			// a Jmp back to the Split closes the loop.
			if !c.hasAtom[c.depth] {
				return c.errorAt(pos, ErrLeadingQuantifier)
			}
			mark := c.marks[c.depth]
			c.shift(mark)
			c.insts[mark] = Inst{op: OpSplit, x: mark + 1, y: i + 2}
			c.insts = append(c.insts, Inst{op: OpJmp, x: mark})

		case '|':
			// Alternation: a Split is inserted before the left alternative.
			// No skip jump is appended, so the left alternative falls
			// through into the instructions compiled after the '|'.
			if !c.hasAtom[c.depth] {
				return c.errorAt(pos, ErrLeadingQuantifier)
			}
			mark := c.marks[c.depth]
			c.shift(mark)
			c.insts[mark] = Inst{op: OpSplit, x: mark + 1, y: i + 1}

		case '.':
			c.marks[c.depth] = i
			c.hasAtom[c.depth] = true
			c.insts = append(c.insts, Inst{op: OpAny})

		default:
			c.marks[c.depth] = i
			c.hasAtom[c.depth] = true
			c.insts = append(c.insts, Inst{op: OpChar, c: ch})
		}
	}

	c.insts = append(c.insts, Inst{op: OpMatch})
	return nil
}

// shift moves every instruction in [mark, len) one slot up, walking from
// the high end down, and renumbers the targets of shifted Jmp and Split
// instructions since their absolute positions moved. Slot mark is left
// vacant for the caller to fill.
func (c *compiler) shift(mark int) {
	c.insts = append(c.insts, Inst{})
	for j := len(c.insts) - 1; j > mark; j-- {
		in := c.insts[j-1]
		switch in.op {
		case OpJmp:
			in.x++
		case OpSplit:
			in.x++
			in.y++
		}
		c.insts[j] = in
	}
}
