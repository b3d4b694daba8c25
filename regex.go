// Package revm is a small regex engine built on a linear bytecode program
// and a Thompson-style thread simulation, with no backtracking.
//
// The supported syntax is deliberately minimal: printable ASCII literals,
// '.' (any byte), '+' (one or more), '*' (zero or more), '|' (alternation)
// and non-capturing '(' ')' grouping. There are no character classes,
// anchors, escapes or captures.
//
// The engine itself matches a prefix of the input anchored at offset 0;
// the facade adds unanchored search by sliding the start offset, using a
// literal prefilter to skip offsets that cannot start a match.
//
// Basic usage:
//
//	re, err := revm.Compile("ab*c")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ok, err := re.Match([]byte("xx ac yy"))
//
// Alternation note: '|' binds the most recent atom or group, and the left
// alternative falls through into the code compiled after the '|'. See the
// vm package for the exact semantics.
package revm

import (
	"github.com/coregx/revm/literal"
	"github.com/coregx/revm/prefilter"
	"github.com/coregx/revm/vm"
)

// Regex is a compiled regular expression.
//
// A Regex holds no per-search state and is safe for concurrent use.
type Regex struct {
	pattern string
	prog    *vm.Program
	vm      *vm.VM
	pf      prefilter.Prefilter
}

// Compile compiles a pattern with the default engine configuration.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, vm.DefaultConfig())
}

// CompileWithConfig compiles a pattern with a custom engine configuration.
func CompileWithConfig(pattern string, config vm.Config) (*Regex, error) {
	prog, err := vm.Compile(pattern)
	if err != nil {
		return nil, err
	}

	seq := literal.FromProgram(prog, literal.DefaultConfig())

	return &Regex{
		pattern: pattern,
		prog:    prog,
		vm:      vm.NewWithConfig(prog, config),
		pf:      prefilter.FromSeq(seq),
	}, nil
}

// MustCompile is like Compile but panics if the pattern cannot be
// compiled. It is useful for patterns known to be valid at compile time.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("revm: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// String returns the source text used to compile the regular expression.
func (r *Regex) String() string {
	return r.pattern
}

// Program returns the compiled program. The program is immutable.
func (r *Regex) Program() *vm.Program {
	return r.prog
}

// MatchPrefix reports whether the pattern matches a prefix of b, anchored
// at offset 0. The error is non-nil only on resource exhaustion in the
// engine; input that does not match is (false, nil).
func (r *Regex) MatchPrefix(b []byte) (bool, error) {
	return r.vm.Run(b)
}

// Index returns the leftmost offset at which the pattern matches a prefix
// of b[offset:], or -1 if there is none. Candidate offsets come from the
// prefilter when one exists; otherwise every offset is tried.
func (r *Regex) Index(b []byte) (int, error) {
	if r.pf != nil {
		for at := 0; at <= len(b); at++ {
			pos := r.pf.Find(b, at)
			if pos < 0 {
				return -1, nil
			}
			if r.pf.IsComplete() {
				return pos, nil
			}
			ok, err := r.vm.Run(b[pos:])
			if err != nil {
				return -1, err
			}
			if ok {
				return pos, nil
			}
			at = pos
		}
		return -1, nil
	}

	for at := 0; at <= len(b); at++ {
		ok, err := r.vm.Run(b[at:])
		if err != nil {
			return -1, err
		}
		if ok {
			return at, nil
		}
	}
	return -1, nil
}

// Match reports whether b contains a match of the pattern anywhere.
func (r *Regex) Match(b []byte) (bool, error) {
	i, err := r.Index(b)
	return i >= 0, err
}

// MatchString reports whether s contains a match of the pattern anywhere.
func (r *Regex) MatchString(s string) (bool, error) {
	return r.Match([]byte(s))
}
