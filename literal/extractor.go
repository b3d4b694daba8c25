package literal

import (
	"github.com/coregx/revm/vm"
)

// Config configures literal extraction limits.
//
// The limits prevent excessive extraction from branchy programs: a pattern
// with many alternation paths could otherwise produce an unbounded number
// of literals, and loops could produce unbounded literal lengths.
type Config struct {
	// MaxLiterals limits the number of literals extracted. Exceeding it
	// makes the result infinite (no prefix guarantee). Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the length of each literal; longer chains are
	// cut and recorded as incomplete. Default: 64.
	MaxLiteralLen int
}

// DefaultConfig returns the default extraction configuration.
func DefaultConfig() Config {
	return Config{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
	}
}

// FromProgram extracts the prefix literals of a compiled program: a seq
// such that every match of the program starts with one of the literals.
//
// Extraction walks the program from instruction 0, following Jmp targets
// and both Split branches without consuming input, and collecting Char
// chains. A wildcard cuts the current literal (incomplete), reaching Match
// completes it, and revisiting an instruction on the same path (a loop)
// cuts it. The resulting seq is minimized.
//
// The walk operates on the emitted instructions rather than the pattern
// text, so it observes the engine's actual alternation and quantifier
// semantics.
func FromProgram(p *vm.Program, config Config) *Seq {
	if config.MaxLiterals <= 0 || config.MaxLiteralLen <= 0 {
		config = DefaultConfig()
	}
	e := extractor{prog: p, config: config}
	e.walk(0, nil, make(map[int]bool))
	if e.overflow {
		return NewInfinite()
	}
	seq := NewSeq(e.lits...)
	seq.Minimize()
	return seq
}

type extractor struct {
	prog     *vm.Program
	config   Config
	lits     []Literal
	overflow bool
}

func (e *extractor) add(prefix []byte, complete bool) {
	if e.overflow {
		return
	}
	if len(e.lits) >= e.config.MaxLiterals {
		e.overflow = true
		return
	}
	e.lits = append(e.lits, NewLiteral(prefix, complete))
}

// walk follows one path through the program, branching at Split. seen
// guards against epsilon cycles; it is cloned at branches so sibling paths
// do not interfere.
func (e *extractor) walk(pc int, prefix []byte, seen map[int]bool) {
	for {
		if e.overflow {
			return
		}
		if seen[pc] {
			e.add(prefix, false)
			return
		}
		seen[pc] = true

		in := e.prog.Inst(pc)
		switch in.Op() {
		case vm.OpChar:
			if len(prefix) >= e.config.MaxLiteralLen {
				e.add(prefix, false)
				return
			}
			prefix = append(prefix[:len(prefix):len(prefix)], in.Char())
			pc++

		case vm.OpAny:
			e.add(prefix, false)
			return

		case vm.OpMatch:
			e.add(prefix, true)
			return

		case vm.OpJmp:
			pc = in.Jmp()

		case vm.OpSplit:
			a, b := in.Split()
			e.walk(a, prefix, cloneSeen(seen))
			e.walk(b, prefix, seen)
			return
		}
	}
}

func cloneSeen(seen map[int]bool) map[int]bool {
	dst := make(map[int]bool, len(seen))
	for k, v := range seen {
		dst[k] = v
	}
	return dst
}
