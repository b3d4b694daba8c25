// Package vm implements a small regex bytecode engine: a compiler that
// translates a restricted pattern syntax (literals, '.', '+', '*', '|' and
// non-capturing grouping) into a linear instruction sequence, and a
// thread-simulation engine that executes the sequence against a byte slice
// without backtracking.
package vm

import (
	"errors"
	"fmt"
)

// Compile and run errors.
var (
	// ErrLeadingQuantifier indicates '+', '*' or '|' with no preceding
	// atom to operate on.
	ErrLeadingQuantifier = errors.New("quantifier with nothing to repeat")

	// ErrUnmatchedGroup indicates a ')' with no open group.
	ErrUnmatchedGroup = errors.New("unmatched closing parenthesis")

	// ErrGroupDepth indicates group nesting deeper than MaxGroupDepth.
	ErrGroupDepth = errors.New("group nesting too deep")

	// ErrThreadLimit indicates the engine's thread list outgrew the
	// configured maximum during a run.
	ErrThreadLimit = errors.New("thread limit exceeded")
)

// CompileError wraps a compile failure with the pattern and the byte
// position where compilation stopped.
type CompileError struct {
	Pattern string
	Pos     int
	Err     error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("vm: compiling %q at position %d: %v", e.Pattern, e.Pos, e.Err)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}
