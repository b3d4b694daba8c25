// Package literal provides types and operations for extracting literal
// prefixes from compiled programs, for prefilter optimization.
package literal

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// Literal is a byte sequence that some accepting path through a program
// must consume first.
//
// Complete indicates the literal is itself a whole match: an occurrence of
// the literal needs no engine verification. Incomplete literals are only
// candidates and the engine must verify a match at their position.
type Literal struct {
	Bytes    []byte
	Complete bool
}

// NewLiteral creates a literal, copying b.
func NewLiteral(b []byte, complete bool) Literal {
	dst := make([]byte, len(b))
	copy(dst, b)
	return Literal{Bytes: dst, Complete: complete}
}

// Len returns the literal's length in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a human-readable representation of the literal.
func (l Literal) String() string {
	if l.Complete {
		return fmt.Sprintf("Complete(%q)", l.Bytes)
	}
	return fmt.Sprintf("Incomplete(%q)", l.Bytes)
}

// Seq is a sequence of literals extracted from one program.
//
// A finite seq guarantees that every match of the program begins with one
// of its literals. An infinite seq carries no guarantee (extraction hit a
// limit) and is useless for prefiltering.
type Seq struct {
	lits     []Literal
	infinite bool
}

// NewSeq creates a finite seq from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{lits: lits}
}

// NewInfinite creates a seq that represents "all possible literals".
func NewInfinite() *Seq {
	return &Seq{infinite: true}
}

// Len returns the number of literals in the seq.
func (s *Seq) Len() int {
	return len(s.lits)
}

// Get returns the i-th literal.
func (s *Seq) Get(i int) Literal {
	return s.lits[i]
}

// IsEmpty returns true if the seq is finite and contains no literals.
func (s *Seq) IsEmpty() bool {
	return !s.infinite && len(s.lits) == 0
}

// IsFinite returns true if the seq carries the prefix guarantee.
func (s *Seq) IsFinite() bool {
	return !s.infinite
}

// IsComplete returns true if the seq is finite, non-empty and every
// literal is complete: any occurrence of any literal is itself a match.
func (s *Seq) IsComplete() bool {
	if s.infinite || len(s.lits) == 0 {
		return false
	}
	for _, l := range s.lits {
		if !l.Complete {
			return false
		}
	}
	return true
}

// HasEmpty returns true if any literal in the seq is empty. An empty
// literal means the program can match with no required first byte, so no
// position can be ruled out.
func (s *Seq) HasEmpty() bool {
	for _, l := range s.lits {
		if len(l.Bytes) == 0 {
			return true
		}
	}
	return false
}

// Minimize sorts the seq, merges duplicates and drops any literal that has
// another literal of the seq as a prefix. Occurrences of the dropped
// literal are a subset of occurrences of the kept one, so candidate
// positions are preserved. Merged duplicates stay complete if either copy
// was complete.
func (s *Seq) Minimize() {
	if s.infinite || len(s.lits) < 2 {
		return
	}

	sort.Slice(s.lits, func(i, j int) bool {
		return bytes.Compare(s.lits[i].Bytes, s.lits[j].Bytes) < 0
	})

	kept := s.lits[:1]
	for _, l := range s.lits[1:] {
		last := &kept[len(kept)-1]
		if bytes.Equal(last.Bytes, l.Bytes) {
			last.Complete = last.Complete || l.Complete
			continue
		}
		if bytes.HasPrefix(l.Bytes, last.Bytes) {
			continue
		}
		kept = append(kept, l)
	}
	s.lits = kept
}

// String returns a human-readable representation of the seq.
func (s *Seq) String() string {
	if s.infinite {
		return "Seq(infinite)"
	}
	var b strings.Builder
	b.WriteString("Seq[")
	for i, l := range s.lits {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(l.String())
	}
	b.WriteString("]")
	return b.String()
}
