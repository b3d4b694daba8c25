// Package prefilter provides fast candidate filtering for unanchored
// search using extracted prefix literals.
//
// A prefilter scans the haystack for literals that every match must start
// with, so the engine only runs at candidate positions instead of at every
// offset. The optimal strategy is selected from the extracted literals:
//
//   - one single-byte literal → Memchr (bytes.IndexByte)
//   - one multi-byte literal → Memmem (bytes.Index)
//   - two or more literals → Aho-Corasick automaton
//
// When every extracted literal is complete, a prefilter hit is itself a
// match and the caller can skip engine verification entirely.
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/revm/literal"
)

// Prefilter finds candidate match positions in a haystack.
type Prefilter interface {
	// Find returns the index of the first candidate at or after start,
	// or -1 if there is none. Unless IsComplete reports true, a candidate
	// must be verified by the engine.
	Find(haystack []byte, start int) int

	// IsComplete returns true if a candidate position is guaranteed to be
	// a real match, making verification unnecessary.
	IsComplete() bool

	// LiteralLen returns the length of the matched literal when the
	// prefilter matches a single fixed-length literal, and 0 otherwise.
	LiteralLen() int
}

// FromSeq builds the optimal prefilter for a literal seq. It returns nil
// when no useful prefilter exists: the seq is empty or infinite, a literal
// is empty (no position can be ruled out), or the automaton cannot be
// built.
func FromSeq(seq *literal.Seq) Prefilter {
	if seq == nil || !seq.IsFinite() || seq.IsEmpty() || seq.HasEmpty() {
		return nil
	}

	complete := seq.IsComplete()

	if seq.Len() == 1 {
		lit := seq.Get(0)
		if lit.Len() == 1 {
			return &Memchr{b: lit.Bytes[0], complete: complete}
		}
		return &Memmem{needle: lit.Bytes, complete: complete}
	}

	builder := ahocorasick.NewBuilder()
	for i := 0; i < seq.Len(); i++ {
		builder.AddPattern(seq.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &AhoCorasick{auto: auto, complete: complete}
}

// Memchr finds occurrences of a single byte.
type Memchr struct {
	b        byte
	complete bool
}

// Find returns the next occurrence of the byte at or after start.
func (m *Memchr) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		return -1
	}
	i := bytes.IndexByte(haystack[start:], m.b)
	if i < 0 {
		return -1
	}
	return start + i
}

// IsComplete reports whether an occurrence is itself a match.
func (m *Memchr) IsComplete() bool {
	return m.complete
}

// LiteralLen returns 1.
func (m *Memchr) LiteralLen() int {
	return 1
}

// Memmem finds occurrences of a single multi-byte literal.
type Memmem struct {
	needle   []byte
	complete bool
}

// Find returns the next occurrence of the literal at or after start.
func (m *Memmem) Find(haystack []byte, start int) int {
	if start > len(haystack) {
		return -1
	}
	i := bytes.Index(haystack[start:], m.needle)
	if i < 0 {
		return -1
	}
	return start + i
}

// IsComplete reports whether an occurrence is itself a match.
func (m *Memmem) IsComplete() bool {
	return m.complete
}

// LiteralLen returns the literal's length.
func (m *Memmem) LiteralLen() int {
	return len(m.needle)
}

// AhoCorasick finds occurrences of any of several literals using a
// multi-pattern automaton.
type AhoCorasick struct {
	auto     *ahocorasick.Automaton
	complete bool
}

// Find returns the start of the next occurrence of any literal at or
// after start.
func (a *AhoCorasick) Find(haystack []byte, start int) int {
	if start >= len(haystack) {
		return -1
	}
	m := a.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

// IsComplete reports whether an occurrence is itself a match.
func (a *AhoCorasick) IsComplete() bool {
	return a.complete
}

// LiteralLen returns 0: the matched literal's length varies.
func (a *AhoCorasick) LiteralLen() int {
	return 0
}
