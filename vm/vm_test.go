package vm

import (
	"bytes"
	"errors"
	"testing"
)

// TestVM_Run_Basic tests prefix matching, anchored at offset 0, across
// the engine's pattern forms.
func TestVM_Run_Basic(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		want    bool
	}{
		// Literals
		{"literal match", "abc", "abc", true},
		{"literal longer input", "abc", "abcd", true},
		{"literal mismatch", "abc", "abd", false},
		{"literal empty input", "abc", "", false},
		{"literal short input", "abc", "ab", false},
		{"anchored only", "abc", "zabc", false},

		// Empty pattern matches the empty prefix of anything
		{"empty pattern empty input", "", "", true},
		{"empty pattern any input", "", "xyz", true},

		// Any
		{"any match", "a.c", "abc", true},
		{"any consumes one byte", "a.c", "ac", false},
		{"any needs a byte", "a.c", "a", false},
		{"any matches metachar byte", "a.c", "a*c", true},

		// Zero or more
		{"star zero", "ab*c", "ac", true},
		{"star one", "ab*c", "abc", true},
		{"star many", "ab*c", "abbbc", true},
		{"star mismatch", "ab*c", "abd", false},
		{"bare star empty", "a*", "", true},
		{"bare star other byte", "a*", "b", true},

		// One or more
		{"plus one", "ab+c", "abc", true},
		{"plus many", "ab+c", "abbc", true},
		{"plus zero", "ab+c", "ac", false},

		// Grouped repetition
		{"group star zero", "c(ab)*c", "cc", true},
		{"group star one", "c(ab)*c", "cabc", true},
		{"group star two", "c(ab)*c", "cababc", true},
		{"group star partial", "c(ab)*c", "cabac", false},
		{"group plus one", "(ab)+", "ab", true},
		{"group plus many", "(ab)+", "ababab", true},
		{"group plus zero", "(ab)+", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := MustCompile(tt.pattern)
			got, err := Run(prog, []byte(tt.input))
			if err != nil {
				t.Fatalf("Run(%q, %q) failed: %v", tt.pattern, tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Run(%q, %q) = %v, want %v", tt.pattern, tt.input, got, tt.want)
			}
		})
	}
}

// TestVM_Run_Alternation pins the engine's alternation semantics: '|'
// binds the most recent atom, and the left alternative falls through into
// the code compiled after the '|' instead of jumping past it.
func TestVM_Run_Alternation(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		want    bool
	}{
		// The right alternative works as expected.
		{"right branch", "a|b", "b", true},
		{"right branch longer", "a|b", "bx", true},

		// The left alternative falls through into the right branch's
		// code, so it must be followed by the right alternative's bytes.
		{"left branch alone", "a|b", "a", false},
		{"left branch falls through", "a|b", "ab", true},

		{"no branch", "a|b", "c", false},
		{"empty input", "a|b", "", false},

		// '|' binds only the last atom: "abc|def" alternates 'c' and 'd'.
		{"last atom right", "abc|def", "abdef", true},
		{"last atom left falls through", "abc|def", "abcdef", true},
		{"whole left alternative alone", "abc|def", "abc", false},
		{"whole right alternative alone", "abc|def", "def", false},

		// Grouped alternation binds the group.
		{"grouped right", "(a|b)c", "bc", true},
		{"grouped left falls through", "(a|b)c", "abc", true},
		{"grouped left alone", "(a|b)c", "ac", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := MustCompile(tt.pattern)
			got, err := Run(prog, []byte(tt.input))
			if err != nil {
				t.Fatalf("Run(%q, %q) failed: %v", tt.pattern, tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Run(%q, %q) = %v, want %v", tt.pattern, tt.input, got, tt.want)
			}
		})
	}
}

// TestVM_Run_AnyBounds pins the strict wildcard semantics: Any consumes a
// real input byte and fails at end of input, same as Char.
func TestVM_Run_AnyBounds(t *testing.T) {
	prog := MustCompile("ab.")
	got, err := Run(prog, []byte("ab"))
	if err != nil {
		t.Fatal(err)
	}
	if got {
		t.Error("Run(\"ab.\", \"ab\") = true, want false: Any must not consume past end of input")
	}

	got, err = Run(prog, []byte("abx"))
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Error("Run(\"ab.\", \"abx\") = false, want true")
	}
}

// TestVM_Run_ThreadLimit checks that unbounded thread growth from nested
// quantifiers surfaces as ErrThreadLimit: the engine deduplicates nothing,
// so "(a+)+b" doubles its thread list on every consumed 'a'.
func TestVM_Run_ThreadLimit(t *testing.T) {
	prog := MustCompile("(a+)+b")
	vm := NewWithConfig(prog, Config{MaxThreads: 64})

	got, err := vm.Run(bytes.Repeat([]byte("a"), 32))
	if !errors.Is(err, ErrThreadLimit) {
		t.Fatalf("Run error = %v, want ErrThreadLimit", err)
	}
	if got {
		t.Error("Run returned true with an error")
	}
}

// TestVM_Run_ThreadLimitNotHitOnMatch checks that a match found before
// the limit is reached still wins.
func TestVM_Run_ThreadLimitNotHitOnMatch(t *testing.T) {
	prog := MustCompile("(a+)+b")
	vm := NewWithConfig(prog, Config{MaxThreads: 64})

	got, err := vm.Run([]byte("aaab"))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !got {
		t.Error("Run(\"(a+)+b\", \"aaab\") = false, want true")
	}
}

// TestVM_Run_Reuse checks that a VM is reusable and a Program shareable:
// execution never mutates the program.
func TestVM_Run_Reuse(t *testing.T) {
	prog := MustCompile("c(ab)*c")
	vm := New(prog)

	inputs := []struct {
		input string
		want  bool
	}{
		{"cababc", true},
		{"cabac", false},
		{"cc", true},
		{"", false},
		{"cababc", true},
	}
	for _, tt := range inputs {
		got, err := vm.Run([]byte(tt.input))
		if err != nil {
			t.Fatalf("Run(%q) failed: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Run(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewWithConfig_ZeroMaxThreads(t *testing.T) {
	vm := NewWithConfig(MustCompile("a"), Config{})
	if vm.maxThreads != DefaultConfig().MaxThreads {
		t.Errorf("maxThreads = %d, want default %d", vm.maxThreads, DefaultConfig().MaxThreads)
	}
}

func BenchmarkVM_Run_Literal(b *testing.B) {
	prog := MustCompile("abcdefgh")
	vm := New(prog)
	input := []byte("abcdefgh")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if ok, err := vm.Run(input); err != nil || !ok {
			b.Fatal("unexpected result")
		}
	}
}

func BenchmarkVM_Run_Star(b *testing.B) {
	prog := MustCompile("ab*c")
	vm := New(prog)
	input := append(append([]byte("a"), bytes.Repeat([]byte("b"), 64)...), 'c')

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if ok, err := vm.Run(input); err != nil || !ok {
			b.Fatal("unexpected result")
		}
	}
}
