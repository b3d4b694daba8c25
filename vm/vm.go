package vm

// Config configures program execution.
type Config struct {
	// MaxThreads caps the size of the thread list during a run. The engine
	// performs no (pc, sp) deduplication, so nested quantifiers can grow
	// the list without a linear bound; exceeding the cap aborts the run
	// with ErrThreadLimit. Default: 4096.
	MaxThreads int
}

// DefaultConfig returns the default execution configuration.
func DefaultConfig() Config {
	return Config{
		MaxThreads: 4096,
	}
}

// thread is one simulated NFA path: pc indexes the program, sp counts the
// input bytes this path has consumed. Two threads with equal (pc, sp) are
// behaviorally indistinguishable.
type thread struct {
	pc int
	sp int
}

// VM executes one compiled Program. The program is immutable and a VM holds
// no per-run state, so a single VM may be shared by concurrent Run calls.
type VM struct {
	prog       *Program
	maxThreads int
}

// New creates a VM for the given program with the default configuration.
func New(prog *Program) *VM {
	return NewWithConfig(prog, DefaultConfig())
}

// NewWithConfig creates a VM for the given program with a custom
// configuration.
func NewWithConfig(prog *Program, config Config) *VM {
	if config.MaxThreads <= 0 {
		config.MaxThreads = DefaultConfig().MaxThreads
	}
	return &VM{
		prog:       prog,
		maxThreads: config.MaxThreads,
	}
}

// Run reports whether any execution path through the program consumes a
// prefix of input and reaches Match. Matching is anchored at offset 0;
// callers wanting search-anywhere slide the start offset externally.
//
// Run is a pure function of (program, input). Input that does not match is
// the false result, never an error; the only failure mode is resource
// exhaustion when the thread list outgrows the configured maximum.
func (v *VM) Run(input []byte) (bool, error) {
	threads := make([]thread, 1, 16)
	threads[0] = thread{pc: 0, sp: 0}

	for len(threads) > 0 {
		// One sweep over the thread list in insertion order. Threads
		// appended by Split are visited later in the same sweep.
		for i := 0; i < len(threads); {
			t := threads[i]
			in := v.prog.insts[t.pc]

			switch in.op {
			case OpChar:
				if t.sp < len(input) && input[t.sp] == in.c {
					threads[i].pc++
					threads[i].sp++
					i++
				} else {
					threads = append(threads[:i], threads[i+1:]...)
				}

			case OpAny:
				if t.sp < len(input) {
					threads[i].pc++
					threads[i].sp++
					i++
				} else {
					threads = append(threads[:i], threads[i+1:]...)
				}

			case OpMatch:
				// First thread to reach Match, in scan order, wins.
				return true, nil

			case OpJmp:
				// Resolved eagerly: the thread is re-examined at its new
				// pc before the cursor advances.
				threads[i].pc = in.x

			case OpSplit:
				if len(threads) >= v.maxThreads {
					return false, ErrThreadLimit
				}
				threads[i].pc = in.x
				threads = append(threads, thread{pc: in.y, sp: t.sp})
				i++
			}
		}
	}

	return false, nil
}

// Run executes prog against input with the default configuration.
func Run(prog *Program, input []byte) (bool, error) {
	return New(prog).Run(input)
}
