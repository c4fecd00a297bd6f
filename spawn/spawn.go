/*
Package spawn holds the duplication primitive the exercises are built
on: a call that splits the current program into two independently
scheduled processes, and the trinary classification of its result.
*/
package spawn

import "errors"

// Outcome is the three-way classification of a duplication call.
type Outcome int

const (
	// Failed means no duplicate was created.
	Failed Outcome = iota

	// Original means the call succeeded and this execution context is
	// the one that made it.
	Original

	// Duplicate means this execution context is the newly created copy.
	Duplicate
)

func (o Outcome) String() string {
	switch o {
	case Original:
		return "original"
	case Duplicate:
		return "duplicate"
	default:
		return "failed"
	}
}

// Result classifies one duplication call. Exactly one outcome holds per
// call. ChildPid is set only on a live Original result; a replayed
// Original (see Reexec) does not carry the pid across the exec boundary.
type Result struct {
	Outcome  Outcome
	ChildPid int
	Err      error
}

// A Spawner issues duplication calls. A successful call returns in two
// processes: the original observes Original, the copy observes
// Duplicate. Call sites classify independently; chaining calls builds
// deeper trees.
type Spawner interface {
	Spawn() Result
}

// ErrDuplicationFailed is the generic failure when the platform reports
// a negative handle without a more specific error.
var ErrDuplicationFailed = errors.New("duplication failed")

// ErrRawUnsupported is returned by NewRaw on platforms without fork(2).
var ErrRawUnsupported = errors.New("raw duplication is not supported on this platform")

// Classify maps a raw duplication handle to its Result: an error or
// negative handle is Failed, zero means this process is the duplicate,
// positive means this process is the original and the handle is the
// duplicate's pid.
func Classify(pid int, err error) Result {
	switch {
	case err != nil:
		return Result{Outcome: Failed, Err: err}
	case pid < 0:
		return Result{Outcome: Failed, Err: ErrDuplicationFailed}
	case pid == 0:
		return Result{Outcome: Duplicate}
	default:
		return Result{Outcome: Original, ChildPid: pid}
	}
}
