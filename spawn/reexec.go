package spawn

import (
	"os"
	"os/exec"
	"strings"
)

// TapeEnv carries the outcome tape from a process to its duplicates. It
// is wire format between the two, not user configuration.
const TapeEnv = "MITOSIS_TAPE"

/*
Reexec is the portable Spawner. Go programs cannot survive a bare
fork(2), so the duplicate is created by re-executing the current binary
with identical arguments; fork's copied-memory semantics are emulated by
handing the duplicate the outcome tape of the process that created it.
This reproduces fork control flow exactly as long as the program's
branching is a pure function of spawn outcomes, which holds for every
exercise in this repo.

Duplicates inherit stdout and stderr so their role lines interleave at
the terminal. They are never waited on: the exercises observe scheduling,
not lifecycles, so a duplicate that finishes first lingers unreaped until
the original exits.
*/
type Reexec struct {
	// Path and Args name the binary to re-execute; they default to
	// os.Args[0] and os.Args[1:], which re-enters the same program the
	// same way.
	Path string
	Args []string

	// Stdout and Stderr are handed to duplicates; they default to this
	// process's own.
	Stdout *os.File
	Stderr *os.File

	// ExtraEnv entries are appended to each duplicate's environment.
	ExtraEnv []string

	tape tape
	site int
}

// FromEnv builds the Spawner for this process. In the original (no tape
// in the environment) every Spawn is live; in a duplicate the inherited
// tape is replayed first.
func FromEnv() (*Reexec, error) {
	t, err := parseTape(os.Getenv(TapeEnv))
	if err != nil {
		return nil, err
	}
	return &Reexec{tape: t}, nil
}

// InChild reports whether this process is a duplicate, created by an
// earlier Spawn in some original.
func InChild() bool {
	return os.Getenv(TapeEnv) != ""
}

// Lineage describes this process's position in the duplication tree,
// for inspection output.
func (s *Reexec) Lineage() string {
	role := "original"
	if len(s.tape) > 0 {
		role = "duplicate"
	}
	return "role=" + role + " tape=" + s.tape.String()
}

func (s *Reexec) Spawn() Result {
	site := s.site
	s.site++

	// Replay: the duplicate resumes with its creator's memory, so call
	// sites the creator already passed observe the same classification
	// without creating anything.
	if site < len(s.tape) {
		return Result{Outcome: s.tape[site]}
	}

	path := s.Path
	if path == "" {
		path = os.Args[0]
	}
	args := s.Args
	if args == nil {
		args = os.Args[1:]
	}

	cmd := exec.Command(path, args...)
	cmd.Env = append(environWithoutTape(), TapeEnv+"="+s.tape.extend(site).String())
	cmd.Env = append(cmd.Env, s.ExtraEnv...)
	cmd.Stdout = s.stdout()
	cmd.Stderr = s.stderr()

	if err := cmd.Start(); err != nil {
		return Result{Outcome: Failed, Err: err}
	}

	pid := cmd.Process.Pid
	cmd.Process.Release()
	return Result{Outcome: Original, ChildPid: pid}
}

func (s *Reexec) stdout() *os.File {
	if s.Stdout != nil {
		return s.Stdout
	}
	return os.Stdout
}

func (s *Reexec) stderr() *os.File {
	if s.Stderr != nil {
		return s.Stderr
	}
	return os.Stderr
}

func environWithoutTape() []string {
	env := os.Environ()
	kept := env[:0]
	for _, kv := range env {
		if !strings.HasPrefix(kv, TapeEnv+"=") {
			kept = append(kept, kv)
		}
	}
	return kept
}
