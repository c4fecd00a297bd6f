/*
Package report emits the exercise output: one plain line per process,
naming the role marker that process drew. The lines are the product of
the demos, so they go through an io.Writer rather than a logger.
*/
package report

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	uuid "github.com/nu7hatch/gouuid"

	"github.com/mitoslab/mitosis/spawn"
)

var (
	originalColor  = color.New(color.FgHiGreen)
	duplicateColor = color.New(color.FgCyan)
	failureColor   = color.New(color.FgHiRed)
)

type Reporter struct {
	// Out defaults to os.Stdout, which duplicates inherit so their
	// lines interleave with the original's.
	Out io.Writer

	// Colorize styles each line by outcome. Off by default; the bare
	// marker is the exercise's canonical output.
	Colorize bool

	// Annotate appends ", pid=<pid> run=<id>" to role lines, which
	// tells interleaved trees apart when several run at once.
	Annotate bool

	// RunID groups one invocation's lines; see NewRunID.
	RunID string

	mu sync.Mutex
}

// NewRunID returns a fresh identifier for one invocation's process tree.
func NewRunID() (string, error) {
	u, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("cannot generate run id: %w", err)
	}
	return u.String(), nil
}

// Role prints the marker this process drew.
func (r *Reporter) Role(outcome spawn.Outcome, mark string) {
	text := mark
	if r.Annotate {
		text = fmt.Sprintf("%s, pid=%d", mark, os.Getpid())
		if r.RunID != "" {
			text = fmt.Sprintf("%s run=%s", text, r.RunID)
		}
	}
	r.print(colorFor(outcome), text)
}

// Failure prints the exercise's failure message, exactly and alone.
func (r *Reporter) Failure(message string) {
	r.print(failureColor, message)
}

func colorFor(outcome spawn.Outcome) *color.Color {
	switch outcome {
	case spawn.Original:
		return originalColor
	case spawn.Duplicate:
		return duplicateColor
	default:
		return failureColor
	}
}

func (r *Reporter) print(c *color.Color, text string) {
	out := r.Out
	if out == nil {
		out = os.Stdout
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Colorize {
		c.EnableColor()
		c.Fprintln(out, text)
		return
	}
	fmt.Fprintln(out, text)
}
