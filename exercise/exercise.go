/*
Package exercise holds the classroom duplication exercises as Runners.
Each exercise spawns one or two duplicates and prints a role marker from
every process in the tree; the terminal ordering of the markers is up to
the scheduler, which is what the exercises exist to show.
*/
package exercise

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Topology names the shape of an exercise's process tree.
type Topology string

const (
	// Single duplicates once: an original and one duplicate.
	Single Topology = "single"

	// Fanout has the original duplicate twice: two sibling duplicates.
	Fanout Topology = "fanout"

	// Chain has the first duplicate duplicate again: a three-deep line.
	Chain Topology = "chain"
)

// FanOut is the number of duplicates the topology produces in total.
func (t Topology) FanOut() int {
	if t == Single {
		return 1
	}
	return 2
}

// DefaultFailMessage is printed when a duplication call fails and the
// exercise does not configure its own text.
const DefaultFailMessage = "duplication failed"

// An Exercise describes one duplication demo: its tree shape and the
// marker each role prints. DuplicateMarks are ordered by creation for
// Fanout and by depth for Chain.
type Exercise struct {
	Name           string   `toml:"name"`
	Topology       Topology `toml:"topology"`
	OriginalMark   string   `toml:"original_mark"`
	DuplicateMarks []string `toml:"duplicate_marks"`
	FailMessage    string   `toml:"fail_message"`
}

// BuiltinSingle is the two-process exercise: A and B.
func BuiltinSingle() Exercise {
	return Exercise{
		Name:           "single",
		Topology:       Single,
		OriginalMark:   "A",
		DuplicateMarks: []string{"B"},
		FailMessage:    DefaultFailMessage,
	}
}

// BuiltinFanout is the three-process sibling exercise: A spawns B and C.
func BuiltinFanout() Exercise {
	return Exercise{
		Name:           "twins",
		Topology:       Fanout,
		OriginalMark:   "A",
		DuplicateMarks: []string{"B", "C"},
		FailMessage:    DefaultFailMessage,
	}
}

// BuiltinChain is the three-process line exercise: A spawns B, B spawns C.
func BuiltinChain() Exercise {
	return Exercise{
		Name:           "chain",
		Topology:       Chain,
		OriginalMark:   "A",
		DuplicateMarks: []string{"B", "C"},
		FailMessage:    DefaultFailMessage,
	}
}

type exerciseFile struct {
	Exercise Exercise `toml:"exercise"`
}

// Load reads a TOML exercise file, applies defaults, validates, and
// returns the exercise along with warnings for unknown keys.
func Load(path string) (Exercise, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Exercise{}, nil, fmt.Errorf("cannot read exercise file: %s: %w", path, err)
	}
	return LoadBytes(data, path)
}

// LoadBytes parses TOML from raw bytes. The path argument is used only
// for error messages.
func LoadBytes(data []byte, path string) (Exercise, []string, error) {
	var file exerciseFile
	md, err := toml.Decode(string(data), &file)
	if err != nil {
		return Exercise{}, nil, fmt.Errorf("exercise parse error in %s: %w", path, err)
	}

	var warnings []string
	for _, key := range md.Undecoded() {
		warnings = append(warnings, fmt.Sprintf("unknown exercise key: %s", strings.Join(key, ".")))
	}

	e := file.Exercise
	applyDefaults(&e)

	if err := Validate(e); err != nil {
		return Exercise{}, warnings, fmt.Errorf("invalid exercise in %s: %w", path, err)
	}

	return e, warnings, nil
}

func applyDefaults(e *Exercise) {
	if e.Topology == "" {
		e.Topology = Single
	}
	if e.FailMessage == "" {
		e.FailMessage = DefaultFailMessage
	}
}

// Validate checks that the exercise's markers match its topology.
func Validate(e Exercise) error {
	switch e.Topology {
	case Single, Fanout, Chain:
	default:
		return fmt.Errorf("unknown topology %q", e.Topology)
	}

	if e.Name == "" {
		return fmt.Errorf("exercise has no name")
	}
	if e.OriginalMark == "" {
		return fmt.Errorf("exercise %q has no original_mark", e.Name)
	}
	if got, want := len(e.DuplicateMarks), e.Topology.FanOut(); got != want {
		return fmt.Errorf("exercise %q: topology %q needs %d duplicate_marks, got %d",
			e.Name, e.Topology, want, got)
	}
	return nil
}
