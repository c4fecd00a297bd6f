package spawn

import "fmt"

// A tape records the outcomes a process observed at each of its spawn
// call sites, in call order. It is how Reexec emulates fork's
// copied-memory semantics: a duplicate inherits its creator's tape,
// replays it entry by entry, and only spawns for real once past it. The
// final entry of an inherited tape is always Duplicate, marking the
// call site that created this process.
type tape []Outcome

const (
	tapeOriginal  = 'o'
	tapeDuplicate = 'd'
)

func parseTape(s string) (tape, error) {
	t := make(tape, 0, len(s))
	for _, c := range s {
		switch c {
		case tapeOriginal:
			t = append(t, Original)
		case tapeDuplicate:
			t = append(t, Duplicate)
		default:
			return nil, fmt.Errorf("malformed outcome tape %q: unknown entry %q", s, c)
		}
	}
	return t, nil
}

func (t tape) String() string {
	b := make([]byte, len(t))
	for i, o := range t {
		if o == Duplicate {
			b[i] = tapeDuplicate
		} else {
			b[i] = tapeOriginal
		}
	}
	return string(b)
}

// extend builds the tape a duplicate created at the given call site
// inherits: the creator's own tape, padded with Original for the live
// sites it passed since, ending with Duplicate at the creating site.
func (t tape) extend(site int) tape {
	child := make(tape, site+1)
	copy(child, t)
	for i := len(t); i < site; i++ {
		child[i] = Original
	}
	child[site] = Duplicate
	return child
}
