package exercise

import (
	"os"

	"github.com/mitoslab/mitosis"
	"github.com/mitoslab/mitosis/report"
	"github.com/mitoslab/mitosis/spawn"
)

/*
Runner builds the mitosis.Runner for this exercise. The same Runner runs
in every process of the tree: each invocation walks the exercise's spawn
call sites, and the spawner's per-site classification decides which role
this process plays and which marker it prints.

A failed duplication prints the exercise's failure message and stops the
walk; no further duplication is attempted from that branch, and the
Runner still returns nil. The exercises report failure in their output,
not their exit status.
*/
func (e Exercise) Runner(s spawn.Spawner, rep *report.Reporter) mitosis.Runner {
	switch e.Topology {
	case Fanout:
		return NewFanout(e, s, rep)
	case Chain:
		return NewChain(e, s, rep)
	default:
		return NewSingle(e, s, rep)
	}
}

// NewSingle runs the one-duplication exercise.
func NewSingle(e Exercise, s spawn.Spawner, rep *report.Reporter) mitosis.Runner {
	return newWalker(e, s, rep, singleWalk)
}

// NewFanout runs the exercise where the original duplicates twice.
func NewFanout(e Exercise, s spawn.Spawner, rep *report.Reporter) mitosis.Runner {
	return newWalker(e, s, rep, fanoutWalk)
}

// NewChain runs the exercise where the first duplicate duplicates again.
func NewChain(e Exercise, s spawn.Spawner, rep *report.Reporter) mitosis.Runner {
	return newWalker(e, s, rep, chainWalk)
}

type walker struct {
	exercise Exercise
	spawner  spawn.Spawner
	reporter *report.Reporter
	walk     func(walker)
}

func newWalker(e Exercise, s spawn.Spawner, rep *report.Reporter, walk func(walker)) walker {
	return walker{
		exercise: e,
		spawner:  s,
		reporter: rep,
		walk:     walk,
	}
}

func (w walker) Run(signals <-chan os.Signal, ready chan<- struct{}) error {
	close(ready)
	w.walk(w)
	return nil
}

func singleWalk(w walker) {
	switch result := w.spawner.Spawn(); result.Outcome {
	case spawn.Failed:
		w.reporter.Failure(w.exercise.FailMessage)
	case spawn.Duplicate:
		w.reporter.Role(spawn.Duplicate, w.exercise.DuplicateMarks[0])
	default:
		w.reporter.Role(spawn.Original, w.exercise.OriginalMark)
	}
}

func fanoutWalk(w walker) {
	switch result := w.spawner.Spawn(); result.Outcome {
	case spawn.Failed:
		w.reporter.Failure(w.exercise.FailMessage)
		return
	case spawn.Duplicate:
		w.reporter.Role(spawn.Duplicate, w.exercise.DuplicateMarks[0])
		return
	}

	switch result := w.spawner.Spawn(); result.Outcome {
	case spawn.Failed:
		w.reporter.Failure(w.exercise.FailMessage)
		return
	case spawn.Duplicate:
		w.reporter.Role(spawn.Duplicate, w.exercise.DuplicateMarks[1])
		return
	}

	w.reporter.Role(spawn.Original, w.exercise.OriginalMark)
}

func chainWalk(w walker) {
	switch result := w.spawner.Spawn(); result.Outcome {
	case spawn.Failed:
		w.reporter.Failure(w.exercise.FailMessage)
		return
	case spawn.Original:
		w.reporter.Role(spawn.Original, w.exercise.OriginalMark)
		return
	}

	// This process is the first duplicate; it duplicates once more.
	switch result := w.spawner.Spawn(); result.Outcome {
	case spawn.Failed:
		w.reporter.Failure(w.exercise.FailMessage)
		return
	case spawn.Duplicate:
		w.reporter.Role(spawn.Duplicate, w.exercise.DuplicateMarks[1])
		return
	}

	w.reporter.Role(spawn.Duplicate, w.exercise.DuplicateMarks[0])
}
