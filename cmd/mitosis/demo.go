package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/mitoslab/mitosis"
	"github.com/mitoslab/mitosis/exercise"
	"github.com/mitoslab/mitosis/fake_spawn"
	"github.com/mitoslab/mitosis/inspector"
	"github.com/mitoslab/mitosis/repeat"
	"github.com/mitoslab/mitosis/report"
	"github.com/mitoslab/mitosis/spawn"
	"github.com/mitoslab/mitosis/squad"
)

// runIDEnv carries a tree's run id across the re-exec boundary so all of
// one tree's annotated lines share it.
const runIDEnv = "MITOSIS_RUN_ID"

var opts struct {
	fail     bool
	raw      bool
	colorize bool
	annotate bool
	runs     int
	repeats  int
	inspect  string
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&opts.fail, "fail", false, "inject a failing duplication call")
	flags.BoolVar(&opts.raw, "raw", false, "duplicate with the real fork(2) call (linux only)")
	flags.BoolVar(&opts.colorize, "color", false, "color role lines by outcome")
	flags.BoolVar(&opts.annotate, "annotate", false, "append pid and run id to role lines")
	flags.IntVar(&opts.runs, "runs", 1, "independent trees to run concurrently")
	flags.IntVar(&opts.repeats, "repeat", 1, "times to rerun the tree sequentially")
	flags.StringVar(&opts.inspect, "inspect", "", "write this process's lineage to FILE.<pid> after it prints")
}

func runDemo(e exercise.Exercise) error {
	if opts.raw && (opts.runs > 1 || opts.repeats > 1) {
		return errors.New("--raw cannot be combined with --runs or --repeat")
	}
	if opts.raw && opts.fail {
		return errors.New("--raw cannot be combined with --fail")
	}

	// A duplicate replays exactly one tree; multiplicity belongs to the
	// first original.
	if spawn.InChild() {
		tree, err := newTree(e)
		if err != nil {
			return err
		}
		if err := waitFor(mitosis.Invoke(tree)); err != nil {
			return err
		}
		return dumpLineage()
	}

	build := func() (mitosis.Runner, error) {
		if opts.runs <= 1 {
			return newTree(e)
		}

		members := make(squad.Members, opts.runs)
		for i := range members {
			tree, err := newTree(e)
			if err != nil {
				return nil, err
			}
			members[i] = squad.Member{
				Name:   fmt.Sprintf("%s-%d", e.Name, i+1),
				Runner: tree,
			}
		}
		return squad.NewParallel(os.Interrupt, members), nil
	}

	var runner mitosis.Runner
	if opts.repeats > 1 {
		// Each iteration builds a fresh tree so its spawner starts at
		// the first call site again.
		runner = repeat.Repeater{
			Runner: mitosis.RunFunc(func(signals <-chan os.Signal, ready chan<- struct{}) error {
				r, err := build()
				if err != nil {
					return err
				}
				return r.Run(signals, ready)
			}),
			Times: opts.repeats,
		}
	} else {
		r, err := build()
		if err != nil {
			return err
		}
		runner = r
	}

	if err := waitFor(mitosis.Invoke(runner)); err != nil {
		return err
	}
	return dumpLineage()
}

// newTree builds one exercise tree: a fresh spawner, a reporter, and the
// runner that walks the tree's spawn call sites in this process.
func newTree(e exercise.Exercise) (mitosis.Runner, error) {
	reporter := &report.Reporter{
		Colorize: opts.colorize,
		Annotate: opts.annotate,
	}

	if opts.annotate {
		id := os.Getenv(runIDEnv)
		if id == "" {
			var err error
			id, err = report.NewRunID()
			if err != nil {
				return nil, err
			}
		}
		reporter.RunID = id
	}

	var spawner spawn.Spawner
	switch {
	case opts.fail:
		spawner = fake_spawn.Failing(nil)

	case opts.raw:
		raw, err := spawn.NewRaw()
		if err != nil {
			return nil, err
		}
		spawner = raw

	default:
		reexec, err := spawn.FromEnv()
		if err != nil {
			return nil, err
		}
		if reporter.RunID != "" {
			reexec.ExtraEnv = []string{runIDEnv + "=" + reporter.RunID}
		}
		spawner = reexec
	}

	return e.Runner(spawner, reporter), nil
}

func waitFor(process mitosis.Process) error {
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	for {
		select {
		case sig := <-interrupts:
			process.Signal(sig)
		case err := <-process.Wait():
			return err
		}
	}
}

func dumpLineage() error {
	if opts.inspect == "" {
		return nil
	}

	spawner, err := spawn.FromEnv()
	if err != nil {
		return err
	}

	path := fmt.Sprintf("%s.%d", opts.inspect, os.Getpid())
	return inspector.New(path, spawner.Lineage).Dump()
}
