// Package fake_spawn provides scripted Spawners for tests and for the
// demo CLI's failure injection.
package fake_spawn

import (
	"errors"
	"sync"

	"github.com/mitoslab/mitosis/spawn"
)

// ErrScriptExhausted is returned when a Script runs out of results.
var ErrScriptExhausted = errors.New("spawn script exhausted")

// A Script returns its results in order, then fails.
type Script struct {
	mu      sync.Mutex
	results []spawn.Result
	calls   int
}

func NewScript(results ...spawn.Result) *Script {
	return &Script{results: results}
}

func (s *Script) Spawn() spawn.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if len(s.results) == 0 {
		return spawn.Result{Outcome: spawn.Failed, Err: ErrScriptExhausted}
	}

	result := s.results[0]
	s.results = s.results[1:]
	return result
}

func (s *Script) SpawnCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Failing returns a Spawner whose every call reports the given failure,
// or ErrDuplicationFailed when err is nil. It stands in for the
// resource-exhaustion case without the exhaustion.
func Failing(err error) spawn.Spawner {
	if err == nil {
		err = spawn.ErrDuplicationFailed
	}
	return failing{err: err}
}

type failing struct {
	err error
}

func (f failing) Spawn() spawn.Result {
	return spawn.Result{Outcome: spawn.Failed, Err: f.err}
}
