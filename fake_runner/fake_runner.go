// Package fake_runner provides a hand-driven Runner for tests.
package fake_runner

import (
	"os"
	"sync"
	"time"
)

type TestRunner struct {
	readyChan chan struct{}
	exitChan  chan error

	mu       sync.Mutex
	runCalls int
	exited   bool
}

func NewTestRunner() *TestRunner {
	return &TestRunner{
		readyChan: make(chan struct{}),
		exitChan:  make(chan error),
	}
}

func (r *TestRunner) Run(signals <-chan os.Signal, ready chan<- struct{}) error {
	r.mu.Lock()
	r.runCalls++
	r.mu.Unlock()

	for {
		select {
		case <-r.readyChan:
			if ready != nil {
				close(ready)
				ready = nil
			}
		case err := <-r.exitChan:
			r.mu.Lock()
			r.exited = true
			r.mu.Unlock()
			return err
		}
	}
}

func (r *TestRunner) RunCallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runCalls
}

func (r *TestRunner) TriggerReady() {
	r.readyChan <- struct{}{}
}

func (r *TestRunner) TriggerExit(err error) {
	r.exitChan <- err
}

// EnsureExit unblocks the runner if a test failed before triggering its
// exit, so AfterEach teardown cannot deadlock.
func (r *TestRunner) EnsureExit() {
	r.mu.Lock()
	exited := r.exited
	r.mu.Unlock()
	if exited {
		return
	}

	select {
	case r.exitChan <- nil:
	case <-time.After(time.Second):
	}
}
