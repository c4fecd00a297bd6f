/*
Package repeat reruns a Runner a fixed number of times. Repeating a
duplication exercise shows its repeatability: every run builds a tree of
the same shape while the scheduler orders the output differently.
*/
package repeat

import (
	"os"

	"github.com/mitoslab/mitosis"
)

// A Repeater runs its inner Runner to completion Times times in a row.
// It becomes ready with the first iteration, stops on the first error,
// and a signal is forwarded to the running iteration and ends the run.
type Repeater struct {
	Runner mitosis.Runner
	Times  int
}

func (r Repeater) Run(signals <-chan os.Signal, ready chan<- struct{}) error {
	times := r.Times
	if times < 1 {
		times = 1
	}

	for i := 0; i < times; i++ {
		process := mitosis.Background(r.Runner)
		waitChan := process.Wait()

		select {
		case <-process.Ready():
			if ready != nil {
				close(ready)
				ready = nil
			}
		case err := <-waitChan:
			if err != nil {
				return err
			}
			continue
		}

		select {
		case sig := <-signals:
			process.Signal(sig)
			return <-waitChan
		case err := <-waitChan:
			if err != nil {
				return err
			}
		}
	}

	return nil
}
