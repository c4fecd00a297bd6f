/*
Package squad runs several Runners as one: each member is typically a
whole duplication exercise, so a single invocation can put N independent
process trees on the terminal at once and let their output interleave.
*/
package squad

import (
	"fmt"
	"os"

	"github.com/mitoslab/mitosis"
)

type Member struct {
	Name string
	mitosis.Runner
}

type Members []Member

// ExitEvent records one member's exit.
type ExitEvent struct {
	Member Member
	Err    error
}

/*
NewParallel starts all members simultaneously and waits for all of them
to exit. Signals sent to the squad are propagated to every member; if a
member exits before the squad is signaled, the termination signal is
propagated to the rest (a nil termination signal is not propagated).
The squad's error is an ErrorTrace when any member exited with one.
*/
func NewParallel(signal os.Signal, members Members) mitosis.Runner {
	return parallel{signal: signal, members: members}
}

type parallel struct {
	signal  os.Signal
	members Members
}

func (g parallel) Run(signals <-chan os.Signal, ready chan<- struct{}) error {
	processes := make([]mitosis.Process, len(g.members))
	exits := make(chan ExitEvent, len(g.members))

	for i, member := range g.members {
		process := mitosis.Background(member)
		processes[i] = process
		go waitForExit(member, process, exits)
	}

	close(ready)

	trace := make(ErrorTrace, 0, len(g.members))
	signaled := false
	for remaining := len(g.members); remaining > 0; {
		select {
		case sig := <-signals:
			signalAll(processes, sig)
			signaled = true

		case exit := <-exits:
			remaining--
			trace = append(trace, exit)

			if !signaled && g.signal != nil && remaining > 0 {
				signalAll(processes, g.signal)
				signaled = true
			}
		}
	}

	return trace.ToError()
}

func waitForExit(member Member, process mitosis.Process, exits chan<- ExitEvent) {
	waitChan := process.Wait()

	select {
	case <-process.Ready():
		exits <- ExitEvent{Member: member, Err: <-waitChan}
	case err := <-waitChan:
		exits <- ExitEvent{Member: member, Err: err}
	}
}

func signalAll(processes []mitosis.Process, signal os.Signal) {
	for _, p := range processes {
		p.Signal(signal)
	}
}

// An ErrorTrace aggregates the squad's exits; it is an error only when
// at least one member exited with one.
type ErrorTrace []ExitEvent

func (trace ErrorTrace) ToError() error {
	for _, exit := range trace {
		if exit.Err != nil {
			return trace
		}
	}
	return nil
}

func (trace ErrorTrace) Error() string {
	msg := "exit trace for squad:\n"

	for _, exit := range trace {
		if exit.Err == nil {
			msg += fmt.Sprintf("%s exited with nil\n", exit.Member.Name)
		} else {
			msg += fmt.Sprintf("%s exited with error: %s\n", exit.Member.Name, exit.Err.Error())
		}
	}

	return msg
}
