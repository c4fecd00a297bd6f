package mitosis

import "os"

/*
A Runner is a single unit of work: one role in a duplication exercise,
one orchestration layer, one helper. Runners are composed into larger
Runners and invoked to create Processes.
*/
type Runner interface {
	Run(signals <-chan os.Signal, ready chan<- struct{}) error
}

type RunFunc func(signals <-chan os.Signal, ready chan<- struct{}) error

func (r RunFunc) Run(signals <-chan os.Signal, ready chan<- struct{}) error {
	return r(signals, ready)
}

/*
A Process represents a Runner that has been started. It is safe to call
any method on a Process even after the Process has exited.
*/
type Process interface {
	// Ready returns a channel which will close once the runner is active.
	Ready() <-chan struct{}

	// Wait returns a channel that will emit a single error once the
	// Process exits.
	Wait() <-chan error

	// Signal sends a shutdown signal to the Process. It does not block.
	Signal(os.Signal)
}

/*
Invoke executes a Runner and returns a Process once the Runner is ready.
Waiting for ready allows program initialization to be scripted in a
procedural manner.
*/
func Invoke(r Runner) Process {
	p := Background(r)

	select {
	case <-p.Ready():
	case <-p.Wait():
	}

	return p
}

/*
Background executes a Runner and returns a Process immediately, without
waiting for it to be ready.
*/
func Background(r Runner) Process {
	p := newProcess(r)
	go p.run()
	return p
}

type process struct {
	runner     Runner
	signals    chan os.Signal
	readyChan  chan struct{}
	exited     chan struct{}
	exitStatus error
}

func newProcess(runner Runner) *process {
	return &process{
		runner:    runner,
		signals:   make(chan os.Signal),
		readyChan: make(chan struct{}),
		exited:    make(chan struct{}),
	}
}

func (p *process) run() {
	p.exitStatus = p.runner.Run(p.signals, p.readyChan)
	close(p.exited)
}

func (p *process) Ready() <-chan struct{} {
	return p.readyChan
}

func (p *process) Wait() <-chan error {
	exitChan := make(chan error, 1)

	go func() {
		<-p.exited
		exitChan <- p.exitStatus
	}()

	return exitChan
}

func (p *process) Signal(signal os.Signal) {
	go func() {
		select {
		case p.signals <- signal:
		case <-p.exited:
		}
	}()
}
