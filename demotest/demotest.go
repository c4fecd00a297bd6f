// Package demotest runs a compiled demo binary as a Runner inside a
// ginkgo suite, streaming its output to the GinkgoWriter.
package demotest

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/onsi/gomega/gexec"

	"github.com/mitoslab/mitosis"
)

type Runner struct {
	Name              string
	BinPath           string
	Args              []string
	Env               []string
	AnsiColorCode     string
	StartCheck        string
	StartCheckTimeout time.Duration

	session *gexec.Session
}

// Session exposes the underlying gexec session for output assertions.
// It is nil until the runner has started.
func (r *Runner) Session() *gexec.Session {
	return r.session
}

func (r *Runner) Run(signals <-chan os.Signal, ready chan<- struct{}) error {
	cmd := exec.Command(r.BinPath, r.Args...)
	if r.Env != nil {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	session, err := gexec.Start(
		cmd,
		gexec.NewPrefixedWriter(fmt.Sprintf("\x1b[32m[o]\x1b[%s[%s]\x1b[0m ", r.AnsiColorCode, r.Name), ginkgo.GinkgoWriter),
		gexec.NewPrefixedWriter(fmt.Sprintf("\x1b[91m[e]\x1b[%s[%s]\x1b[0m ", r.AnsiColorCode, r.Name), ginkgo.GinkgoWriter),
	)

	Ω(err).ShouldNot(HaveOccurred())
	r.session = session

	if r.StartCheck != "" {
		timeout := r.StartCheckTimeout
		if timeout == 0 {
			timeout = time.Second
		}

		Eventually(session, timeout).Should(gbytes.Say(r.StartCheck))
	}

	close(ready)

	for {
		select {
		case signal := <-signals:
			session.Signal(signal)

		case <-session.Exited:
			if session.ExitCode() == 0 {
				return nil
			}
			return fmt.Errorf("exit status %d", session.ExitCode())
		}
	}
}

// Invoke backgrounds the runner and fails the spec if it exits before
// becoming ready.
func Invoke(runner mitosis.Runner) mitosis.Process {
	process := mitosis.Background(runner)

	select {
	case <-process.Ready():
	case err := <-process.Wait():
		ginkgo.Fail(fmt.Sprintf("process failed to start: %s", err))
	}

	return process
}

// Interrupt signals the process and waits for it to exit.
func Interrupt(process mitosis.Process, intervals ...interface{}) {
	process.Signal(os.Interrupt)
	Eventually(process.Wait(), intervals...).Should(Receive())
}

// Kill signals the process to die immediately and waits for it.
func Kill(process mitosis.Process, intervals ...interface{}) {
	process.Signal(os.Kill)
	Eventually(process.Wait(), intervals...).Should(Receive())
}
