/*
Package inspector writes a process's duplication lineage to a file on
demand. Each process in an exercise tree runs its own inspector, so
signaling the tree shows which role every surviving process holds.
*/
package inspector

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
)

const signalBufferSize = 16

type Inspector struct {
	// Path receives the lineage dump.
	Path string

	// Lineage describes this process's position in the tree; see
	// spawn.Reexec.Lineage.
	Lineage func() string

	// Signals trigger a dump; SIGUSR2 by default.
	Signals []os.Signal
}

func New(path string, lineage func() string, signals ...os.Signal) Inspector {
	if len(signals) == 0 {
		signals = []os.Signal{syscall.SIGUSR2}
	}
	return Inspector{
		Path:    path,
		Lineage: lineage,
		Signals: signals,
	}
}

func (i Inspector) Run(signals <-chan os.Signal, ready chan<- struct{}) error {
	osSignals := make(chan os.Signal, signalBufferSize)
	signal.Notify(osSignals, i.Signals...)
	defer signal.Stop(osSignals)

	close(ready)

	for {
		select {
		case sig := <-signals:
			for _, dumpSignal := range i.Signals {
				if sig == dumpSignal {
					i.dumpLogged()
				}
			}
			return nil

		case <-osSignals:
			i.dumpLogged()
		}
	}
}

// Dump writes the lineage file once, outside any signal handling.
func (i Inspector) Dump() error {
	f, err := os.Create(i.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	line := "pid=" + strconv.Itoa(os.Getpid()) + " " + i.Lineage() + "\n"
	_, err = f.WriteString(line)
	return err
}

func (i Inspector) dumpLogged() {
	if err := i.Dump(); err != nil {
		log.Println("inspector failed to write lineage file", i.Path, err)
		return
	}
	log.Println("inspector wrote lineage to", i.Path)
}
