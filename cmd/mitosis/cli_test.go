package main_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/onsi/gomega/gexec"

	"github.com/mitoslab/mitosis/demotest"
)

func startDemo(args ...string) *gexec.Session {
	session, err := gexec.Start(exec.Command(binPath, args...), GinkgoWriter, GinkgoWriter)
	Ω(err).ShouldNot(HaveOccurred())
	return session
}

// outputLines reads the session's stdout so far. Duplicates inherit the
// pipe, so their lines keep arriving after the original exits.
func outputLines(session *gexec.Session) func() []string {
	return func() []string {
		trimmed := strings.TrimRight(string(session.Out.Contents()), "\n")
		if trimmed == "" {
			return nil
		}
		return strings.Split(trimmed, "\n")
	}
}

var _ = Describe("mitosis", func() {
	Describe("single", func() {
		It("prints one original marker and one duplicate marker, order free", func() {
			session := startDemo("single")
			Eventually(session, "10s").Should(gexec.Exit(0))
			Eventually(outputLines(session), "10s").Should(ConsistOf("A", "B"))
		})

		It("ignores surplus positional arguments", func() {
			session := startDemo("single", "unexpected", "args")
			Eventually(session, "10s").Should(gexec.Exit(0))
			Eventually(outputLines(session), "10s").Should(ConsistOf("A", "B"))
		})
	})

	Describe("twins", func() {
		It("prints one original marker and two sibling duplicate markers", func() {
			session := startDemo("twins")
			Eventually(session, "10s").Should(gexec.Exit(0))
			Eventually(outputLines(session), "10s").Should(ConsistOf("A", "B", "C"))
		})
	})

	Describe("chain", func() {
		It("prints markers for the original, the duplicate, and the grandduplicate", func() {
			session := startDemo("chain")
			Eventually(session, "10s").Should(gexec.Exit(0))
			Eventually(outputLines(session), "10s").Should(ConsistOf("A", "B", "C"))
		})
	})

	Describe("failure injection", func() {
		It("prints exactly the failure message and still exits 0", func() {
			session := startDemo("twins", "--fail")
			Eventually(session, "10s").Should(gexec.Exit(0))
			Eventually(outputLines(session)).Should(ConsistOf("duplication failed"))
			Consistently(outputLines(session), "500ms").Should(HaveLen(1))
		})

		It("is observable through a demotest start check", func() {
			runner := &demotest.Runner{
				Name:       "mitosis",
				BinPath:    binPath,
				Args:       []string{"single", "--fail"},
				StartCheck: "duplication failed",
			}
			process := demotest.Invoke(runner)
			Eventually(process.Wait(), "10s").Should(Receive(BeNil()))
		})
	})

	Describe("run", func() {
		It("runs the shipped E04 exercise file with its own markers", func() {
			session := startDemo("run", filepath.Join("..", "..", "examples", "e04.toml"))
			Eventually(session, "10s").Should(gexec.Exit(0))
			Eventually(outputLines(session), "10s").Should(ConsistOf("B,C", "A"))
		})

		It("warns about unknown keys on stderr", func() {
			path := filepath.Join(GinkgoT().TempDir(), "odd.toml")
			Ω(os.WriteFile(path, []byte(`
[exercise]
name = "odd"
original_mark = "A"
duplicate_marks = ["B"]
colour = "mauve"
`), 0644)).Should(Succeed())

			session := startDemo("run", path)
			Eventually(session, "10s").Should(gexec.Exit(0))
			Ω(session.Err).Should(gbytes.Say("warning: unknown exercise key: exercise.colour"))
		})

		It("refuses an invalid exercise file", func() {
			path := filepath.Join(GinkgoT().TempDir(), "broken.toml")
			Ω(os.WriteFile(path, []byte(`
[exercise]
name = "broken"
topology = "fanout"
original_mark = "A"
duplicate_marks = ["B"]
`), 0644)).Should(Succeed())

			session := startDemo("run", path)
			Eventually(session, "10s").Should(gexec.Exit(1))
			Ω(session.Err).Should(gbytes.Say("needs 2 duplicate_marks"))
		})
	})

	Describe("--runs", func() {
		It("interleaves two independent trees of the same shape", func() {
			session := startDemo("twins", "--runs", "2")
			Eventually(session, "15s").Should(gexec.Exit(0))
			Eventually(outputLines(session), "15s").Should(ConsistOf("A", "A", "B", "B", "C", "C"))
		})
	})

	Describe("--repeat", func() {
		It("reruns the tree with the same structural shape", func() {
			session := startDemo("single", "--repeat", "2")
			Eventually(session, "15s").Should(gexec.Exit(0))
			Eventually(outputLines(session), "15s").Should(ConsistOf("A", "A", "B", "B"))
		})
	})

	Describe("--annotate", func() {
		It("stamps every line with a pid and one shared run id", func() {
			session := startDemo("single", "--annotate")
			Eventually(session, "10s").Should(gexec.Exit(0))
			Eventually(outputLines(session), "10s").Should(HaveLen(2))

			lines := outputLines(session)()
			runIDs := map[string]struct{}{}
			for _, line := range lines {
				Ω(line).Should(MatchRegexp(`^[AB], pid=\d+ run=\S+$`))
				runIDs[line[strings.Index(line, "run="):]] = struct{}{}
			}
			Ω(runIDs).Should(HaveLen(1))
		})
	})

	Describe("--inspect", func() {
		It("leaves a lineage file behind for every process in the tree", func() {
			prefix := filepath.Join(GinkgoT().TempDir(), "lineage")
			session := startDemo("single", "--inspect", prefix)
			Eventually(session, "10s").Should(gexec.Exit(0))

			Eventually(func() int {
				matches, _ := filepath.Glob(prefix + ".*")
				return len(matches)
			}, "10s").Should(Equal(2))

			matches, err := filepath.Glob(prefix + ".*")
			Ω(err).ShouldNot(HaveOccurred())

			var contents []string
			for _, match := range matches {
				data, err := os.ReadFile(match)
				Ω(err).ShouldNot(HaveOccurred())
				contents = append(contents, string(data))
			}
			Ω(contents).Should(ContainElement(MatchRegexp(`role=original tape=\n`)))
			Ω(contents).Should(ContainElement(MatchRegexp(`role=duplicate tape=d\n`)))
		})
	})

	Describe("version", func() {
		It("prints the version", func() {
			session := startDemo("version")
			Eventually(session, "10s").Should(gexec.Exit(0))
			Ω(session.Out).Should(gbytes.Say(`mitosis \S+`))
		})
	})
})
