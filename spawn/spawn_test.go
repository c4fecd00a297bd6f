package spawn_test

import (
	"errors"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mitoslab/mitosis/spawn"
)

var _ = Describe("Classify", func() {
	It("classifies a positive handle as the original", func() {
		result := spawn.Classify(42, nil)
		Ω(result.Outcome).Should(Equal(spawn.Original))
		Ω(result.ChildPid).Should(Equal(42))
		Ω(result.Err).Should(BeNil())
	})

	It("classifies a zero handle as the duplicate", func() {
		result := spawn.Classify(0, nil)
		Ω(result.Outcome).Should(Equal(spawn.Duplicate))
		Ω(result.ChildPid).Should(BeZero())
	})

	It("classifies a negative handle as a failure", func() {
		result := spawn.Classify(-1, nil)
		Ω(result.Outcome).Should(Equal(spawn.Failed))
		Ω(result.Err).Should(Equal(spawn.ErrDuplicationFailed))
	})

	It("classifies an error as a failure regardless of the handle", func() {
		boom := errors.New("boom")
		result := spawn.Classify(42, boom)
		Ω(result.Outcome).Should(Equal(spawn.Failed))
		Ω(result.Err).Should(Equal(boom))
	})
})

var _ = Describe("Reexec", func() {
	AfterEach(func() {
		os.Unsetenv(spawn.TapeEnv)
	})

	Describe("FromEnv", func() {
		Context("without a tape in the environment", func() {
			BeforeEach(func() {
				os.Unsetenv(spawn.TapeEnv)
			})

			It("builds an original's spawner", func() {
				_, err := spawn.FromEnv()
				Ω(err).ShouldNot(HaveOccurred())
				Ω(spawn.InChild()).Should(BeFalse())
			})
		})

		Context("with a tape in the environment", func() {
			BeforeEach(func() {
				os.Setenv(spawn.TapeEnv, "od")
			})

			It("recognizes the process as a duplicate", func() {
				Ω(spawn.InChild()).Should(BeTrue())
			})

			It("rejects malformed tapes", func() {
				os.Setenv(spawn.TapeEnv, "ox")
				_, err := spawn.FromEnv()
				Ω(err).Should(HaveOccurred())
			})
		})
	})

	Describe("Spawn", func() {
		Context("in a duplicate created at the second call site", func() {
			var spawner *spawn.Reexec

			BeforeEach(func() {
				os.Setenv(spawn.TapeEnv, "od")
				var err error
				spawner, err = spawn.FromEnv()
				Ω(err).ShouldNot(HaveOccurred())
			})

			It("replays the creator's outcomes without spawning", func() {
				first := spawner.Spawn()
				Ω(first.Outcome).Should(Equal(spawn.Original))
				Ω(first.ChildPid).Should(BeZero())

				second := spawner.Spawn()
				Ω(second.Outcome).Should(Equal(spawn.Duplicate))
			})

			It("describes its lineage", func() {
				Ω(spawner.Lineage()).Should(Equal("role=duplicate tape=od"))
			})
		})

		Context("past the end of the tape", func() {
			It("spawns a real duplicate and reports its pid", func() {
				spawner := &spawn.Reexec{
					Path: "/bin/sh",
					Args: []string{"-c", "exit 0"},
				}
				result := spawner.Spawn()
				Ω(result.Outcome).Should(Equal(spawn.Original))
				Ω(result.ChildPid).Should(BeNumerically(">", 0))
			})

			It("reports a failure when the binary cannot be started", func() {
				spawner := &spawn.Reexec{Path: "/nonexistent/mitosis-binary"}
				result := spawner.Spawn()
				Ω(result.Outcome).Should(Equal(spawn.Failed))
				Ω(result.Err).Should(HaveOccurred())
			})

			It("classifies each call site independently", func() {
				spawner := &spawn.Reexec{Path: "/nonexistent/mitosis-binary"}
				Ω(spawner.Spawn().Outcome).Should(Equal(spawn.Failed))
				Ω(spawner.Spawn().Outcome).Should(Equal(spawn.Failed))
			})
		})
	})
})
