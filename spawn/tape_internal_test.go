package spawn

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("tape", func() {
	It("round-trips through its string form", func() {
		t, err := parseTape("odd")
		Ω(err).ShouldNot(HaveOccurred())
		Ω(t).Should(Equal(tape{Original, Duplicate, Duplicate}))
		Ω(t.String()).Should(Equal("odd"))
	})

	It("parses the empty tape for the first original", func() {
		t, err := parseTape("")
		Ω(err).ShouldNot(HaveOccurred())
		Ω(t).Should(BeEmpty())
	})

	It("rejects unknown entries", func() {
		_, err := parseTape("oxo")
		Ω(err).Should(HaveOccurred())
	})

	Describe("extend", func() {
		It("marks the creating site as the duplicate's", func() {
			Ω(tape{}.extend(0).String()).Should(Equal("d"))
		})

		It("pads live sites the creator passed with originals", func() {
			Ω(tape{}.extend(2).String()).Should(Equal("ood"))
		})

		It("preserves the creator's own inherited tape", func() {
			t, err := parseTape("d")
			Ω(err).ShouldNot(HaveOccurred())
			Ω(t.extend(1).String()).Should(Equal("dd"))
		})
	})
})
