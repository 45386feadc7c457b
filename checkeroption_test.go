package dscheck_test

import (
	. "github.com/Sudha247/dscheck"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("func WithProgressInterval()", func() {
	It("panics if the interval is negative", func() {
		Expect(func() {
			WithProgressInterval(-1)
		}).To(PanicWith("interval must not be negative"))
	})
})

var _ = Describe("func WithStressIterations()", func() {
	It("panics if the iteration count is negative", func() {
		Expect(func() {
			WithStressIterations(-1)
		}).To(PanicWith("iteration count must not be negative"))
	})
})
