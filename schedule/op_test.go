package schedule_test

import (
	. "github.com/Sudha247/dscheck/schedule"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("type Op", func() {
	Describe("func String()", func() {
		It("renders each operation in its wire form", func() {
			Expect(Start.String()).To(Equal("start"))
			Expect(Make.String()).To(Equal("make"))
			Expect(Get.String()).To(Equal("get"))
			Expect(Set.String()).To(Equal("set"))
			Expect(Exchange.String()).To(Equal("exchange"))
			Expect(CompareAndSwap.String()).To(Equal("compare_and_swap"))
			Expect(FetchAndAdd.String()).To(Equal("fetch_and_add"))
		})

		It("renders a placeholder for an unrecognized operation", func() {
			Expect(Op(99).String()).To(Equal("<unknown op 99>"))
		})
	})
})
