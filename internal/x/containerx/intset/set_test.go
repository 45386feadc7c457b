package intset_test

import (
	. "github.com/Sudha247/dscheck/internal/x/containerx/intset"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("type Set", func() {
	var set *Set

	BeforeEach(func() {
		set = &Set{}
	})

	Describe("func Add()", func() {
		It("adds a member to the set", func() {
			set.Add(3)

			Expect(set.Has(3)).To(BeTrue())
			Expect(set.Len()).To(Equal(1))
		})

		It("returns false if the member is already present", func() {
			Expect(set.Add(3)).To(BeTrue())
			Expect(set.Add(3)).To(BeFalse())
			Expect(set.Len()).To(Equal(1))
		})

		It("keeps the members ordered", func() {
			set.Add(5)
			set.Add(1)
			set.Add(3)

			Expect(set.Members()).To(Equal([]int{1, 3, 5}))
		})
	})

	Describe("func Has()", func() {
		It("returns false for a non-member", func() {
			set.Add(1)
			Expect(set.Has(2)).To(BeFalse())
		})
	})

	Describe("func Union()", func() {
		It("adds every member of the other set", func() {
			set.Add(1)
			set.Union(New(0, 2))

			Expect(set.Members()).To(Equal([]int{0, 1, 2}))
		})
	})

	Describe("func Min()", func() {
		It("returns the smallest member", func() {
			set.Add(2)
			set.Add(0)

			min, ok := set.Min()
			Expect(ok).To(BeTrue())
			Expect(min).To(Equal(0))
		})

		It("returns false if the set is empty", func() {
			_, ok := set.Min()
			Expect(ok).To(BeFalse())
		})
	})

	Describe("func MinNotIn()", func() {
		It("returns the smallest member absent from the other set", func() {
			set.Add(0)
			set.Add(1)
			set.Add(2)

			min, ok := set.MinNotIn(New(0, 1))
			Expect(ok).To(BeTrue())
			Expect(min).To(Equal(2))
		})

		It("returns false if the other set covers every member", func() {
			set.Add(0)
			set.Add(1)

			_, ok := set.MinNotIn(New(0, 1, 2))
			Expect(ok).To(BeFalse())
		})
	})

})
