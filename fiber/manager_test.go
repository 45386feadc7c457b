package fiber_test

import (
	. "github.com/Sudha247/dscheck/fiber"
	"github.com/Sudha247/dscheck/schedule"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("type Manager", func() {
	var manager *Manager

	BeforeEach(func() {
		manager = New()
	})

	Describe("func Spawn()", func() {
		It("assigns process IDs in insertion order", func() {
			a := manager.Spawn(func() {})
			b := manager.Spawn(func() {})

			Expect(a.ID()).To(Equal(0))
			Expect(b.ID()).To(Equal(1))
			Expect(manager.Len()).To(Equal(2))
		})

		It("leaves the process pending on the start operation", func() {
			p := manager.Spawn(func() {})

			op, obj := p.Pending()
			Expect(op).To(Equal(schedule.Start))
			Expect(obj).To(Equal(schedule.NoObj))
			Expect(p.Finished()).To(BeFalse())
		})

		It("does not run the entry function until the process is resumed", func() {
			ran := false
			manager.Spawn(func() {
				ran = true
			})

			Expect(ran).To(BeFalse())
		})
	})

	Describe("func Resume()", func() {
		It("runs the fiber to completion if it performs no atomic operation", func() {
			ran := false
			p := manager.Spawn(func() {
				ran = true
			})

			ev := manager.Resume(0)

			Expect(ev.Kind).To(Equal(EventReturned))
			Expect(ran).To(BeTrue())
			Expect(p.Finished()).To(BeTrue())
			Expect(manager.FinishedCount()).To(Equal(1))
			Expect(manager.AllFinished()).To(BeTrue())
		})

		It("runs the fiber up to its next atomic operation", func() {
			reached := false
			p := manager.Spawn(func() {
				manager.Suspend(schedule.Get, 3)
				reached = true
			})

			ev := manager.Resume(0)

			Expect(ev.Kind).To(Equal(EventSuspended))
			Expect(ev.Op).To(Equal(schedule.Get))
			Expect(ev.Obj).To(Equal(3))
			Expect(reached).To(BeFalse())

			op, obj := p.Pending()
			Expect(op).To(Equal(schedule.Get))
			Expect(obj).To(Equal(3))

			ev = manager.Resume(0)

			Expect(ev.Kind).To(Equal(EventReturned))
			Expect(reached).To(BeTrue())
		})

		It("assigns object-ids to pending make operations in resumption order", func() {
			var first, second int
			manager.Spawn(func() {
				first = manager.Suspend(schedule.Make, schedule.NoObj).Obj
				second = manager.Suspend(schedule.Make, schedule.NoObj).Obj
			})

			ev := manager.Resume(0)
			Expect(ev.Op).To(Equal(schedule.Make))

			op, obj := manager.Process(0).Pending()
			Expect(op).To(Equal(schedule.Make))
			Expect(obj).To(Equal(schedule.NoObj))

			manager.Resume(0)
			manager.Resume(0)

			Expect(first).To(Equal(1))
			Expect(second).To(Equal(2))
		})

		It("reports a panic in the fiber's entry function", func() {
			p := manager.Spawn(func() {
				panic("boom")
			})

			ev := manager.Resume(0)

			Expect(ev.Kind).To(Equal(EventPanicked))
			Expect(ev.Panic).To(Equal("boom"))
			Expect(p.Finished()).To(BeTrue())
		})

		It("panics if the process has already finished", func() {
			manager.Spawn(func() {})
			manager.Resume(0)

			Expect(func() {
				manager.Resume(0)
			}).To(PanicWith("dscheck: process 0 has already finished"))
		})

		It("captures a stack trace at the suspension point when enabled", func() {
			manager.CaptureStacks = true

			manager.Spawn(func() {
				manager.Suspend(schedule.Set, 1)
			})

			ev := manager.Resume(0)

			Expect(string(ev.Stack)).To(ContainSubstring("Suspend"))

			manager.Resume(0)
		})
	})

	Describe("func DisposeAll()", func() {
		It("unwinds a suspended fiber so its deferred cleanup runs exactly once", func() {
			released := 0
			manager.Spawn(func() {
				defer func() {
					released++
				}()

				manager.Suspend(schedule.Get, 1)
				manager.Suspend(schedule.Get, 1)
			})

			manager.Resume(0)
			manager.Resume(0)

			err := manager.DisposeAll()

			Expect(err).ShouldNot(HaveOccurred())
			Expect(released).To(Equal(1))
			Expect(manager.Len()).To(Equal(0))
		})

		It("skips processes that never started", func() {
			ran := false
			manager.Spawn(func() {
				ran = true
			})

			err := manager.DisposeAll()

			Expect(err).ShouldNot(HaveOccurred())
			Expect(ran).To(BeFalse())
		})

		It("reports fibers that panic while unwinding", func() {
			manager.Spawn(func() {
				defer func() {
					panic("cleanup failed")
				}()

				manager.Suspend(schedule.Get, 1)
			})

			manager.Resume(0)

			err := manager.DisposeAll()

			Expect(err).To(MatchError(ContainSubstring("process 0 panicked while unwinding: cleanup failed")))
		})

		It("resets the object-id counter", func() {
			manager.Spawn(func() {
				manager.Suspend(schedule.Make, schedule.NoObj)
			})
			manager.Resume(0)

			Expect(manager.DisposeAll()).ShouldNot(HaveOccurred())

			Expect(manager.NextObjectID()).To(Equal(1))
		})
	})
})
