package dscheck_test

import (
	"context"
	"errors"

	. "github.com/Sudha247/dscheck"
	"github.com/dogmatiq/dodeca/logging"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("func Stress()", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("runs the program under the real scheduler", func() {
		err := Stress(
			ctx,
			func() {
				r := Make(0)

				Spawn(func() {
					FetchAndAdd(r, 1)
				})
				Spawn(func() {
					FetchAndAdd(r, 1)
				})

				Final(func() {
					Check(func() bool {
						return r.Get() == 2
					})
				})
			},
			WithStressIterations(50),
			WithLogger(logging.DiscardLogger{}),
		)

		Expect(err).ShouldNot(HaveOccurred())
	})

	It("reports a failing predicate", func() {
		err := Stress(
			ctx,
			func() {
				r := Make(1)

				Spawn(func() {
					r.Set(2)
				})

				Final(func() {
					Check(func() bool {
						return r.Get() == 1
					})
				})
			},
			WithStressIterations(1),
			WithLogger(logging.DiscardLogger{}),
		)

		var ae *AssertionError
		Expect(errors.As(err, &ae)).To(BeTrue())
		Expect(ae.Run).To(Equal(1))
	})

	It("reports a panicking process", func() {
		err := Stress(
			ctx,
			func() {
				Spawn(func() {
					panic("boom")
				})
			},
			WithStressIterations(1),
			WithLogger(logging.DiscardLogger{}),
		)

		Expect(err).To(MatchError(ContainSubstring("process panicked: boom")))
	})

	It("panics if the setup function is nil", func() {
		Expect(func() {
			Stress(ctx, nil)
		}).To(PanicWith("setup must not be nil"))
	})
})
