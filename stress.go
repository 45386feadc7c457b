package dscheck

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Stress runs the program repeatedly under the real Go scheduler, with
// interception disabled throughout.
//
// Each iteration invokes setup, runs every spawned process as an ordinary
// goroutine, then invokes the final hook. Because the atomics facade forwards
// directly to real cells when no exploration is running, this exercises the
// identical program the checker explores, at native speed; it catches real
// races only probabilistically, but does so before paying for an exhaustive
// search.
//
// Stress returns an *AssertionError if a predicate registered with Check()
// fails, or an error describing the first process that panicked.
func (c *Checker) Stress(ctx context.Context, setup func()) error {
	if setup == nil {
		panic("setup must not be nil")
	}

	if err := runM.Lock(ctx); err != nil {
		return err
	}
	defer runM.Unlock()

	active.Store(c)
	defer active.Store(nil)

	c.runs = 0
	c.lastSchedule = nil

	for i := 0; i < c.opts.StressIterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := c.stressOnce(setup); err != nil {
			return err
		}
	}

	return nil
}

func (c *Checker) stressOnce(setup func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if ae, ok := r.(*AssertionError); ok {
				err = ae
				return
			}

			panic(r)
		}
	}()

	c.runs++
	c.everyFunc = nil
	c.finalFunc = nil
	c.stressFuncs = nil

	c.stressing = true
	setup()
	c.stressing = false

	g := &errgroup.Group{}

	for _, f := range c.stressFuncs {
		f := f // capture loop variable

		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("process panicked: %v", r)
				}
			}()

			f()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	c.runHook(c.finalFunc)

	return nil
}
