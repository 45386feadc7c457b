package dscheck

import (
	"context"

	"github.com/Sudha247/dscheck/dpor"
	"github.com/Sudha247/dscheck/schedule"
	"github.com/dogmatiq/dodeca/logging"
)

// Trace explores every meaningfully distinct interleaving of the atomic
// operations performed by the program that setup spawns.
//
// setup is invoked once per run, with interception disabled, to spawn the
// program's processes and register its hooks. It must be deterministic: the
// program's only source of non-determinism must be the order of its atomic
// operations.
//
// Trace returns an *AssertionError if a predicate registered with Check()
// fails. A panic raised by the program is re-raised after the failing
// schedule has been replayed with verbose logging. Exploration stops early if
// ctx is canceled.
//
// Only one exploration runs at a time, across all checkers; concurrent calls
// block until the running exploration completes or ctx is canceled.
func (c *Checker) Trace(ctx context.Context, setup func()) error {
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
	c.verbose = false
	c.lastSchedule = nil
	c.mgr.CaptureStacks = false

	logging.Debug(c.opts.Logger, "checker %s: starting exploration", c.id)

	st, err := c.runSchedule(setup, schedule.First())
	if err != nil {
		return err
	}

	e := &dpor.Explorer{
		Run: func(s schedule.Schedule) (*dpor.State, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			return c.runSchedule(setup, s)
		},
		Logger: c.opts.Logger,
	}

	if err := e.Explore(
		[]*dpor.State{st},
		map[int]int{},
		map[int]int{},
	); err != nil {
		return err
	}

	logging.Debug(
		c.opts.Logger,
		"checker %s: exploration finished after %d complete runs",
		c.id,
		c.runs,
	)

	return nil
}
