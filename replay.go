package dscheck

import (
	"fmt"

	"github.com/Sudha247/dscheck/dpor"
	"github.com/Sudha247/dscheck/fiber"
	"github.com/Sudha247/dscheck/internal/x/containerx/intset"
	"github.com/Sudha247/dscheck/schedule"
	"github.com/dogmatiq/dodeca/logging"
)

// runSchedule executes the program once, resuming processes in exactly the
// order given by sched, and returns the state the program is left in.
//
// A failure raised by user code is caught once: the fibers are torn down and
// the same schedule is replayed with verbose logging before the failure is
// re-raised. A failed predicate is returned as an *AssertionError instead.
func (c *Checker) runSchedule(
	setup func(),
	sched schedule.Schedule,
) (*dpor.State, error) {
	st, failure := c.attempt(setup, sched)

	c.tracing.Store(false)
	flushErr := c.mgr.DisposeAll()

	if failure == nil && flushErr != nil {
		// A fiber did not unwind cleanly; the panic it raised is a user-code
		// failure like any other.
		failure = flushErr
	}

	if failure != nil {
		return nil, c.fail(setup, sched, failure)
	}

	if st.Enabled.Len() == 0 {
		for _, o := range c.opts.Observers {
			o.AfterRun(c.runs, sched, st)
		}
	}

	return st, nil
}

// attempt replays sched, converting any panic raised along the way into a
// failure value.
func (c *Checker) attempt(
	setup func(),
	sched schedule.Schedule,
) (st *dpor.State, failure any) {
	defer func() {
		if r := recover(); r != nil {
			st = nil
			failure = r
		}
	}()

	if len(sched) == 0 || sched[0] != schedule.First()[0] {
		panic(fatalError(
			"dscheck: schedule must begin with the start of process 0",
		))
	}

	c.lastSchedule = sched
	c.everyFunc = nil
	c.finalFunc = nil

	c.tracing.Store(false)
	setup()
	c.tracing.Store(true)

	return c.drive(sched), nil
}

// drive resumes processes step-by-step along sched and returns a snapshot of
// the program's state once the schedule is exhausted.
func (c *Checker) drive(sched schedule.Schedule) *dpor.State {
	var last schedule.Step

	for _, step := range sched {
		if c.mgr.AllFinished() {
			c.dump(sched)
			panic(fatalError(fmt.Sprintf(
				"dscheck: schedule names a step for process %d beyond the end of the program",
				step.PID,
			)))
		}

		p := c.mgr.Process(step.PID)
		if op, obj := p.Pending(); op != step.Op || obj != step.Obj {
			c.dump(sched)
			panic(fatalError(fmt.Sprintf(
				"dscheck: process %d is pending on %s %d, but the schedule expects %s %d",
				step.PID,
				op, obj,
				step.Op, step.Obj,
			)))
		}

		ev := c.mgr.Resume(step.PID)

		switch ev.Kind {
		case fiber.EventReturned:
			// The process ran to completion; continue with the remaining
			// schedule.

		case fiber.EventPanicked:
			panic(processFailure{
				pid:   ev.PID,
				value: ev.Panic,
			})

		case fiber.EventSuspended:
			if c.verbose {
				logging.LogString(
					c.opts.Logger,
					schedule.Step{PID: ev.PID, Op: ev.Op, Obj: ev.Obj}.String(),
				)

				if len(ev.Stack) > 0 {
					logging.LogString(c.opts.Logger, string(ev.Stack))
				}
			}

			c.runHook(c.everyFunc)
		}

		last = step
	}

	if c.mgr.AllFinished() {
		c.runs++

		if n := c.opts.ProgressInterval; n > 0 && c.runs%n == 0 {
			logging.Log(c.opts.Logger, "run: %d", c.runs)
		}

		c.runHook(c.finalFunc)
	}

	return c.snapshot(last)
}

// snapshot captures the pending operation of every process and the enabled
// set at the end of a replay.
func (c *Checker) snapshot(last schedule.Step) *dpor.State {
	st := &dpor.State{
		RunPID:    last.PID,
		RunOp:     last.Op,
		RunObj:    last.Obj,
		Enabled:   &intset.Set{},
		Backtrack: &intset.Set{},
	}

	for _, p := range c.mgr.Processes() {
		op, obj := p.Pending()

		st.Procs = append(st.Procs, dpor.PendingOp{
			PID: p.ID(),
			Op:  op,
			Obj: obj,
		})

		if !p.Finished() {
			st.Enabled.Add(p.ID())
		}
	}

	return st
}

// fail reports a failed run. Scheduler invariant violations and predicate
// failures propagate immediately; anything else triggers the verbose replay
// before being re-raised.
func (c *Checker) fail(
	setup func(),
	sched schedule.Schedule,
	failure any,
) error {
	pid := -1
	value := failure

	if pf, ok := failure.(processFailure); ok {
		pid = pf.pid
		value = pf.value
	}

	if ae, ok := value.(*AssertionError); ok {
		return ae
	}

	if fe, ok := value.(fatalError); ok {
		panic(fe)
	}

	logging.Log(c.opts.Logger, "Schedule: %d length", len(sched))
	c.dump(sched)

	if pid >= 0 {
		logging.Log(c.opts.Logger, "Process %d raised %v", pid, value)
	}

	if !c.verbose {
		c.verbose = true
		c.mgr.CaptureStacks = true

		// The verbose replay fails the same way; swallow the duplicate
		// failure and re-raise the original below.
		func() {
			defer func() {
				_ = recover()
			}()

			c.runSchedule(setup, sched)
		}()
	}

	panic(value)
}

// runHook invokes a user hook with tracing disabled, so that cells the hook
// reads are accessed directly rather than intercepted.
func (c *Checker) runHook(hook func()) {
	if hook == nil {
		return
	}

	saved := c.tracing.Swap(false)
	defer c.tracing.Store(saved)

	hook()
}

// dump logs the schedule, one line per step.
func (c *Checker) dump(sched schedule.Schedule) {
	for _, step := range sched {
		logging.LogString(c.opts.Logger, step.String())
	}
}
