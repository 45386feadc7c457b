package dscheck

import "github.com/dogmatiq/dodeca/logging"

// Spawn registers a process with entry point f.
//
// It is intended to be called from the setup function passed to Trace() or
// Stress(). The process does not begin executing until the checker first
// resumes it.
func Spawn(f func()) {
	c := activeChecker()

	if c.stressing {
		c.stressFuncs = append(c.stressFuncs, f)
		return
	}

	c.mgr.Spawn(f)
}

// Every installs a hook invoked between schedule steps.
//
// The hook runs with interception disabled: cells it reads are accessed
// directly and no schedule step is recorded. Hooks are observers; writing to
// cells from a hook mutates the program's state without the checker's
// knowledge.
func Every(f func()) {
	activeChecker().everyFunc = f
}

// Final installs a hook invoked at the end of each complete run, once every
// process has finished.
//
// Like Every(), the hook runs with interception disabled.
func Final(f func()) {
	activeChecker().finalFunc = f
}

// Check evaluates an invariant predicate.
//
// It is intended to be called from hooks installed with Every() or Final().
// Interception is disabled around the predicate so that its own reads of the
// program's cells are not intercepted.
//
// If the predicate returns false the current schedule is printed and the
// exploration is aborted; Trace() returns the violation as an
// *AssertionError.
func Check(pred func() bool) {
	activeChecker().check(pred)
}

func (c *Checker) check(pred func() bool) {
	saved := c.tracing.Swap(false)
	ok := pred()
	c.tracing.Store(saved)

	if ok {
		return
	}

	logging.Log(c.opts.Logger, "Found assertion violation at run %d:", c.runs)
	c.dump(c.lastSchedule)

	panic(&AssertionError{
		Run:      c.runs,
		Schedule: c.lastSchedule,
	})
}
