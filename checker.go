package dscheck

import (
	"sync/atomic"

	"github.com/Sudha247/dscheck/dpor"
	"github.com/Sudha247/dscheck/fiber"
	"github.com/Sudha247/dscheck/schedule"
	"github.com/google/uuid"
)

// A Checker explores the interleavings of a program that coordinates through
// atomic shared-memory cells.
//
// The program's processes run as cooperative fibers; every atomic operation
// they perform is intercepted and surfaces to the checker, which decides the
// order in which the operations execute. The checker replays the program once
// per interleaving that dynamic partial-order reduction cannot prove
// equivalent to one already seen.
type Checker struct {
	id   uuid.UUID
	opts *checkerOptions
	mgr  *fiber.Manager

	// tracing controls whether atomic operations are intercepted. It is off
	// during the program's setup, inside hooks and predicates, and between
	// explorations.
	tracing atomic.Bool

	// verbose is set for the diagnostic second replay of a failed schedule.
	verbose bool

	// runs counts the complete runs performed so far.
	runs int

	// lastSchedule is the schedule currently being replayed, retained for
	// failure reporting.
	lastSchedule schedule.Schedule

	everyFunc func()
	finalFunc func()

	// stressFuncs collects process entry points while a Stress() setup call
	// is in progress, instead of populating the process table.
	stressing   bool
	stressFuncs []func()
}

// A RunObserver is notified after each complete run of the program.
type RunObserver interface {
	// AfterRun is called with the number of the run, the schedule that was
	// executed, and the state the program was left in.
	AfterRun(run int, s schedule.Schedule, st *dpor.State)
}

// New returns a new checker.
func New(options ...CheckerOption) *Checker {
	opts := resolveCheckerOptions(options...)

	m := fiber.New()
	m.Logger = opts.Logger

	return &Checker{
		id:   uuid.New(),
		opts: opts,
		mgr:  m,
	}
}

// ID returns a unique identifier for the checker.
func (c *Checker) ID() uuid.UUID {
	return c.id
}

// Runs returns the number of complete runs performed by the most recent call
// to Trace() or Stress().
func (c *Checker) Runs() int {
	return c.runs
}

// traced returns true if atomic operations performed by the calling fiber
// must be intercepted.
func (c *Checker) traced() bool {
	return c != nil && c.tracing.Load()
}
