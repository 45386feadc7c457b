package dpor

import (
	"github.com/Sudha247/dscheck/internal/x/containerx/intset"
	"github.com/Sudha247/dscheck/schedule"
	"github.com/dogmatiq/dodeca/logging"
)

// A Runner executes a single schedule against the user's program and returns
// the state the program is left in.
type Runner func(s schedule.Schedule) (*State, error)

// Explorer performs a depth-first dynamic partial-order reduction over the
// interleavings of a program's atomic operations.
//
// It discovers which interleavings must be visited by tracking, for each
// shared cell, the most recent step on the current path that touched it: a
// pending operation on the same cell races with that step, so the process
// issuing it must also be scheduled from the state the step executed in.
type Explorer struct {
	// Run executes one schedule. It must be deterministic: running the same
	// schedule twice must produce equal states.
	Run Runner

	// Logger is the target for log messages about the search.
	// If it is nil, logging.DefaultLogger is used.
	Logger logging.Logger
}

// Explore expands the search from the final state of states, which must be
// non-empty.
//
// clock records the last state index at which each process ran. lastAccess
// maps each object-id to the most recent state index that touched it on the
// current path. Neither map is modified; extended copies are passed to
// recursive calls.
func (e *Explorer) Explore(
	states []*State,
	clock map[int]int,
	lastAccess map[int]int,
) error {
	s := states[len(states)-1]

	// Grow the backtrack sets of earlier states that raced with an operation
	// now pending.
	for _, p := range s.Procs {
		if p.Obj == schedule.NoObj {
			continue
		}

		i := lastAccess[p.Obj]
		if i == 0 {
			continue
		}

		pre := states[i-1]

		if pre.Enabled.Has(p.PID) {
			if pre.Backtrack.Add(p.PID) {
				logging.Debug(
					e.Logger,
					"process %d races with step %d on object %d, backtracking at depth %d",
					p.PID,
					i,
					p.Obj,
					i-1,
				)
			}
		} else {
			// The racing process was not runnable back then; conservatively
			// revisit everything that was.
			pre.Backtrack.Union(pre.Enabled)

			logging.Debug(
				e.Logger,
				"process %d races with step %d on object %d but was not then enabled, backtracking all of depth %d",
				p.PID,
				i,
				p.Obj,
				i-1,
			)
		}
	}

	if s.Enabled.Len() == 0 {
		return nil
	}

	if min, ok := s.Enabled.Min(); ok {
		s.Backtrack.Add(min)
	}

	done := &intset.Set{}

	for {
		j, ok := s.Backtrack.MinNotIn(done)
		if !ok {
			return nil
		}

		done.Add(j)

		p := s.Pending(j)

		sched := make(schedule.Schedule, 0, len(states)+1)
		for _, st := range states {
			sched = append(sched, st.RunStep())
		}
		sched = append(
			sched,
			schedule.Step{PID: j, Op: p.Op, Obj: p.Obj},
		)

		next, err := e.Run(sched)
		if err != nil {
			return err
		}

		// Force a copy so sibling iterations do not share a backing array.
		expanded := append(states[:len(states):len(states)], next)
		index := len(expanded) - 1

		la := lastAccess
		if p.Obj != schedule.NoObj {
			la = cloneWith(lastAccess, p.Obj, index)
		}

		if err := e.Explore(
			expanded,
			cloneWith(clock, j, index),
			la,
		); err != nil {
			return err
		}
	}
}

// cloneWith returns a copy of m with k set to v.
func cloneWith(m map[int]int, k, v int) map[int]int {
	c := make(map[int]int, len(m)+1)
	for mk, mv := range m {
		c[mk] = mv
	}
	c[k] = v

	return c
}
