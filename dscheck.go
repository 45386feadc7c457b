// Package dscheck is a model checker for programs whose processes coordinate
// through atomic shared-memory cells.
//
// A program spawns cooperating processes with Spawn() and communicates
// through cells created with Make(). Trace() then executes the program once
// per meaningfully distinct interleaving of its atomic operations, applying
// dynamic partial-order reduction to prune interleavings that are equivalent
// to one already explored. Invariants are expressed as predicates passed to
// Check() from hooks registered with Every() or Final(); when a predicate
// fails, the offending schedule is printed and the exploration stops.
//
// Outside an exploration the same operations act directly on real cells, so
// the identical program can also be run, unchecked, under the ordinary Go
// scheduler (see Stress).
package dscheck

import (
	"context"
	"sync/atomic"

	"github.com/dogmatiq/cosyne"
)

var (
	// runM serializes explorations across all checkers. A single lock is
	// required because the atomics facade routes intercepted operations
	// through the checker that is currently running.
	runM cosyne.Mutex

	// active is the checker currently driving a program, if any.
	active atomic.Pointer[Checker]

	// shared handles operations performed outside any exploration.
	shared = New()
)

// activeChecker returns the checker currently driving a program, or the
// shared checker if none is.
func activeChecker() *Checker {
	if c := active.Load(); c != nil {
		return c
	}

	return shared
}

// Trace explores every meaningfully distinct interleaving of the atomic
// operations performed by the program that setup spawns, using a new checker.
//
// See Checker.Trace().
func Trace(ctx context.Context, setup func(), options ...CheckerOption) error {
	return New(options...).Trace(ctx, setup)
}

// Stress runs the program under the real Go scheduler instead of exploring
// its interleavings, using a new checker.
//
// See Checker.Stress().
func Stress(ctx context.Context, setup func(), options ...CheckerOption) error {
	return New(options...).Stress(ctx, setup)
}
