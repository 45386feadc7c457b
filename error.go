package dscheck

import (
	"fmt"

	"github.com/Sudha247/dscheck/schedule"
)

// An AssertionError indicates that a predicate registered with Check()
// returned false.
type AssertionError struct {
	// Run is the run at which the violation was found.
	Run int

	// Schedule is the interleaving that produced the violation.
	Schedule schedule.Schedule
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion violation at run %d", e.Run)
}

// fatalError indicates that the checker's own scheduling invariants were
// broken, either by a bug in the checker or by a non-deterministic program.
type fatalError string

func (e fatalError) Error() string {
	return string(e)
}

// processFailure carries a panic raised by user code inside a fiber.
type processFailure struct {
	pid   int
	value any
}
