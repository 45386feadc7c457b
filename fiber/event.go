package fiber

import "github.com/Sudha247/dscheck/schedule"

// EventKind enumerates the ways a running fiber can hand control back to the
// scheduler.
type EventKind int

const (
	// EventSuspended indicates that the fiber reached an atomic operation and
	// is now blocked waiting to be resumed or discontinued.
	EventSuspended EventKind = iota

	// EventReturned indicates that the fiber's entry function returned
	// normally.
	EventReturned

	// EventPanicked indicates that the fiber's entry function panicked.
	EventPanicked

	// EventAborted indicates that the fiber unwound in response to being
	// discontinued.
	EventAborted
)

// An Event describes why a fiber stopped running.
type Event struct {
	// PID is the ID of the process that produced the event.
	PID int

	// Kind indicates how the fiber stopped.
	Kind EventKind

	// Op is the atomic operation the fiber is suspended on.
	//
	// It is only meaningful when Kind is EventSuspended.
	Op schedule.Op

	// Obj is the object-id of the cell referenced by Op, or schedule.NoObj
	// when Op references no existing cell.
	Obj int

	// Panic is the value recovered from the fiber.
	//
	// It is only meaningful when Kind is EventPanicked.
	Panic any

	// Stack is a short stack trace captured at the suspension point.
	//
	// It is only populated when the manager is capturing stacks.
	Stack []byte
}

// A Wake carries the scheduler's reply to a suspended fiber.
type Wake struct {
	// Obj is the object-id assigned to the cell a pending make operation is
	// about to create. It is schedule.NoObj for all other operations.
	Obj int
}

// wake is the internal form of Wake, which additionally allows the scheduler
// to deliver an abort.
type wake struct {
	obj   int
	abort bool
}

// abortSignal is the sentinel panic value used to unwind a discontinued
// fiber. It is recovered at the top of the fiber and never escapes.
type abortSignal struct{}
