package fiber

import "github.com/Sudha247/dscheck/schedule"

// A Process is one entry in the process table: a cooperative fiber together
// with the atomic operation it is currently blocked on.
//
// A process holds at most one usable continuation pair. Invoking either the
// resume or the discontinue continuation consumes the record; a finished
// process has no usable continuation.
type Process struct {
	id      int
	initial func()

	nextOp  schedule.Op
	nextObj int

	// makeObj is the object-id pre-assigned to the cell the pending make
	// operation will create. It is delivered to the fiber when it is resumed.
	makeObj int

	resume      func()
	discontinue func()
	finished    bool

	wake chan wake
}

// ID returns the process's dense identifier, assigned by insertion order into
// the process table.
func (p *Process) ID() int {
	return p.id
}

// Pending returns the atomic operation the process is currently blocked on,
// and the object-id that operation references.
//
// The operation is schedule.Start until the process is first resumed. The
// object-id is schedule.NoObj for start and make operations.
func (p *Process) Pending() (schedule.Op, int) {
	return p.nextOp, p.nextObj
}

// Finished returns true once the fiber's entry function has returned or
// panicked.
func (p *Process) Finished() bool {
	return p.finished
}

// InitialFunc returns the entry function the process was spawned with.
func (p *Process) InitialFunc() func() {
	return p.initial
}

// take consumes the process's continuation pair, returning the continuation
// selected by abort.
//
// It panics if the pair has already been consumed.
func (p *Process) take(abort bool) func() {
	f := p.resume
	if abort {
		f = p.discontinue
	}

	if f == nil {
		panic("dscheck: continuation for process has already been consumed")
	}

	p.resume = nil
	p.discontinue = nil

	return f
}
