package fiber

import (
	"fmt"
	"sync/atomic"

	"github.com/Sudha247/dscheck/schedule"
	"github.com/dogmatiq/dodeca/logging"
	"go.uber.org/multierr"
)

// Manager owns the process table and the fibers behind it.
//
// Each process runs on its own goroutine, but the manager and the fibers hand
// control back and forth over unbuffered channels so that exactly one of them
// is ever runnable. The manager is therefore the only scheduler: a fiber runs
// from one resumption to its next atomic operation, then blocks until the
// manager resumes or discontinues it.
type Manager struct {
	// Logger is the target for log messages about fiber lifecycle events.
	// If it is nil, logging.DefaultLogger is used.
	Logger logging.Logger

	// CaptureStacks, if true, causes each suspension event to carry a short
	// stack trace of the suspension point.
	CaptureStacks bool

	procs    []*Process
	events   chan Event
	running  *Process
	finished int
	objectID atomic.Int64
}

// New returns a manager with an empty process table.
func New() *Manager {
	return &Manager{
		events: make(chan Event),
	}
}

// Spawn appends a new process to the table.
//
// The process's fiber does not begin executing f until the process is first
// resumed; until then it is pending on the synthetic start operation.
func (m *Manager) Spawn(f func()) *Process {
	p := &Process{
		id:      len(m.procs),
		initial: f,
		nextOp:  schedule.Start,
		nextObj: schedule.NoObj,
		wake:    make(chan wake),
	}

	p.resume = func() {
		go m.top(p, f)
	}

	// The fiber has not started, so there is nothing to unwind.
	p.discontinue = func() {}

	m.procs = append(m.procs, p)

	logging.Debug(m.Logger, "process %d spawned", p.id)

	return p
}

// Process returns the process with the given ID.
func (m *Manager) Process(pid int) *Process {
	return m.procs[pid]
}

// Processes returns every process in the table, in ID order.
func (m *Manager) Processes() []*Process {
	return m.procs
}

// Len returns the number of processes in the table.
func (m *Manager) Len() int {
	return len(m.procs)
}

// FinishedCount returns the number of processes whose fibers have returned
// normally.
func (m *Manager) FinishedCount() int {
	return m.finished
}

// AllFinished returns true if every process's fiber has returned normally.
func (m *Manager) AllFinished() bool {
	return m.finished == len(m.procs)
}

// NextObjectID returns the next unused object-id.
//
// Object-ids are assigned from 1 and reset when the table is cleared.
func (m *Manager) NextObjectID() int {
	return int(m.objectID.Add(1))
}

// Resume invokes the process's resume continuation and blocks until its fiber
// suspends on an atomic operation, returns, or panics.
//
// If the fiber suspends, the process's pending operation and its continuation
// pair are replaced before Resume returns; a make operation additionally has
// an object-id assigned for the cell it is about to create.
func (m *Manager) Resume(pid int) Event {
	p := m.procs[pid]
	if p.finished {
		panic(fmt.Sprintf("dscheck: process %d has already finished", pid))
	}

	resume := p.take(false)

	m.running = p
	resume()
	ev := <-m.events
	m.running = nil

	switch ev.Kind {
	case EventSuspended:
		m.update(p, ev.Op, ev.Obj)
	case EventReturned:
		p.finished = true
		m.finished++
		logging.Debug(m.Logger, "process %d finished", p.id)
	case EventPanicked:
		// The goroutine is gone; there is no continuation left to invoke.
		p.finished = true
		logging.Debug(m.Logger, "process %d panicked: %v", p.id, ev.Panic)
	}

	return ev
}

// update stores what the process is now waiting to do next. It is called
// exactly once per suspension.
func (m *Manager) update(p *Process, op schedule.Op, obj int) {
	p.makeObj = schedule.NoObj
	if op == schedule.Make {
		p.makeObj = m.NextObjectID()
	}

	p.nextOp = op
	p.nextObj = obj

	p.resume = func() {
		p.wake <- wake{obj: p.makeObj}
	}

	p.discontinue = func() {
		p.wake <- wake{abort: true}
	}

	logging.Debug(m.Logger, "process %d suspended on %s %d", p.id, op, obj)
}

// Suspend surfaces an atomic operation to the manager and blocks the calling
// fiber until it is resumed.
//
// It must only be called from the fiber the manager is currently running. If
// the fiber is discontinued instead of resumed, Suspend does not return; the
// fiber unwinds, running any deferred cleanup on the way out.
func (m *Manager) Suspend(op schedule.Op, obj int) Wake {
	p := m.running
	if p == nil {
		panic("dscheck: atomic operation intercepted while no fiber is running")
	}

	ev := Event{
		PID:  p.id,
		Kind: EventSuspended,
		Op:   op,
		Obj:  obj,
	}

	if m.CaptureStacks {
		ev.Stack = shortStack()
	}

	m.events <- ev

	w := <-p.wake
	if w.abort {
		panic(abortSignal{})
	}

	return Wake{Obj: w.obj}
}

// DisposeAll discontinues every unfinished fiber so it releases any scoped
// resources it holds, then clears the process table and resets the object-id
// counter.
//
// A fiber that panics while unwinding contributes an error to the combined
// result.
func (m *Manager) DisposeAll() error {
	var err error

	for _, p := range m.procs {
		if p.finished {
			continue
		}

		started := p.nextOp != schedule.Start
		discontinue := p.take(true)

		if !started {
			// The fiber never began executing; there is no goroutine to
			// unwind.
			p.finished = true
			continue
		}

		m.running = p
		discontinue()
		ev := <-m.events
		m.running = nil
		p.finished = true

		logging.Debug(m.Logger, "process %d discontinued", p.id)

		if ev.Kind == EventPanicked {
			err = multierr.Append(
				err,
				fmt.Errorf(
					"process %d panicked while unwinding: %v",
					p.id,
					ev.Panic,
				),
			)
		}
	}

	m.procs = nil
	m.finished = 0
	m.objectID.Store(0)

	return err
}

// top is the entry point of every fiber goroutine.
func (m *Manager) top(p *Process, f func()) {
	defer func() {
		switch r := recover().(type) {
		case nil:
			m.events <- Event{PID: p.id, Kind: EventReturned}
		case abortSignal:
			m.events <- Event{PID: p.id, Kind: EventAborted}
		default:
			m.events <- Event{PID: p.id, Kind: EventPanicked, Panic: r}
		}
	}()

	f()
}
