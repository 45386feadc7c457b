// Package fixtures contains test doubles for the dscheck checker.
package fixtures

import (
	"github.com/Sudha247/dscheck/dpor"
	"github.com/Sudha247/dscheck/schedule"
)

// ObserverStub is a test implementation of the dscheck.RunObserver interface.
type ObserverStub struct {
	AfterRunFunc func(int, schedule.Schedule, *dpor.State)
}

// AfterRun is called after each complete run of the program.
func (o *ObserverStub) AfterRun(run int, s schedule.Schedule, st *dpor.State) {
	if o.AfterRunFunc != nil {
		o.AfterRunFunc(run, s, st)
	}
}

// Recorder is a dscheck.RunObserver that records each complete run.
type Recorder struct {
	// Runs is the run number of each complete run, in order.
	Runs []int

	// Schedules is the schedule of each complete run, in order.
	Schedules []schedule.Schedule

	// States is the final state of each complete run, in order.
	States []*dpor.State
}

// AfterRun records the run.
func (r *Recorder) AfterRun(run int, s schedule.Schedule, st *dpor.State) {
	r.Runs = append(r.Runs, run)
	r.Schedules = append(r.Schedules, append(schedule.Schedule(nil), s...))
	r.States = append(r.States, st)
}

// Order returns which processes touched the given object, in execution order,
// for the schedule of the n'th recorded run.
func (r *Recorder) Order(n, obj int) []int {
	var pids []int

	for _, step := range r.Schedules[n] {
		if step.Obj == obj {
			pids = append(pids, step.PID)
		}
	}

	return pids
}
