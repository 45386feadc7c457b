package dpor

import (
	"fmt"

	"github.com/Sudha247/dscheck/internal/x/containerx/intset"
	"github.com/Sudha247/dscheck/schedule"
)

// A PendingOp is the snapshot of one process's pending atomic operation.
type PendingOp struct {
	// PID is the ID of the process.
	PID int

	// Op is the operation the process is blocked on. For a finished process
	// it is the last operation the process executed.
	Op schedule.Op

	// Obj is the object-id referenced by Op, or schedule.NoObj.
	Obj int
}

// A State describes the program after one prefix of a schedule has executed.
type State struct {
	// Procs is the pending operation of every process at the end of the
	// prefix, in process-ID order.
	Procs []PendingOp

	// RunPID, RunOp and RunObj identify the step that produced this state.
	RunPID int
	RunOp  schedule.Op
	RunObj int

	// Enabled is the set of processes whose fibers have not yet returned.
	Enabled *intset.Set

	// Backtrack is the set of processes still scheduled to be explored from
	// this state. It grows as races against later operations are discovered.
	Backtrack *intset.Set
}

// Pending returns the pending operation snapshot for the given process.
func (s *State) Pending(pid int) PendingOp {
	for _, p := range s.Procs {
		if p.PID == pid {
			return p
		}
	}

	panic(fmt.Sprintf("dscheck: state has no process %d", pid))
}

// RunStep returns the schedule step that produced this state.
func (s *State) RunStep() schedule.Step {
	return schedule.Step{
		PID: s.RunPID,
		Op:  s.RunOp,
		Obj: s.RunObj,
	}
}
