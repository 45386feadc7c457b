package schedule

import (
	"io"
	"strings"

	"github.com/dogmatiq/iago/must"
)

// A Schedule is a totally ordered sequence of steps that uniquely determines
// one interleaving of a program's atomic operations.
type Schedule []Step

// First returns the mandatory first step of every schedule: the initial
// resumption of process 0.
func First() Schedule {
	return Schedule{
		{PID: 0, Op: Start, Obj: NoObj},
	}
}

// String returns the schedule in its diagnostic dump format, one line per
// step.
func (s Schedule) String() string {
	w := &strings.Builder{}
	mustWrite(w, s)
	return w.String()
}

// Write writes the schedule's diagnostic dump to w.
func Write(w io.Writer, s Schedule) (n int, err error) {
	defer must.Recover(&err)
	n = mustWrite(w, s)
	return
}

func mustWrite(w io.Writer, s Schedule) (n int) {
	for _, st := range s {
		n += must.WriteString(w, st.String())
		n += must.WriteString(w, "\n")
	}

	return
}
