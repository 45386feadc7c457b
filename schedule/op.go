package schedule

import "fmt"

// Op enumerates the atomic operations a process can perform on a shared cell.
type Op int

const (
	// Start is a synthetic operation representing the initial resumption of a
	// process. Every process is pending on Start until it is first resumed.
	Start Op = iota

	// Make creates a new shared cell.
	Make

	// Get reads the value of a cell.
	Get

	// Set replaces the value of a cell.
	Set

	// Exchange replaces the value of a cell and returns the previous value.
	Exchange

	// CompareAndSwap replaces the value of a cell only if it currently holds
	// an expected value.
	CompareAndSwap

	// FetchAndAdd adds a delta to an integer cell and returns the previous
	// value.
	FetchAndAdd
)

var opNames = map[Op]string{
	Start:          "start",
	Make:           "make",
	Get:            "get",
	Set:            "set",
	Exchange:       "exchange",
	CompareAndSwap: "compare_and_swap",
	FetchAndAdd:    "fetch_and_add",
}

func (o Op) String() string {
	if n, ok := opNames[o]; ok {
		return n
	}

	return fmt.Sprintf("<unknown op %d>", int(o))
}
