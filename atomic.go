package dscheck

import (
	"sync"

	"github.com/Sudha247/dscheck/schedule"
)

// A Ref is a shared atomic cell holding a value of type T.
//
// Cells must be created with Make(). When a checker is driving the program
// every operation on a cell is a suspension point; otherwise operations act
// directly on the cell and are safe for concurrent use.
type Ref[T comparable] struct {
	c  *Checker
	id int

	m sync.Mutex
	v T
}

// integer constrains the element types that support arithmetic operations.
type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Make creates a new cell holding v.
func Make[T comparable](v T) *Ref[T] {
	c := activeChecker()

	r := &Ref[T]{c: c}

	if c.traced() {
		r.id = c.mgr.Suspend(schedule.Make, schedule.NoObj).Obj
	} else {
		r.id = c.mgr.NextObjectID()
	}

	r.v = v

	return r
}

// Get returns the value of the cell.
func (r *Ref[T]) Get() T {
	if r.c.traced() {
		r.c.mgr.Suspend(schedule.Get, r.id)
	}

	r.m.Lock()
	defer r.m.Unlock()

	return r.v
}

// Set replaces the value of the cell.
func (r *Ref[T]) Set(v T) {
	if r.c.traced() {
		r.c.mgr.Suspend(schedule.Set, r.id)
	}

	r.m.Lock()
	defer r.m.Unlock()

	r.v = v
}

// Exchange replaces the value of the cell and returns the previous value.
func (r *Ref[T]) Exchange(v T) T {
	if r.c.traced() {
		r.c.mgr.Suspend(schedule.Exchange, r.id)
	}

	r.m.Lock()
	defer r.m.Unlock()

	old := r.v
	r.v = v

	return old
}

// CompareAndSwap replaces the value of the cell with next only if it
// currently holds expected. It returns true if the swap occurred.
func (r *Ref[T]) CompareAndSwap(expected, next T) bool {
	if r.c.traced() {
		r.c.mgr.Suspend(schedule.CompareAndSwap, r.id)
	}

	r.m.Lock()
	defer r.m.Unlock()

	if r.v != expected {
		return false
	}

	r.v = next

	return true
}

// FetchAndAdd adds delta to the cell and returns the previous value.
func FetchAndAdd[T integer](r *Ref[T], delta T) T {
	if r.c.traced() {
		r.c.mgr.Suspend(schedule.FetchAndAdd, r.id)
	}

	r.m.Lock()
	defer r.m.Unlock()

	old := r.v
	r.v += delta

	return old
}

// Incr adds one to the cell.
func Incr[T integer](r *Ref[T]) {
	FetchAndAdd(r, 1)
}

// Decr subtracts one from the cell.
func Decr[T integer](r *Ref[T]) {
	FetchAndAdd(r, -1)
}
