package fiber

import (
	"bytes"
	"runtime/debug"
)

// maxStackLines bounds the stack traces attached to suspension events.
const maxStackLines = 12

// shortStack returns a truncated stack trace of the calling goroutine.
func shortStack() []byte {
	s := debug.Stack()

	lines := bytes.SplitAfterN(s, []byte("\n"), maxStackLines+1)
	if len(lines) <= maxStackLines {
		return s
	}

	return bytes.Join(lines[:maxStackLines], nil)
}
