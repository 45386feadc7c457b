package dscheck

import (
	"log"
	"os"

	"github.com/dogmatiq/dodeca/logging"
)

var (
	// DefaultLogger is the default target for output produced by the checker.
	//
	// It is overridden by the WithLogger() option.
	DefaultLogger logging.Logger = &logging.StandardLogger{
		Target: log.New(os.Stdout, "", 0),
	}

	// DefaultProgressInterval is the default number of complete runs between
	// progress messages during an exploration.
	//
	// It is overridden by the WithProgressInterval() option.
	DefaultProgressInterval = 100000

	// DefaultStressIterations is the default number of times Stress() runs
	// the program under the real Go scheduler.
	//
	// It is overridden by the WithStressIterations() option.
	DefaultStressIterations = 1000
)

// CheckerOption configures the behavior of a checker.
type CheckerOption func(*checkerOptions)

// WithLogger returns a checker option that sets the target for output
// produced by the checker.
//
// If this option is omitted or l is nil DefaultLogger is used.
func WithLogger(l logging.Logger) CheckerOption {
	return func(opts *checkerOptions) {
		opts.Logger = l
	}
}

// WithProgressInterval returns a checker option that sets the number of
// complete runs between progress messages during an exploration.
//
// If this option is omitted or n is zero DefaultProgressInterval is used.
func WithProgressInterval(n int) CheckerOption {
	if n < 0 {
		panic("interval must not be negative")
	}

	return func(opts *checkerOptions) {
		opts.ProgressInterval = n
	}
}

// WithObserver returns a checker option that registers an observer to be
// notified after each complete run of the program.
func WithObserver(o RunObserver) CheckerOption {
	return func(opts *checkerOptions) {
		opts.Observers = append(opts.Observers, o)
	}
}

// WithStressIterations returns a checker option that sets the number of times
// Stress() runs the program under the real Go scheduler.
//
// If this option is omitted or n is zero DefaultStressIterations is used.
func WithStressIterations(n int) CheckerOption {
	if n < 0 {
		panic("iteration count must not be negative")
	}

	return func(opts *checkerOptions) {
		opts.StressIterations = n
	}
}

// checkerOptions is a container for a fully-resolved set of checker options.
type checkerOptions struct {
	Logger           logging.Logger
	ProgressInterval int
	Observers        []RunObserver
	StressIterations int
}

// resolveCheckerOptions returns a fully-populated set of checker options
// built from the given set of option functions.
func resolveCheckerOptions(options ...CheckerOption) *checkerOptions {
	opts := &checkerOptions{}

	for _, o := range options {
		o(opts)
	}

	if opts.Logger == nil {
		opts.Logger = DefaultLogger
	}

	if opts.ProgressInterval == 0 {
		opts.ProgressInterval = DefaultProgressInterval
	}

	if opts.StressIterations == 0 {
		opts.StressIterations = DefaultStressIterations
	}

	return opts
}
