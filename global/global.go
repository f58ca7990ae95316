// Package global offers a process-wide Tracker for programs that want the
// classic behavior: report an error and the process ends.
//
// It's a thin layer over errortracker.Tracker.  Library code should take
// a *errortracker.Tracker as a parameter instead.
package global

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/monopole/errortracker"
)

var (
	once     sync.Once
	instance *errortracker.Tracker[any]

	// Overridable in tests.
	exit   = os.Exit
	stderr = io.Writer(os.Stderr)
)

// Default returns the process-wide Tracker, built with default parameters
// on first use.
func Default() *errortracker.Tracker[any] {
	once.Do(func() {
		t, err := errortracker.New[any](nil)
		if err != nil {
			// The defaults are valid.
			panic(err)
		}
		instance = t
	})
	return instance
}

// Exit ends the process if err asks for it.  An *errortracker.ExitError
// ends it with the requested code; any other error, e.g. a failure to
// write the log file, is printed and ends it with status 1.
func Exit(err error) {
	if err == nil {
		return
	}
	if code, ok := errortracker.ExitCode(err); ok {
		exit(code)
		return
	}
	fmt.Fprintln(stderr, err)
	exit(1)
}

// ReportError reports to the Default tracker, exiting if it says so.
func ReportError(function, message string, code int) {
	Exit(Default().ReportError(function, message, code))
}

// ReportErrorWithContext is ReportError with a cleanup context.
func ReportErrorWithContext(function, message string, code int, ctx any) {
	Exit(Default().ReportErrorWithContext(function, message, code, ctx))
}

// ReportWarning reports to the Default tracker.
func ReportWarning(function, message string, code int) {
	Default().ReportWarning(function, message, code)
}

// StartTiming arms the watchdog of the Default tracker.
func StartTiming() {
	Default().StartTiming()
}

// CheckTimeout polls the watchdog of the Default tracker, exiting if
// a fired watchdog or a misuse asks for it.
func CheckTimeout(function string) {
	Exit(Default().CheckTimeout(function))
}
