// Package errortracker records errors, warnings and timeouts for code
// that has no better way to report them.
//
// Use one Tracker per logical unit of work.  Report conditions with
// ReportError and ReportWarning as they arise, and later consult the
// flags and messages to decide how to proceed.  Errors are printed, kept,
// appended to a log file, handed to an optional cleanup callback, and by
// default answered with an *ExitError asking the owner of the process to
// exit with the error's code.  The Tracker itself never exits.
//
// The watchdog is poll-based: call StartTiming, then CheckTimeout now and
// then.  Once the elapsed time exceeds the threshold, CheckTimeout reports
// an error or a warning, depending on TimeoutIsError.
//
// See example_test.go for an example, and the global package for a
// process-wide Tracker that really exits.
package errortracker
