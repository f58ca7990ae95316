package errortracker

import (
	"errors"
	"fmt"
	"io"

	"github.com/monopole/errortracker/internal/record"
	"go.uber.org/zap"
)

// ExitError is returned by ReportError when the Tracker wants the process
// to end. The Tracker never calls os.Exit itself; whoever owns the process
// decides. See ExitCode.
type ExitError struct {
	Code     int
	Function string
	Message  string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf(
		"exit %d requested by %q: %s", e.Code, e.Function, e.Message)
}

// ExitCode returns the requested exit status if err is, or wraps,
// an *ExitError.
func ExitCode(err error) (int, bool) {
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code, true
	}
	return 0, false
}

// ReportError records an error, with the zero value of C as cleanup
// context. See ReportErrorWithContext.
func (t *Tracker[C]) ReportError(function, message string, code int) error {
	var zero C
	return t.ReportErrorWithContext(function, message, code, zero)
}

// ReportErrorWithContext records an error.
//
// In order, it prints the error (unless printing is suppressed), overwrites
// the error state, appends a record to the log file, runs the cleanup
// callback with ctx, and, if ExitOnError, returns an *ExitError carrying
// code. Only one error is remembered at a time.
//
// If the log file can't be written, that error is returned at once and
// neither cleanup nor exit happen; callers should treat it as fatal.
func (t *Tracker[C]) ReportErrorWithContext(
	function, message string, code int, ctx C) error {
	t.print(record.Record{
		Severity: record.SeverityError,
		Function: function,
		Code:     code,
		Message:  message,
	})
	t.errState = condition{
		found:    true,
		code:     code,
		message:  message,
		function: function,
	}
	if err := t.LogError(function, message, code); err != nil {
		t.logger.Error("error log write failed",
			zap.String("file", t.logFilename), zap.Error(err))
		return err
	}
	if t.cleanup != nil {
		t.cleanup(t, ctx)
	}
	if t.exitOnError {
		t.logger.Debug("exit requested",
			zap.String("function", function), zap.Int("code", code))
		return &ExitError{Code: code, Function: function, Message: message}
	}
	return nil
}

// ReportWarning records a warning, overwriting any earlier one, and prints
// it unless printing is suppressed. Warnings aren't logged to the file,
// don't run the cleanup callback and never request an exit.
func (t *Tracker[C]) ReportWarning(function, message string, code int) {
	t.print(record.Record{
		Severity: record.SeverityWarning,
		Function: function,
		Code:     code,
		Message:  message,
	})
	t.warnState = condition{
		found:    true,
		code:     code,
		message:  message,
		function: function,
	}
	t.logger.Debug("warning recorded",
		zap.String("function", function), zap.Int("code", code))
}

func (t *Tracker[C]) print(r record.Record) {
	if t.suppressPrinting {
		return
	}
	if _, err := io.WriteString(t.stdout, r.PrintBlock()); err != nil {
		// Standard output is a best-effort sink.
		t.logger.Warn("cannot print report",
			zap.Stringer("severity", r.Severity), zap.Error(err))
	}
}
