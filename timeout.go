package errortracker

import (
	"time"

	"go.uber.org/zap"
)

const (
	// CodeTimeoutNotStarted is reported when CheckTimeout is called
	// before StartTiming.
	CodeTimeoutNotStarted = -1

	// TimeoutMessage is the message of a fired watchdog.
	TimeoutMessage = "Timeout threshold exceeded"

	// NotStartedMessage is the message of a CheckTimeout misuse.
	NotStartedMessage = "Timeout checked before timing was started"
)

// watchState describes the watchdog.
type watchState int

const (
	// No start time recorded.  In this state after construction
	// or ResetTimeout.  Can change to stateArmed.
	stateUnarmed watchState = iota

	// StartTiming was called.  Stays here through any number of
	// CheckTimeout calls.  Can change to stateUnarmed.
	stateArmed
)

func (t *Tracker[C]) getState() watchState {
	if t.timingStart != nil && t.lastCheck != nil {
		return stateArmed
	}
	return stateUnarmed
}

// TimeoutThreshold returns the watchdog threshold.
func (t *Tracker[C]) TimeoutThreshold() Threshold {
	return ThresholdOf(t.threshold)
}

// SetTimeoutThreshold sets the watchdog threshold to the total of the
// given hours, minutes and seconds.
func (t *Tracker[C]) SetTimeoutThreshold(hours, minutes int, seconds float64) {
	t.threshold = Threshold{
		Hours: hours, Minutes: minutes, Seconds: seconds}.Duration()
}

// TimeoutIsError is true if a fired watchdog reports an error rather
// than a warning.
func (t *Tracker[C]) TimeoutIsError() bool { return t.timeoutIsError }

// SetTimeoutIsError chooses between error and warning for a fired watchdog.
func (t *Tracker[C]) SetTimeoutIsError(v bool) { t.timeoutIsError = v }

// TimeoutCode returns the code reported when the watchdog fires.
func (t *Tracker[C]) TimeoutCode() int { return t.timeoutCode }

// SetTimeoutCode sets the code reported when the watchdog fires.
func (t *Tracker[C]) SetTimeoutCode(code int) { t.timeoutCode = code }

// TimeoutFunction returns the name passed to the latest CheckTimeout,
// or "" if there was none since the last reset.
func (t *Tracker[C]) TimeoutFunction() string { return t.timeoutFunction }

// TimingStart returns the time StartTiming was called, if armed.
func (t *Tracker[C]) TimingStart() (time.Time, bool) {
	if t.timingStart == nil {
		return time.Time{}, false
	}
	return *t.timingStart, true
}

// LastCheck returns the time of the latest check, if armed.
func (t *Tracker[C]) LastCheck() (time.Time, bool) {
	if t.lastCheck == nil {
		return time.Time{}, false
	}
	return *t.lastCheck, true
}

// TimeoutIsSet is true if the watchdog is armed.
func (t *Tracker[C]) TimeoutIsSet() bool {
	return t.getState() == stateArmed
}

// StartTiming (re)arms the watchdog from scratch.
func (t *Tracker[C]) StartTiming() {
	t.ResetTimeout()
	now := t.now()
	start, last := now, now
	t.timingStart = &start
	t.lastCheck = &last
}

// ResetTimeout disarms the watchdog and forgets the timeout function name.
func (t *Tracker[C]) ResetTimeout() {
	t.timingStart = nil
	t.lastCheck = nil
	t.timeoutFunction = ""
}

// Elapsed returns the time since StartTiming, or zero if unarmed.
func (t *Tracker[C]) Elapsed() time.Duration {
	if t.getState() != stateArmed {
		return 0
	}
	return t.now().Sub(*t.timingStart)
}

// CheckTimeout polls the watchdog on behalf of the named function.
//
// If the time since StartTiming exceeds the threshold, the watchdog fires:
// it reports an error with TimeoutMessage and the timeout code if
// TimeoutIsError, else a warning. The outcome of such an error report is
// returned. The last-check time is updated whether or not it fires.
//
// Calling CheckTimeout on an unarmed watchdog is itself reported as an
// error with CodeTimeoutNotStarted. That report names the function given
// to the previous CheckTimeout, not the current one.
func (t *Tracker[C]) CheckTimeout(function string) error {
	if t.getState() != stateArmed {
		return t.ReportError(
			t.timeoutFunction, NotStartedMessage, CodeTimeoutNotStarted)
	}
	t.timeoutFunction = function
	now := t.now()
	elapsed := now.Sub(*t.timingStart)
	t.lastCheck = &now
	if elapsed <= t.threshold {
		return nil
	}
	t.logger.Debug("timeout fired",
		zap.String("function", function),
		zap.Duration("elapsed", elapsed),
		zap.Duration("threshold", t.threshold),
		zap.Bool("isError", t.timeoutIsError))
	if t.timeoutIsError {
		return t.ReportError(function, TimeoutMessage, t.timeoutCode)
	}
	t.ReportWarning(function, TimeoutMessage, t.timeoutCode)
	return nil
}
