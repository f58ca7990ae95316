package errortracker

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap"
)

// CleanupFunc is called after an error has been recorded and logged, and
// before termination is requested. The context is whatever was handed to
// ReportErrorWithContext, or the zero value of C.
type CleanupFunc[C any] func(t *Tracker[C], ctx C)

// condition holds one reported error or warning.
type condition struct {
	found    bool
	code     int
	message  string
	function string
}

// Tracker records error, warning and timeout state for one logical unit of
// work. The three groups of state share the container but never interact
// except through explicit queries.
//
// A Tracker is not safe for concurrent use. Use one Tracker per goroutine,
// or guard access with a mutex.
//
// C is the type of the opaque context passed through to the cleanup
// callback; use any if there's no particular need.
type Tracker[C any] struct {
	logFilename      string
	exitOnError      bool
	suppressPrinting bool

	errState  condition
	warnState condition

	threshold       time.Duration
	timeoutIsError  bool
	timeoutCode     int
	timingStart     *time.Time // nil until StartTiming
	lastCheck       *time.Time // nil until StartTiming
	timeoutFunction string     // name given to the latest CheckTimeout

	cleanup CleanupFunc[C]

	stdout io.Writer
	logger *zap.Logger
	now    func() time.Time
}

// Option adjusts the collaborators of a Tracker.
type Option func(*settings)

type settings struct {
	stdout io.Writer
	logger *zap.Logger
	now    func() time.Time
}

// WithStdout sends printed reports to w instead of os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(s *settings) { s.stdout = w }
}

// WithLogger sets the logger used for the Tracker's own diagnostics.
// These are not the error records; those always go to the log file.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithClock replaces time.Now, e.g. for tests.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// New returns a new Tracker, or an error on bad parameters.
// Nil params means DefaultParameters.
func New[C any](params *Parameters, opts ...Option) (*Tracker[C], error) {
	if params == nil {
		params = DefaultParameters()
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	s := settings{
		stdout: os.Stdout,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	t := &Tracker[C]{
		exitOnError:      params.ExitOnError,
		suppressPrinting: params.SuppressPrinting,
		threshold:        params.TimeoutThreshold.Duration(),
		timeoutIsError:   params.TimeoutIsError,
		timeoutCode:      params.TimeoutCode,
		stdout:           s.stdout,
		logger:           s.logger,
		now:              s.now,
	}
	t.SetLogFilename(params.LogFilename)
	return t, nil
}

// Parameters returns a snapshot of the current configuration.
func (t *Tracker[C]) Parameters() Parameters {
	return Parameters{
		LogFilename:      t.logFilename,
		ExitOnError:      t.exitOnError,
		SuppressPrinting: t.suppressPrinting,
		TimeoutThreshold: t.TimeoutThreshold(),
		TimeoutIsError:   t.timeoutIsError,
		TimeoutCode:      t.timeoutCode,
	}
}

// LogFilename returns the name of the error log file.
func (t *Tracker[C]) LogFilename() string { return t.logFilename }

// SetLogFilename sets the name of the error log file, silently truncating
// it to MaxLogFilenameLen bytes.
func (t *Tracker[C]) SetLogFilename(name string) {
	if len(name) > MaxLogFilenameLen {
		t.logger.Debug("truncating log filename",
			zap.Int("length", len(name)), zap.Int("max", MaxLogFilenameLen))
		name = name[:MaxLogFilenameLen]
	}
	t.logFilename = name
}

// ExitOnError is true if a reported error requests termination.
func (t *Tracker[C]) ExitOnError() bool { return t.exitOnError }

// SetExitOnError sets whether a reported error requests termination.
func (t *Tracker[C]) SetExitOnError(v bool) { t.exitOnError = v }

// SuppressPrinting is true if reports are not written to stdout.
func (t *Tracker[C]) SuppressPrinting() bool { return t.suppressPrinting }

// SetSuppressPrinting turns printing of reports off or on.
func (t *Tracker[C]) SetSuppressPrinting(v bool) { t.suppressPrinting = v }

// Cleanup returns the registered cleanup callback, possibly nil.
func (t *Tracker[C]) Cleanup() CleanupFunc[C] { return t.cleanup }

// SetCleanup registers f to run once per reported error.
// Nil unregisters.
func (t *Tracker[C]) SetCleanup(f CleanupFunc[C]) { t.cleanup = f }

// HasErrorOccurred is true if an error was reported since the last reset.
func (t *Tracker[C]) HasErrorOccurred() bool { return t.errState.found }

// ErrorFlag returns the code of the latest error.
// It's meaningful only if HasErrorOccurred.
func (t *Tracker[C]) ErrorFlag() int { return t.errState.code }

// ErrorMessage returns the message of the latest error, or "".
func (t *Tracker[C]) ErrorMessage() string { return t.errState.message }

// ErrorFunction returns the name of the routine that reported the latest
// error, or "".
func (t *Tracker[C]) ErrorFunction() string { return t.errState.function }

// ResetErrorStatus forgets the latest error.
func (t *Tracker[C]) ResetErrorStatus() { t.errState = condition{} }

// HasWarningOccurred is true if a warning was reported since the last reset.
func (t *Tracker[C]) HasWarningOccurred() bool { return t.warnState.found }

// WarningFlag returns the code of the latest warning.
func (t *Tracker[C]) WarningFlag() int { return t.warnState.code }

// WarningMessage returns the message of the latest warning, or "".
func (t *Tracker[C]) WarningMessage() string { return t.warnState.message }

// WarningFunction returns the name of the routine that reported the
// latest warning, or "".
func (t *Tracker[C]) WarningFunction() string { return t.warnState.function }

// ResetWarningStatus forgets the latest warning.
func (t *Tracker[C]) ResetWarningStatus() { t.warnState = condition{} }
