package errortracker

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultLogFilename is where errors are logged unless told otherwise.
	DefaultLogFilename = "error_messages.log"

	// MaxLogFilenameLen is the longest log filename kept; longer names are
	// silently truncated to this many bytes.
	MaxLogFilenameLen = 256

	// MaxThreshold is the default watchdog threshold. It can never be
	// exceeded, so an unconfigured watchdog never fires.
	MaxThreshold = time.Duration(math.MaxInt64)

	// EnvLogFilename overrides Parameters.LogFilename in LoadParameters.
	EnvLogFilename = "ERRTRACK_LOG_FILENAME"
)

// Threshold is the watchdog limit as seen from the outside, an
// hours/minutes/seconds triple. Internally the Tracker keeps a single
// time.Duration.
type Threshold struct {
	Hours   int     `yaml:"hours"`
	Minutes int     `yaml:"minutes"`
	Seconds float64 `yaml:"seconds"`
}

// Duration converts the triple to a duration, clamping at MaxThreshold.
func (th Threshold) Duration() time.Duration {
	total := float64(th.Hours)*3600 + float64(th.Minutes)*60 + th.Seconds
	ns := total * float64(time.Second)
	if ns >= float64(math.MaxInt64) {
		return MaxThreshold
	}
	if ns <= float64(math.MinInt64) {
		return time.Duration(math.MinInt64)
	}
	return time.Duration(ns)
}

// ThresholdOf decomposes a duration into whole hours, whole minutes,
// and the remaining seconds.
func ThresholdOf(d time.Duration) Threshold {
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	return Threshold{Hours: int(h), Minutes: int(m), Seconds: d.Seconds()}
}

func (th Threshold) String() string {
	return fmt.Sprintf("%dh%dm%gs", th.Hours, th.Minutes, th.Seconds)
}

// Parameters is the configuration surface of a Tracker.
type Parameters struct {
	// LogFilename is the file that errors are appended to.
	// It's opened and closed on every logged error.
	LogFilename string `yaml:"log_filename"`

	// ExitOnError, if true, makes every reported error request process
	// termination with the error's code as exit status.
	ExitOnError bool `yaml:"exit_on_error"`

	// SuppressPrinting, if true, keeps reports off standard output.
	SuppressPrinting bool `yaml:"suppress_printing"`

	// TimeoutThreshold is how long the watchdog waits before firing.
	TimeoutThreshold Threshold `yaml:"timeout_threshold"`

	// TimeoutIsError selects the escalation path of a fired watchdog:
	// an error if true, else a warning.
	TimeoutIsError bool `yaml:"timeout_is_error"`

	// TimeoutCode is the code reported when the watchdog fires.
	TimeoutCode int `yaml:"timeout_code"`
}

// DefaultParameters returns the parameters a Tracker starts with.
func DefaultParameters() *Parameters {
	return &Parameters{
		LogFilename:      DefaultLogFilename,
		ExitOnError:      true,
		SuppressPrinting: false,
		TimeoutThreshold: ThresholdOf(MaxThreshold),
		TimeoutIsError:   true,
		TimeoutCode:      0,
	}
}

// Validate looks for trouble.
func (p *Parameters) Validate() error {
	if p.LogFilename == "" {
		return fmt.Errorf("must specify a LogFilename")
	}
	if p.TimeoutThreshold.Duration() < 0 {
		return fmt.Errorf(
			"timeout threshold %s must not be negative", p.TimeoutThreshold)
	}
	return nil
}

// LoadParameters reads parameters from a YAML file on top of the defaults.
// A missing file yields the defaults. The environment variable
// EnvLogFilename, if set, overrides the log filename.
func LoadParameters(path string) (*Parameters, error) {
	p := DefaultParameters()
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read parameters: %w", err)
	}
	if err == nil {
		if err = yaml.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("failed to parse parameters %q: %w", path, err)
		}
	}
	if v := os.Getenv(EnvLogFilename); v != "" {
		p.LogFilename = v
	}
	if err = p.Validate(); err != nil {
		return nil, fmt.Errorf("parameters %q: %w", path, err)
	}
	return p, nil
}

// Save writes the parameters to a YAML file.
func (p *Parameters) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal parameters: %w", err)
	}
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write parameters: %w", err)
	}
	return nil
}
