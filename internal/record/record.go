package record

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Severity distinguishes errors from warnings.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

const (
	// ErrorHeader is the sentinel line that opens every error record.
	ErrorHeader = "***** ERROR *****"
	// WarningHeader opens every printed warning record.
	WarningHeader = "***** WARNING *****"
	// TimeLayout formats the date line of a logged record,
	// e.g. "03/14/2025; 09:26:53".
	TimeLayout = "01/02/2006; 15:04:05"
	// LineFeed makes it easier to find places where a linefeed is used.
	LineFeed = '\n'
	// MaxLineLen is the longest line Scan accepts. Messages have no
	// length limit of their own.
	MaxLineLen = 64 * 1024 * 1024

	functionLabel  = "Function: "
	errorFlagLabel = "Error Flag: "
	messageLabel   = "Message:"

	// Warnings name their code differently; Scan relies on the label
	// matching the header's severity.
	warningFlagLabel = "Warning Flag: "
)

// Header returns the sentinel line for the severity.
func (s Severity) Header() string {
	if s == SeverityWarning {
		return WarningHeader
	}
	return ErrorHeader
}

func (s Severity) flagLabel() string {
	if s == SeverityWarning {
		return warningFlagLabel
	}
	return errorFlagLabel
}

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "severity(" + strconv.Itoa(int(s)) + ")"
	}
}

// Record is one reported error or warning.
type Record struct {
	Severity Severity
	// Time is zero for records that were only printed.
	Time     time.Time
	Function string
	Code     int
	Message  string
}

// PrintBlock renders the record the way it appears on standard output,
// i.e. without a date line.
func (r Record) PrintBlock() string {
	return r.block(false)
}

// LogBlock renders the record the way it is appended to the log file.
func (r Record) LogBlock() string {
	return r.block(true)
}

func (r Record) block(withTime bool) string {
	var b strings.Builder
	b.WriteByte(LineFeed)
	b.WriteString(r.Severity.Header())
	b.WriteByte(LineFeed)
	if withTime {
		b.WriteString(r.Time.Format(TimeLayout))
		b.WriteByte(LineFeed)
	}
	b.WriteString(functionLabel)
	b.WriteString(r.Function)
	b.WriteByte(LineFeed)
	b.WriteString(r.Severity.flagLabel())
	b.WriteString(strconv.Itoa(r.Code))
	b.WriteByte(LineFeed)
	b.WriteString(messageLabel)
	b.WriteByte(LineFeed)
	b.WriteString(r.Message)
	b.WriteByte(LineFeed)
	b.WriteByte(LineFeed)
	return b.String()
}

func (r Record) String() string {
	return fmt.Sprintf("%s in %q (%d): %s", r.Severity, r.Function, r.Code, r.Message)
}
