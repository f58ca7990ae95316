package errortracker

import (
	"fmt"
	"io"
	"os"

	"github.com/monopole/errortracker/internal/record"
	"go.uber.org/zap"
)

// LogError appends one timestamped error record to the log file, creating
// the file if needed. The file is opened and closed on every call so each
// record is independent of the others. LogError does not touch the error
// state; ReportError calls it after doing so.
func (t *Tracker[C]) LogError(function, message string, code int) error {
	r := record.Record{
		Severity: record.SeverityError,
		Time:     t.now(),
		Function: function,
		Code:     code,
		Message:  message,
	}
	f, err := os.OpenFile(
		t.logFilename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening error log %q - %w", t.logFilename, err)
	}
	if _, err = io.WriteString(f, r.LogBlock()); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing error log %q - %w", t.logFilename, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("closing error log %q - %w", t.logFilename, err)
	}
	t.logger.Debug("error logged",
		zap.String("file", t.logFilename),
		zap.String("function", function),
		zap.Int("code", code))
	return nil
}
