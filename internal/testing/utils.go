package testing

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/monopole/errortracker/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertEqualAnyOrder returns true if the two strings, viewed as lines,
// are equal after both are sorted.
func AssertEqualAnyOrder(t *testing.T, s1 string, s2 string) {
	lines1 := strings.Split(s1, "\n")
	sort.Strings(lines1)
	lines2 := strings.Split(s2, "\n")
	sort.Strings(lines2)
	assert.Equal(t, lines1, lines2)
}

// LogPath returns the name of a not yet existing log file
// in a directory that's removed when the test ends.
func LogPath(t *testing.T) string {
	return filepath.Join(t.TempDir(), "errors.log")
}

// ReadLog returns the records in the given log file.
// A missing file has no records.
func ReadLog(t *testing.T, path string) []record.Record {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	defer f.Close()
	recs, err := record.Scan(f, time.Local)
	require.NoError(t, err)
	return recs
}

// Clock is a manually advanced clock.
type Clock struct {
	T time.Time
}

// NewClock returns a clock stopped at a fixed local time.
func NewClock() *Clock {
	return &Clock{T: time.Date(2024, time.March, 7, 9, 5, 3, 0, time.Local)}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time { return c.T }

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) { c.T = c.T.Add(d) }
