package global

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/monopole/errortracker"
	. "github.com/monopole/errortracker/internal/testing"
	"github.com/stretchr/testify/assert"
)

// fakeExit records exit codes instead of exiting.
func fakeExit(t *testing.T) (*[]int, *bytes.Buffer) {
	var codes []int
	var errOut bytes.Buffer
	oldExit, oldStderr := exit, stderr
	exit = func(code int) { codes = append(codes, code) }
	stderr = &errOut
	t.Cleanup(func() { exit, stderr = oldExit, oldStderr })
	return &codes, &errOut
}

func TestExit(t *testing.T) {
	var testCases = map[string]struct {
		err      error
		expected []int
		stderr   string
	}{
		"nil": {},
		"exitRequest": {
			err:      &errortracker.ExitError{Code: 4},
			expected: []int{4},
		},
		"wrappedExitRequest": {
			err:      fmt.Errorf("outer: %w", &errortracker.ExitError{Code: 5}),
			expected: []int{5},
		},
		"ioFailure": {
			err:      fmt.Errorf("writing error log \"x\" - disk full"),
			expected: []int{1},
			stderr:   "writing error log \"x\" - disk full\n",
		},
	}
	for n, tc := range testCases {
		t.Run(n, func(t *testing.T) {
			codes, errOut := fakeExit(t)
			Exit(tc.err)
			assert.Equal(t, tc.expected, *codes)
			assert.Equal(t, tc.stderr, errOut.String())
		})
	}
}

func TestDefault(t *testing.T) {
	codes, _ := fakeExit(t)
	tr := Default()
	assert.Same(t, tr, Default())
	old := tr.Parameters()
	t.Cleanup(func() {
		tr.SetLogFilename(old.LogFilename)
		tr.SetSuppressPrinting(old.SuppressPrinting)
		tr.ResetErrorStatus()
		tr.ResetWarningStatus()
		tr.ResetTimeout()
	})
	tr.SetLogFilename(LogPath(t))
	tr.SetSuppressPrinting(true)

	ReportWarning("f", "careful", 2)
	assert.True(t, tr.HasWarningOccurred())
	assert.Empty(t, *codes)

	ReportError("g", "broken", 3)
	assert.Equal(t, []int{3}, *codes)
	assert.Len(t, ReadLog(t, tr.LogFilename()), 1)

	ReportErrorWithContext("h", "broken again", 6, "ctx")
	assert.Equal(t, []int{3, 6}, *codes)

	CheckTimeout("poll")
	assert.Equal(t, []int{3, 6, errortracker.CodeTimeoutNotStarted}, *codes)

	StartTiming()
	CheckTimeout("poll")
	assert.Equal(t, []int{3, 6, errortracker.CodeTimeoutNotStarted}, *codes)
}
