package record_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	. "github.com/monopole/errortracker/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var when = time.Date(2024, time.March, 7, 9, 5, 3, 0, time.UTC)

func TestRecord_LogBlock(t *testing.T) {
	r := Record{
		Severity: SeverityError,
		Time:     when,
		Function: "solve",
		Code:     200,
		Message:  "matrix is singular",
	}
	assert.Equal(t, `
***** ERROR *****
03/07/2024; 09:05:03
Function: solve
Error Flag: 200
Message:
matrix is singular

`, r.LogBlock())
}

func TestRecord_PrintBlock(t *testing.T) {
	var testCases = map[string]struct {
		rec      Record
		expected string
	}{
		"error": {
			rec: Record{Function: "f", Code: 1, Message: "m"},
			expected: `
***** ERROR *****
Function: f
Error Flag: 1
Message:
m

`,
		},
		"warning": {
			rec: Record{
				Severity: SeverityWarning, Function: "g", Code: -3, Message: "w"},
			expected: `
***** WARNING *****
Function: g
Warning Flag: -3
Message:
w

`,
		},
	}
	for n, tc := range testCases {
		t.Run(n, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.rec.PrintBlock())
		})
	}
}

func TestScan(t *testing.T) {
	var testCases = map[string]struct {
		input    string
		expected []Record
	}{
		"empty": {
			input: "",
		},
		"blankLinesOnly": {
			input: "\n\n\n",
		},
		"twoLogged": {
			input: Record{Time: when, Function: "a", Code: 1, Message: "one"}.LogBlock() +
				Record{Time: when.Add(time.Hour), Function: "b", Code: 2, Message: "two"}.LogBlock(),
			expected: []Record{
				{Time: when, Function: "a", Code: 1, Message: "one"},
				{Time: when.Add(time.Hour), Function: "b", Code: 2, Message: "two"},
			},
		},
		"printedMixed": {
			input: Record{Function: "a", Code: 1, Message: "one"}.PrintBlock() +
				Record{Severity: SeverityWarning, Function: "b", Code: 2, Message: "two"}.PrintBlock(),
			expected: []Record{
				{Function: "a", Code: 1, Message: "one"},
				{Severity: SeverityWarning, Function: "b", Code: 2, Message: "two"},
			},
		},
		"multiLineMessage": {
			input: Record{Time: when, Function: "a", Code: 9, Message: "first\nsecond"}.LogBlock(),
			expected: []Record{
				{Time: when, Function: "a", Code: 9, Message: "first\nsecond"},
			},
		},
		"lineLongerThanScannerDefault": {
			input: Record{Time: when, Function: "a", Code: 200,
				Message: strings.Repeat("x", 70000)}.LogBlock(),
			expected: []Record{
				{Time: when, Function: "a", Code: 200,
					Message: strings.Repeat("x", 70000)},
			},
		},
		"trailingBlankLinesDropped": {
			input: Record{Time: when, Function: "a", Code: 1, Message: "one\n\n"}.LogBlock(),
			expected: []Record{
				{Time: when, Function: "a", Code: 1, Message: "one"},
			},
		},
		"emptyFunctionAndMessage": {
			input: Record{Time: when, Code: -1}.LogBlock(),
			expected: []Record{
				{Time: when, Code: -1},
			},
		},
	}
	for n, tc := range testCases {
		t.Run(n, func(t *testing.T) {
			recs, err := Scan(strings.NewReader(tc.input), time.UTC)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.expected, recs); diff != "" {
				t.Errorf("records mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScan_Malformed(t *testing.T) {
	var testCases = map[string]struct {
		input       string
		errContains string
	}{
		"junkBeforeHeader": {
			input:       "hello\n" + ErrorHeader + "\n",
			errContains: "appears before any record header",
		},
		"truncated": {
			input:       "\n" + ErrorHeader + "\nFunction: f\n",
			errContains: "record truncated",
		},
		"badFlag": {
			input:       "\n" + ErrorHeader + "\nFunction: f\nError Flag: x\nMessage:\nm\n",
			errContains: "bad flag",
		},
		"wrongLabel": {
			input:       "\n" + WarningHeader + "\nFunction: f\nError Flag: 1\nMessage:\nm\n",
			errContains: "expected \"Warning Flag: \"",
		},
	}
	for n, tc := range testCases {
		t.Run(n, func(t *testing.T) {
			_, err := Scan(strings.NewReader(tc.input), time.UTC)
			if !assert.Error(t, err) {
				t.Fatal("expecting an error")
			}
			assert.Contains(t, err.Error(), tc.errContains)
		})
	}
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, ErrorHeader, SeverityError.Header())
	assert.Equal(t, WarningHeader, SeverityWarning.Header())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "severity(7)", Severity(7).String())
}
