package record

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Scan reads a stream of record blocks, e.g. the contents of an error log
// file or captured standard output, and returns the records in order.
//
// A header line (the sentinel) starts a new record. Everything up to the
// next header belongs to that record; trailing blank lines are separators,
// not message text. A date line directly after the header is optional, so
// printed blocks scan as well as logged ones. Time is interpreted in loc.
//
// Since trailing blank lines are dropped, a message that ends in blank
// lines reads back without them.
func Scan(r io.Reader, loc *time.Location) ([]Record, error) {
	var (
		result  []Record
		current []string
		lineNum int
		start   int
		sev     Severity
		inBlock bool
	)
	flush := func() error {
		if !inBlock {
			return nil
		}
		rec, err := parseBlock(sev, current, start, loc)
		if err != nil {
			return err
		}
		result = append(result, rec)
		return nil
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLen)
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if s, ok := headerSeverity(line); ok {
			if err := flush(); err != nil {
				return nil, err
			}
			inBlock = true
			sev = s
			start = lineNum + 1
			current = current[:0]
			continue
		}
		if !inBlock {
			if strings.TrimSpace(line) != "" {
				return nil, fmt.Errorf(
					"line %d: %q appears before any record header", lineNum, line)
			}
			continue
		}
		current = append(current, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning records: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return result, nil
}

func headerSeverity(line string) (Severity, bool) {
	switch line {
	case ErrorHeader:
		return SeverityError, true
	case WarningHeader:
		return SeverityWarning, true
	default:
		return 0, false
	}
}

func parseBlock(
	sev Severity, lines []string, firstLine int, loc *time.Location) (Record, error) {
	rec := Record{Severity: sev}
	i := 0
	next := func(prefix string) (string, error) {
		if i >= len(lines) {
			return "", fmt.Errorf(
				"line %d: record truncated, expected %q", firstLine+i, prefix)
		}
		line := lines[i]
		if !strings.HasPrefix(line, prefix) {
			return "", fmt.Errorf(
				"line %d: expected %q, got %q", firstLine+i, prefix, line)
		}
		i++
		return strings.TrimPrefix(line, prefix), nil
	}
	if i < len(lines) {
		if t, err := time.ParseInLocation(TimeLayout, lines[i], loc); err == nil {
			rec.Time = t
			i++
		}
	}
	var err error
	if rec.Function, err = next(functionLabel); err != nil {
		return rec, err
	}
	flag, err := next(sev.flagLabel())
	if err != nil {
		return rec, err
	}
	if rec.Code, err = strconv.Atoi(flag); err != nil {
		return rec, fmt.Errorf("line %d: bad flag %q - %w", firstLine+i-1, flag, err)
	}
	if _, err = next(messageLabel); err != nil {
		return rec, err
	}
	body := lines[i:]
	for len(body) > 0 && body[len(body)-1] == "" {
		body = body[:len(body)-1]
	}
	rec.Message = strings.Join(body, "\n")
	return rec, nil
}
