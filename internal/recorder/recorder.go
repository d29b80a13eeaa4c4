// Package recorder reads a multi-line payload typed or piped on stdin.
package recorder

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ctrlZ ends input on Windows consoles that do not translate it to EOF.
const ctrlZ = "\x1A"

// RecordLines reads lines from r until EOF or Ctrl+Z. Blank lines and lines
// starting with '#' are skipped; other lines keep their indentation.
func RecordLines(r io.Reader) ([]string, error) {
	s := bufio.NewScanner(r)
	var out []string
	for s.Scan() {
		line := strings.TrimRight(s.Text(), " \t\r")
		stop := false
		if i := strings.Index(line, ctrlZ); i >= 0 {
			line, stop = line[:i], true
		}
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			out = append(out, line)
		}
		if stop {
			break
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return out, nil
}

// RecordPayload reads lines like RecordLines and joins them into one payload.
func RecordPayload(r io.Reader) (string, error) {
	lines, err := RecordLines(r)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}
