// Package security flags script lines that look destructive before they are
// published.
package security

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/VoxDroid/recipr/internal/compiler"
)

// ErrUnsafe is returned by CheckAllowed for a line matching a destructive pattern.
var ErrUnsafe = errors.New("command appears destructive or unsafe")

var dangerousPatterns = []*regexp.Regexp{
	// Destructive filesystem ops
	regexp.MustCompile(`(?i)\brm\s+-rf\s+/?$`),
	regexp.MustCompile(`(?i)\brm\s+-rf\s+/`),
	regexp.MustCompile(`(?i)\bmkfs\b`),
	regexp.MustCompile(`(?i)\bdd\s+if=`),
	// fork bombs (e.g. :(){ :|:& };: and %0|%0)
	regexp.MustCompile(`:\(\)\s*\{`),
	regexp.MustCompile(`%0\s*\|\s*%0`),
	// wipe disk
	regexp.MustCompile(`(?i)\bwipefs\b`),
	regexp.MustCompile(`(?i)\bformat\s+[a-z]:`),
	regexp.MustCompile(`(?i)\bdiskpart\b`),
	// recursive quiet deletes of a drive root or the windows directory
	regexp.MustCompile(`(?i)\b(rd|rmdir)\s+/s\s+/q\s+[a-z]:\\?\s*$`),
	regexp.MustCompile(`(?i)\bdel\s+(/[fsq]\s+)+[a-z]:\\(\*|windows)`),
}

// CheckAllowed returns nil if the line looks safe, or ErrUnsafe. Checking is
// conservative and not exhaustive.
func CheckAllowed(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	for _, re := range dangerousPatterns {
		if re.MatchString(line) {
			return ErrUnsafe
		}
	}
	return nil
}

// Finding points at an unsafe line of a rendered recipe item.
type Finding struct {
	Position int
	Name     string
	Line     string
}

func (f Finding) String() string {
	return fmt.Sprintf("#%d %s: %q %s", f.Position+1, f.Name, f.Line, ErrUnsafe)
}

// Scan checks every line of every fragment.
func Scan(fragments []compiler.Fragment) []Finding {
	var out []Finding
	for i, f := range fragments {
		for _, line := range strings.Split(f.Text, "\n") {
			if CheckAllowed(line) != nil {
				out = append(out, Finding{Position: i, Name: f.Name, Line: strings.TrimSpace(line)})
			}
		}
	}
	return out
}
