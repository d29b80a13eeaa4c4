// Package nameutil validates and cleans user supplied names.
package nameutil

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ValidateName checks whether the provided name is acceptable for a command
// template. It rejects empty names, invalid UTF-8, control characters and
// zero-width characters. It does NOT mutate the input; use SanitizeName first
// when desired.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("invalid name: name cannot be empty")
	}
	if !utf8.ValidString(name) {
		return fmt.Errorf("invalid name: contains invalid encoding")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return fmt.Errorf("invalid name: contains control character U+%04X (%q)", r, r)
		}
		if isZeroWidth(r) {
			return fmt.Errorf("invalid name: contains zero-width character U+%04X", r)
		}
	}
	return nil
}

// ValidatePathSegment checks that name can be used as a single directory or
// file name under a publish root: a valid name without separators that does
// not climb out of its parent.
func ValidatePathSegment(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid name: %q is not allowed", name)
	}
	if strings.ContainsAny(name, `/\:`) {
		return fmt.Errorf("invalid name: %q must not contain path separators", name)
	}
	return nil
}

// SanitizeName removes control and zero-width characters commonly introduced
// by copy/paste (e.g. U+200B) and trims surrounding whitespace. It reports
// whether anything changed.
func SanitizeName(name string) (string, bool) {
	if name == "" {
		return name, false
	}
	out := make([]rune, 0, len(name))
	changed := false
	for _, r := range name {
		if unicode.IsControl(r) || isZeroWidth(r) {
			changed = true
			continue
		}
		out = append(out, r)
	}
	res := strings.TrimSpace(string(out))
	if res != name {
		changed = true
	}
	return res, changed
}

func isZeroWidth(r rune) bool {
	switch r {
	case '\u200B', '\u200C', '\u200D', '\uFEFF':
		return true
	}
	return false
}
