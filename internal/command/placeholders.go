package command

import (
	"regexp"
	"strings"
)

// placeholderRe matches a name inside a single bracket pair. Brackets inside
// the name are not allowed, so "[[a]]" only yields the inner "[a]".
var placeholderRe = regexp.MustCompile(`\[([^\[\]\n]+)\]`)

// DefaultPayload returns the literal placeholder form for name, e.g. "[Host]".
func DefaultPayload(name string) string {
	return "[" + name + "]"
}

// ExtractPlaceholders returns the unique placeholder names referenced in text
// in order of first appearance. Empty or malformed brackets are skipped.
func ExtractPlaceholders(text string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		for _, m := range placeholderRe.FindAllStringSubmatch(line, -1) {
			name := m[1]
			if strings.TrimSpace(name) == "" || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// ReplacePlaceholders substitutes every "[name]" in text for which lookup
// reports a value. Unknown placeholders are left as literal text.
func ReplacePlaceholders(text string, lookup func(name string) (string, bool)) string {
	return placeholderRe.ReplaceAllStringFunc(text, func(match string) string {
		name := match[1 : len(match)-1]
		if v, ok := lookup(name); ok {
			return v
		}
		return match
	})
}

// ReconcileParameters rebuilds a parameter list for names. Parameters whose
// name survives keep their id, description and payload; new names get a fresh
// unfilled parameter; the rest are dropped.
func ReconcileParameters(existing []Parameter, names []string) []Parameter {
	byName := make(map[string]Parameter, len(existing))
	for _, p := range existing {
		if _, dup := byName[p.Name]; !dup {
			byName[p.Name] = p
		}
	}
	out := make([]Parameter, 0, len(names))
	for _, n := range names {
		if p, ok := byName[n]; ok {
			out = append(out, p)
			continue
		}
		out = append(out, NewParameter(n))
	}
	return out
}

// SetPayload replaces the payload and, for advanced commands, brings the
// parameter list back in sync with the placeholders it references.
func (c *Command) SetPayload(text string) {
	c.Payload = text
	if c.Type != Advanced {
		c.Parameters = []Parameter{}
		return
	}
	c.Parameters = ReconcileParameters(c.Parameters, ExtractPlaceholders(text))
}

// SyncParameters reconciles the parameter list against the current payload.
func (c *Command) SyncParameters() {
	c.SetPayload(c.Payload)
}
