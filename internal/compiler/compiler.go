// Package compiler renders an ordered recipe of command instances into script text.
package compiler

import (
	"strings"

	"github.com/VoxDroid/recipr/internal/command"
)

// Fragment is the rendered text of one recipe instance.
type Fragment struct {
	CommandID string `json:"commandId"`
	Name      string `json:"name"`
	Text      string `json:"preview"`
}

// RenderCommand renders a single command. Basic payloads are emitted verbatim.
// Advanced payloads have their placeholders substituted and every enabled,
// satisfied option appended on its own line.
func RenderCommand(c command.Command) string {
	if c.Type != command.Advanced {
		return c.Payload
	}
	lines := []string{command.ReplacePlaceholders(c.Payload, func(name string) (string, bool) {
		if p := c.Parameter(name); p != nil {
			return p.Payload, true
		}
		return "", false
	})}
	for _, o := range c.Options {
		if !o.Enabled || !command.OptionSatisfied(o) {
			continue
		}
		lines = append(lines, renderOption(o))
	}
	return strings.Join(lines, "\n")
}

func renderOption(o command.Option) string {
	return command.ReplacePlaceholders(o.Payload, func(name string) (string, bool) {
		if p := o.Parameter(name); p != nil {
			return p.Payload, true
		}
		return "", false
	})
}

// Preview renders every command, keeping one fragment per source command.
func Preview(cmds []command.Command) []Fragment {
	out := make([]Fragment, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, Fragment{CommandID: c.ID, Name: c.Name, Text: RenderCommand(c)})
	}
	return out
}

// Lines returns the rendered text of each fragment in order.
func Lines(fragments []Fragment) []string {
	out := make([]string, len(fragments))
	for i, f := range fragments {
		out[i] = f.Text
	}
	return out
}

// Script joins fragments into the final script text.
func Script(fragments []Fragment) string {
	return strings.Join(Lines(fragments), "\n")
}

// Render compiles cmds into script text. Identical input always yields
// byte-identical output.
func Render(cmds []command.Command) string {
	return Script(Preview(cmds))
}

// Markdown wraps script in a fenced code block tagged with lang.
func Markdown(script, lang string) string {
	if lang == "" {
		lang = "bat"
	}
	return "```" + lang + "\n" + script + "\n```"
}
