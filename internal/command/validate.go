package command

import (
	"fmt"
	"strings"
)

// Filled reports whether the parameter carries a value other than its default
// placeholder form.
func (p Parameter) Filled() bool {
	return p.Payload != DefaultPayload(p.Name)
}

// AllRequiredParametersFilled reports whether every parameter of c is filled.
// A command without parameters is vacuously filled.
func AllRequiredParametersFilled(c Command) bool {
	for _, p := range c.Parameters {
		if !p.Filled() {
			return false
		}
	}
	return true
}

// OptionSatisfied reports whether o needs no parameters or has them all filled.
func OptionSatisfied(o Option) bool {
	if !o.ParameterRequired {
		return true
	}
	for _, p := range o.Parameters {
		if !p.Filled() {
			return false
		}
	}
	return true
}

// AllEnabledOptionParametersFilled reports whether every enabled option that
// requires parameters has them all filled. Disabled options are ignored.
func AllEnabledOptionParametersFilled(c Command) bool {
	for _, o := range c.Options {
		if o.Enabled && !OptionSatisfied(o) {
			return false
		}
	}
	return true
}

// Ready reports whether c passes every readiness predicate.
func Ready(c Command) bool {
	return AllRequiredParametersFilled(c) && AllEnabledOptionParametersFilled(c)
}

// FormatOptionParameters joins parameter name/payload pairs for display,
// e.g. "user: admin, port: 22".
func FormatOptionParameters(params []Parameter) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, fmt.Sprintf("%s: %s", p.Name, p.Payload))
	}
	return strings.Join(parts, ", ")
}

// Warning flags a recipe instance that will compile with placeholder text.
type Warning struct {
	Position int
	ID       string
	Name     string
	Unfilled []string
}

func (w Warning) String() string {
	return fmt.Sprintf("#%d %s: parameters not yet filled (%s)", w.Position+1, w.Name, strings.Join(w.Unfilled, ", "))
}

// Warnings lists the instances in cmds that are not ready. Warnings never block
// compilation; unfilled parameters render as their placeholder text.
func Warnings(cmds []Command) []Warning {
	var out []Warning
	for i, c := range cmds {
		if Ready(c) {
			continue
		}
		w := Warning{Position: i, ID: c.ID, Name: c.Name}
		for _, p := range c.Parameters {
			if !p.Filled() {
				w.Unfilled = append(w.Unfilled, p.Name)
			}
		}
		for _, o := range c.Options {
			if !o.Enabled || OptionSatisfied(o) {
				continue
			}
			for _, p := range o.Parameters {
				if !p.Filled() {
					w.Unfilled = append(w.Unfilled, o.Name+"."+p.Name)
				}
			}
		}
		out = append(out, w)
	}
	return out
}
