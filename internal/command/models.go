// Package command provides the command template data model, the placeholder
// parser and the readiness predicates used before a recipe is compiled.
package command

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/VoxDroid/recipr/internal/nameutil"
)

// Type distinguishes literal commands from templated ones.
type Type string

const (
	// Basic commands carry a literal payload with no placeholders.
	Basic Type = "basic"
	// Advanced commands carry free-form text that may reference placeholders.
	Advanced Type = "advanced"
)

// ParseType converts s into a Type.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case Basic, Advanced:
		return Type(s), nil
	}
	return "", fmt.Errorf("invalid command type %q: expected basic or advanced", s)
}

// Parameter is a named substitution point inside a payload.
type Parameter struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name" validate:"required"`
	Description string `json:"description" yaml:"description"`
	Payload     string `json:"payload" yaml:"payload"`
}

// Option is an optional flag or switch a command may carry.
type Option struct {
	ID                string      `json:"id" yaml:"id"`
	Name              string      `json:"name" yaml:"name" validate:"required"`
	Enabled           bool        `json:"enabled" yaml:"enabled"`
	ParameterRequired bool        `json:"parameterRequired" yaml:"parameterRequired"`
	Parameters        []Parameter `json:"parameters" yaml:"parameters" validate:"dive"`
	Payload           string      `json:"payload" yaml:"payload"`
}

// Command is either a library template or a recipe instance. Both roles
// share the same shape; which one a value plays depends on where it is stored.
type Command struct {
	ID          string      `json:"id" yaml:"id"`
	Type        Type        `json:"type" yaml:"type" validate:"required,oneof=basic advanced"`
	Name        string      `json:"name" yaml:"name" validate:"required"`
	Description string      `json:"description" yaml:"description"`
	Payload     string      `json:"payload" yaml:"payload" validate:"required"`
	Parameters  []Parameter `json:"parameters" yaml:"parameters" validate:"dive"`
	Options     []Option    `json:"options" yaml:"options" validate:"dive"`
}

var validate = validator.New()

// NewID returns a fresh opaque identifier.
func NewID() string {
	return uuid.NewString()
}

// NewParameter returns an unfilled parameter for name.
func NewParameter(name string) Parameter {
	return Parameter{ID: NewID(), Name: name, Description: "None", Payload: DefaultPayload(name)}
}

// New returns an empty command of type t with a fresh identifier.
func New(t Type) Command {
	return Command{ID: NewID(), Type: t, Parameters: []Parameter{}, Options: []Option{}}
}

// Validate checks that c is fully specified for storage in the library and
// that its name is free of control and zero-width characters.
func (c *Command) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid command %q: %w", c.Name, err)
	}
	if err := nameutil.ValidateName(c.Name); err != nil {
		return fmt.Errorf("invalid command %q: %w", c.Name, err)
	}
	return nil
}

// Clone returns a deep copy of c. Mutating the copy never affects c.
func (c Command) Clone() Command {
	out := c
	out.Parameters = cloneParameters(c.Parameters)
	if c.Options != nil {
		out.Options = make([]Option, len(c.Options))
		for i, o := range c.Options {
			out.Options[i] = o.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of o.
func (o Option) Clone() Option {
	out := o
	out.Parameters = cloneParameters(o.Parameters)
	return out
}

func cloneParameters(ps []Parameter) []Parameter {
	if ps == nil {
		return nil
	}
	out := make([]Parameter, len(ps))
	copy(out, ps)
	return out
}

// Instantiate produces a recipe instance from a library template. The instance
// is a deep copy with its own identifier.
func Instantiate(template Command) Command {
	inst := template.Clone()
	inst.ID = NewID()
	return inst
}

// Parameter returns a pointer to the parameter called name, or nil.
func (c *Command) Parameter(name string) *Parameter {
	for i := range c.Parameters {
		if c.Parameters[i].Name == name {
			return &c.Parameters[i]
		}
	}
	return nil
}

// Option returns a pointer to the option called name, or nil.
func (c *Command) Option(name string) *Option {
	for i := range c.Options {
		if c.Options[i].Name == name {
			return &c.Options[i]
		}
	}
	return nil
}

// Parameter returns a pointer to the option parameter called name, or nil.
func (o *Option) Parameter(name string) *Parameter {
	for i := range o.Parameters {
		if o.Parameters[i].Name == name {
			return &o.Parameters[i]
		}
	}
	return nil
}

// CloneAll deep-copies every command in cmds.
func CloneAll(cmds []Command) []Command {
	out := make([]Command, len(cmds))
	for i, c := range cmds {
		out[i] = c.Clone()
	}
	return out
}
