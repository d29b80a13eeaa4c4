// Package draft manages the staging command used while a template is being
// created or edited.
package draft

import (
	"errors"
	"fmt"

	"github.com/VoxDroid/recipr/internal/command"
	"github.com/VoxDroid/recipr/internal/compiler"
	"github.com/VoxDroid/recipr/internal/nameutil"
)

// State is the lifecycle state of the draft workflow.
type State int

const (
	// View means no draft is open.
	View State = iota
	// Creating means a new template is being assembled.
	Creating
	// Editing means an existing template is being changed on a copy.
	Editing
)

func (s State) String() string {
	switch s {
	case View:
		return "view"
	case Creating:
		return "creating"
	case Editing:
		return "editing"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ErrInvalidTransition is returned when an operation is not allowed in the
// current state.
var ErrInvalidTransition = errors.New("invalid draft transition")

// Library is where saved drafts are committed.
type Library interface {
	AddTemplate(c command.Command) error
	ReplaceTemplate(c command.Command) error
}

// Manager owns the single mutable draft shared by every wizard step.
type Manager struct {
	lib   Library
	state State
	draft *command.Command
}

// NewManager returns a Manager in the View state committing to lib.
func NewManager(lib Library) *Manager {
	return &Manager{lib: lib, state: View}
}

// State returns the current state.
func (m *Manager) State() State { return m.state }

// BeginCreate opens a fresh empty draft of type t.
func (m *Manager) BeginCreate(t command.Type) error {
	if m.state != View {
		return fmt.Errorf("begin create from %s: %w", m.state, ErrInvalidTransition)
	}
	d := command.New(t)
	m.draft = &d
	m.state = Creating
	return nil
}

// BeginEdit opens a draft holding a deep copy of src. src itself is never
// modified by the edit workflow.
func (m *Manager) BeginEdit(src command.Command) error {
	if m.state != View {
		return fmt.Errorf("begin edit from %s: %w", m.state, ErrInvalidTransition)
	}
	d := src.Clone()
	m.draft = &d
	m.state = Editing
	return nil
}

// Update applies one wizard step to the draft.
func (m *Manager) Update(fn func(d *command.Command)) error {
	if m.draft == nil {
		return fmt.Errorf("update in %s: %w", m.state, ErrInvalidTransition)
	}
	fn(m.draft)
	return nil
}

// PreviewDraft renders a copy of the draft so that trying out parameter values
// in the preview never leaves custom payloads on the template.
func (m *Manager) PreviewDraft(fill map[string]string) (string, error) {
	if m.draft == nil {
		return "", fmt.Errorf("preview in %s: %w", m.state, ErrInvalidTransition)
	}
	cp := m.draft.Clone()
	for name, v := range fill {
		if p := cp.Parameter(name); p != nil {
			p.Payload = v
		}
	}
	return compiler.RenderCommand(cp), nil
}

// Cancel discards the draft without touching the library.
func (m *Manager) Cancel() {
	m.draft = nil
	m.state = View
}

// Save commits the draft: a new draft is appended to the library, an edited
// draft replaces the library entry with the same id. Recipe instances pulled
// from that entry earlier are not affected. Pasted control and zero-width
// characters are stripped from the name first. On error the draft stays open.
func (m *Manager) Save() (command.Command, error) {
	if m.draft == nil {
		return command.Command{}, fmt.Errorf("save in %s: %w", m.state, ErrInvalidTransition)
	}
	d := m.draft.Clone()
	if name, changed := nameutil.SanitizeName(d.Name); changed {
		d.Name = name
	}
	d.SyncParameters()
	var err error
	switch m.state {
	case Creating:
		err = m.lib.AddTemplate(d)
	case Editing:
		err = m.lib.ReplaceTemplate(d)
	default:
		err = fmt.Errorf("save in %s: %w", m.state, ErrInvalidTransition)
	}
	if err != nil {
		return command.Command{}, err
	}
	m.Cancel()
	return d, nil
}
