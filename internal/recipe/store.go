// Package recipe holds the template library, the recipe under construction and
// its rendered preview.
package recipe

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/VoxDroid/recipr/internal/command"
	"github.com/VoxDroid/recipr/internal/compiler"
)

// ErrNotFound is returned when a command cannot be found by identity.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a template with the same identity already exists.
var ErrDuplicate = errors.New("already exists")

// Snapshot is a detached copy of the store's authoritative collections.
type Snapshot struct {
	Library []command.Command
	Recipe  []command.Command
}

// Store owns the template library, the destination sequence (the recipe) and
// the preview derived from it. Every collection holds its own copies; nothing
// handed in or out of the store is aliased.
type Store struct {
	mu          sync.Mutex
	library     []command.Command
	destination []command.Command
	preview     []compiler.Fragment
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Restore replaces both collections with copies of snap and drops the preview.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.library = command.CloneAll(snap.Library)
	s.destination = command.CloneAll(snap.Recipe)
	s.preview = nil
}

// Snapshot returns copies of the library and the recipe.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Library: command.CloneAll(s.library), Recipe: command.CloneAll(s.destination)}
}

// Library returns a copy of the template library.
func (s *Store) Library() []command.Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	return command.CloneAll(s.library)
}

// Template returns a copy of the template with the given id.
func (s *Store) Template(id string) (command.Command, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.library, id)
	if i < 0 {
		return command.Command{}, fmt.Errorf("template %s: %w", id, ErrNotFound)
	}
	return s.library[i].Clone(), nil
}

// FindTemplate resolves ref as a template id first and then as a name.
func (s *Store) FindTemplate(ref string) (command.Command, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.library, ref); i >= 0 {
		return s.library[i].Clone(), nil
	}
	if i := s.nameIndex(ref); i >= 0 {
		return s.library[i].Clone(), nil
	}
	return command.Command{}, fmt.Errorf("template %q: %w", ref, ErrNotFound)
}

// nameIndex returns the library position of the template called name, or -1.
// Callers hold s.mu.
func (s *Store) nameIndex(name string) int {
	for i, c := range s.library {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// AddTemplate validates c and appends a copy of it to the library. Template
// names are unique within the library.
func (s *Store) AddTemplate(c command.Command) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexOf(s.library, c.ID) >= 0 {
		return fmt.Errorf("template %s: %w", c.ID, ErrDuplicate)
	}
	if s.nameIndex(c.Name) >= 0 {
		return fmt.Errorf("template name %q: %w", c.Name, ErrDuplicate)
	}
	s.library = append(s.library, c.Clone())
	return nil
}

// ReplaceTemplate overwrites the library entry sharing c's id. Recipe
// instances previously pulled from that template are left untouched.
func (s *Store) ReplaceTemplate(c command.Command) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.library, c.ID)
	if i < 0 {
		return fmt.Errorf("template %s: %w", c.ID, ErrNotFound)
	}
	if j := s.nameIndex(c.Name); j >= 0 && j != i {
		return fmt.Errorf("template name %q: %w", c.Name, ErrDuplicate)
	}
	s.library[i] = c.Clone()
	return nil
}

// RemoveTemplate deletes a template from the library.
func (s *Store) RemoveTemplate(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.library, id)
	if i < 0 {
		return fmt.Errorf("template %s: %w", id, ErrNotFound)
	}
	s.library = append(s.library[:i], s.library[i+1:]...)
	return nil
}

type nameSource []command.Command

func (n nameSource) String(i int) string { return n[i].Name }
func (n nameSource) Len() int            { return len(n) }

// SearchTemplates fuzzy-matches query against template names, best match
// first. An empty query returns the whole library.
func (s *Store) SearchTemplates(query string) []command.Command {
	lib := s.Library()
	if query == "" {
		return lib
	}
	matches := fuzzy.FindFrom(query, nameSource(lib))
	out := make([]command.Command, 0, len(matches))
	for _, m := range matches {
		out = append(out, lib[m.Index])
	}
	return out
}

// AddToRecipe instantiates the template with the given id and appends the
// instance to the recipe.
func (s *Store) AddToRecipe(templateID string) (command.Command, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.library, templateID)
	if i < 0 {
		return command.Command{}, fmt.Errorf("template %s: %w", templateID, ErrNotFound)
	}
	inst := command.Instantiate(s.library[i])
	s.destination = append(s.destination, inst)
	return inst.Clone(), nil
}

// RemoveFromRecipe deletes the instance with the given id.
func (s *Store) RemoveFromRecipe(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.destination, id)
	if i < 0 {
		return fmt.Errorf("recipe item %s: %w", id, ErrNotFound)
	}
	s.destination = append(s.destination[:i], s.destination[i+1:]...)
	return nil
}

// Reorder moves the instance at from to to.
func (s *Store) Reorder(from, to int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destination = Reorder(s.destination, from, to)
}

// ClearRecipe empties the recipe and its preview together.
func (s *Store) ClearRecipe() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destination = nil
	s.preview = nil
}

// Recipe returns a copy of the recipe in order.
func (s *Store) Recipe() []command.Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	return command.CloneAll(s.destination)
}

// InstanceAt returns a copy of the instance at the 0-based position i.
func (s *Store) InstanceAt(i int) (command.Command, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.destination) {
		return command.Command{}, fmt.Errorf("recipe position %d: %w", i+1, ErrNotFound)
	}
	return s.destination[i].Clone(), nil
}

// UpdateInstance applies fn to a working copy of the instance with the given
// id and stores the result only when fn succeeds. The id cannot be changed.
func (s *Store) UpdateInstance(id string, fn func(c *command.Command) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.destination, id)
	if i < 0 {
		return fmt.Errorf("recipe item %s: %w", id, ErrNotFound)
	}
	work := s.destination[i].Clone()
	if err := fn(&work); err != nil {
		return err
	}
	work.ID = id
	s.destination[i] = work
	return nil
}

// SetParameter fills the named parameter of a recipe instance.
func (s *Store) SetParameter(id, name, value string) error {
	return s.UpdateInstance(id, func(c *command.Command) error {
		p := c.Parameter(name)
		if p == nil {
			return fmt.Errorf("parameter %q: %w", name, ErrNotFound)
		}
		p.Payload = value
		return nil
	})
}

// SetOption enables or disables the named option of a recipe instance.
func (s *Store) SetOption(id, name string, enabled bool) error {
	return s.UpdateInstance(id, func(c *command.Command) error {
		o := c.Option(name)
		if o == nil {
			return fmt.Errorf("option %q: %w", name, ErrNotFound)
		}
		o.Enabled = enabled
		return nil
	})
}

// SetOptionParameter fills a parameter of the named option of a recipe instance.
func (s *Store) SetOptionParameter(id, option, name, value string) error {
	return s.UpdateInstance(id, func(c *command.Command) error {
		o := c.Option(option)
		if o == nil {
			return fmt.Errorf("option %q: %w", option, ErrNotFound)
		}
		p := o.Parameter(name)
		if p == nil {
			return fmt.Errorf("option %q parameter %q: %w", option, name, ErrNotFound)
		}
		p.Payload = value
		return nil
	})
}

// Warnings lists recipe instances that are not yet ready.
func (s *Store) Warnings() []command.Warning {
	return command.Warnings(s.Recipe())
}

// SetPreview recomputes the preview from the current recipe and returns it.
// The preview is a snapshot; call SetPreview again after later mutations.
func (s *Store) SetPreview() []compiler.Fragment {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preview = compiler.Preview(s.destination)
	return append([]compiler.Fragment(nil), s.preview...)
}

// Preview returns the last computed preview.
func (s *Store) Preview() []compiler.Fragment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]compiler.Fragment(nil), s.preview...)
}

func indexOf(cmds []command.Command, id string) int {
	for i := range cmds {
		if cmds[i].ID == id {
			return i
		}
	}
	return -1
}
