// Package importer reads exported YAML libraries back into a recipe store.
package importer

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/VoxDroid/recipr/internal/command"
	"github.com/VoxDroid/recipr/internal/exporter"
	"github.com/VoxDroid/recipr/internal/nameutil"
	"github.com/VoxDroid/recipr/internal/recipe"
)

// Policy decides what happens when an imported template's name is taken.
type Policy string

// Conflict policies.
const (
	Skip      Policy = "skip"
	Overwrite Policy = "overwrite"
	Rename    Policy = "rename"
)

// ParsePolicy converts s into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case Skip, Overwrite, Rename:
		return Policy(s), nil
	}
	return "", fmt.Errorf("invalid conflict policy %q: expected skip, overwrite or rename", s)
}

// Summary reports what an import did.
type Summary struct {
	Added       []string
	Overwritten []string
	Skipped     []string
}

// Read decodes a YAML library document.
func Read(r io.Reader) (exporter.Document, error) {
	var doc exporter.Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return doc, nil
		}
		return doc, fmt.Errorf("decode library: %w", err)
	}
	if doc.Version > exporter.FormatVersion {
		return doc, fmt.Errorf("unsupported library version %d", doc.Version)
	}
	return doc, nil
}

// ReadFile decodes the YAML library at path.
func ReadFile(path string) (exporter.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return exporter.Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return Read(f)
}

// Merge adds the document's commands to the store's library. Every command is
// validated before anything is added.
func Merge(s *recipe.Store, doc exporter.Document, policy Policy) (Summary, error) {
	incoming := make([]command.Command, 0, len(doc.Commands))
	for _, c := range doc.Commands {
		c = c.Clone()
		c.Name, _ = nameutil.SanitizeName(c.Name)
		c.SyncParameters()
		if err := c.Validate(); err != nil {
			return Summary{}, err
		}
		incoming = append(incoming, c)
	}

	var sum Summary
	for _, c := range incoming {
		existing, err := s.FindTemplate(c.Name)
		if err != nil {
			c.ID = freshID(s, c.ID)
			if err := s.AddTemplate(c); err != nil {
				return sum, err
			}
			sum.Added = append(sum.Added, c.Name)
			continue
		}
		switch policy {
		case Overwrite:
			c.ID = existing.ID
			if err := s.ReplaceTemplate(c); err != nil {
				return sum, err
			}
			sum.Overwritten = append(sum.Overwritten, c.Name)
		case Rename:
			c.Name = uniqueName(s, c.Name)
			c.ID = freshID(s, c.ID)
			if err := s.AddTemplate(c); err != nil {
				return sum, err
			}
			sum.Added = append(sum.Added, c.Name)
		default:
			sum.Skipped = append(sum.Skipped, c.Name)
		}
	}
	return sum, nil
}

func freshID(s *recipe.Store, id string) string {
	if id == "" {
		return command.NewID()
	}
	if _, err := s.Template(id); err == nil {
		return command.NewID()
	}
	return id
}

func uniqueName(s *recipe.Store, orig string) string {
	name := orig
	for si := 1; ; si++ {
		if _, err := s.FindTemplate(name); err != nil {
			return name
		}
		name = fmt.Sprintf("%s-import-%d", orig, si)
	}
}
