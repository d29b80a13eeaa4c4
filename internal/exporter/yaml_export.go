// Package exporter writes command templates to portable YAML documents.
package exporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/VoxDroid/recipr/internal/command"
)

// FormatVersion is the document version written by this package.
const FormatVersion = 1

// Document is the on-disk shape of an exported library.
type Document struct {
	Version  int               `yaml:"version"`
	Commands []command.Command `yaml:"commands"`
}

// Export encodes cmds as a YAML document to w.
func Export(w io.Writer, cmds []command.Command) error {
	if cmds == nil {
		cmds = []command.Command{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Document{Version: FormatVersion, Commands: cmds}); err != nil {
		return fmt.Errorf("encode library: %w", err)
	}
	return enc.Close()
}

// ExportFile writes cmds to dstPath, creating parent directories.
func ExportFile(dstPath string, cmds []command.Command) error {
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return fmt.Errorf("create dst dir: %w", err)
	}
	out, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", dstPath, err)
	}
	if err := Export(out, cmds); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
