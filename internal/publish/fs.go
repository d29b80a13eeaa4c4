package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/VoxDroid/recipr/internal/nameutil"
)

// FSPublisher stores scripts as <root>/<directory>/<file> on an afero filesystem.
type FSPublisher struct {
	fs   afero.Fs
	root string
}

// NewFSPublisher returns a publisher writing below root on fs.
func NewFSPublisher(fs afero.Fs, root string) *FSPublisher {
	return &FSPublisher{fs: fs, root: root}
}

// NewOsPublisher returns a publisher writing below root on the local disk.
func NewOsPublisher(root string) *FSPublisher {
	return NewFSPublisher(afero.NewOsFs(), root)
}

// Root returns the directory scripts are published under.
func (p *FSPublisher) Root() string { return p.root }

// Publish writes lines joined by "\n". Without req.Overwrite an existing file
// yields ErrFileExists and is left untouched; with it the file is replaced or
// created, whichever applies.
func (p *FSPublisher) Publish(ctx context.Context, req Request, lines []string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := nameutil.ValidatePathSegment(req.DirectoryName); err != nil {
		return Result{}, &ValidationError{Field: "directory name", Message: segmentReason(err)}
	}
	if err := nameutil.ValidatePathSegment(req.FileName); err != nil {
		return Result{}, &ValidationError{Field: "file name", Message: segmentReason(err)}
	}
	dir := filepath.Join(p.root, req.DirectoryName)
	if err := p.fs.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create publish dir: %w", err)
	}
	path := filepath.Join(dir, req.FileName)

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !req.Overwrite {
		exists, err := afero.Exists(p.fs, path)
		if err != nil {
			return Result{}, fmt.Errorf("stat %s: %w", path, err)
		}
		if exists {
			return Result{}, fmt.Errorf("%s: %w", path, ErrFileExists)
		}
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := p.fs.OpenFile(path, flags, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return Result{}, fmt.Errorf("%s: %w", path, ErrFileExists)
		}
		return Result{}, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := f.WriteString(strings.Join(lines, "\n")); err != nil {
		_ = f.Close()
		return Result{}, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return Result{}, fmt.Errorf("close %s: %w", path, err)
	}
	return Result{FilePath: path}, nil
}

// segmentReason drops the generic prefix of a nameutil error so that it reads
// naturally after the field name.
func segmentReason(err error) string {
	return strings.TrimPrefix(err.Error(), "invalid name: ")
}
