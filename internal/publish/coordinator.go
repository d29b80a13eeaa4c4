// Package publish sends compiled scripts to a storage collaborator and runs the
// overwrite confirmation protocol.
package publish

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/VoxDroid/recipr/internal/logging"
)

// Request names the destination of a published script.
type Request struct {
	DirectoryName string `json:"directoryName"`
	FileName      string `json:"fileName"`
	Overwrite     bool   `json:"overwrite"`
}

// Result is what a Publisher reports on success.
type Result struct {
	FilePath string `json:"filePath"`
}

// Publisher persists script lines. Implementations return ErrFileExists
// (possibly wrapped) when the target exists and req.Overwrite is false.
type Publisher interface {
	Publish(ctx context.Context, req Request, lines []string) (Result, error)
}

// State is the state of the current publish attempt.
type State int

const (
	// Idle means no attempt is pending.
	Idle State = iota
	// Publishing means a call to the publisher is in flight.
	Publishing
	// Succeeded means the last attempt stored the script.
	Succeeded
	// Conflict means the target exists and overwrite needs confirming.
	Conflict
	// Failed means the publisher reported another error.
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Publishing:
		return "publishing"
	case Succeeded:
		return "succeeded"
	case Conflict:
		return "conflict"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Coordinator drives one publish attempt at a time. It never touches the
// recipe; publishing is non-destructive.
type Coordinator struct {
	pub Publisher

	mu      sync.Mutex
	state   State
	pending *Request
	lines   []string
	result  Result
	err     error
}

// NewCoordinator returns an idle Coordinator using pub.
func NewCoordinator(pub Publisher) *Coordinator {
	return &Coordinator{pub: pub}
}

// State returns the current state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Result returns the result of the last successful attempt.
func (c *Coordinator) Result() Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Err returns the error of the last attempt, if any.
func (c *Coordinator) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Publish trims both names and sends lines without overwriting. Empty names
// are rejected with a *ValidationError before the publisher is called. A
// *ConflictError means the file exists; call ConfirmOverwrite or Abandon.
func (c *Coordinator) Publish(ctx context.Context, directoryName, fileName string, lines []string) (Result, error) {
	req := Request{
		DirectoryName: strings.TrimSpace(directoryName),
		FileName:      strings.TrimSpace(fileName),
	}
	if req.DirectoryName == "" {
		return Result{}, &ValidationError{Field: "directory name", Message: "must not be empty"}
	}
	if req.FileName == "" {
		return Result{}, &ValidationError{Field: "file name", Message: "must not be empty"}
	}
	return c.run(ctx, req, append([]string(nil), lines...), nil)
}

// ConfirmOverwrite repeats the conflicting request with overwrite enabled.
func (c *Coordinator) ConfirmOverwrite(ctx context.Context) (Result, error) {
	return c.repeat(ctx, Conflict, true)
}

// Retry repeats a failed request with the same names and lines.
func (c *Coordinator) Retry(ctx context.Context) (Result, error) {
	return c.repeat(ctx, Failed, false)
}

// Abandon drops a pending conflict and returns to Idle. Nothing was written,
// so there is nothing to undo.
func (c *Coordinator) Abandon() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Publishing {
		return
	}
	c.state = Idle
	c.pending = nil
	c.lines = nil
	c.err = nil
}

func (c *Coordinator) repeat(ctx context.Context, from State, overwrite bool) (Result, error) {
	c.mu.Lock()
	if c.state != from || c.pending == nil {
		st := c.state
		c.mu.Unlock()
		return Result{}, fmt.Errorf("%w (state %s)", ErrNoPending, st)
	}
	req := *c.pending
	if overwrite {
		req.Overwrite = true
	}
	lines := c.lines
	c.mu.Unlock()
	return c.run(ctx, req, lines, &from)
}

// run performs one call to the publisher. When expect is non-nil the state
// must still equal *expect on entry.
func (c *Coordinator) run(ctx context.Context, req Request, lines []string, expect *State) (Result, error) {
	c.mu.Lock()
	if c.state == Publishing || (expect != nil && c.state != *expect) {
		c.mu.Unlock()
		return Result{}, ErrBusy
	}
	c.state = Publishing
	c.pending = &req
	c.lines = lines
	c.err = nil
	c.mu.Unlock()

	logging.Debug().Str("dir", req.DirectoryName).Str("file", req.FileName).Bool("overwrite", req.Overwrite).Int("lines", len(lines)).Msg("publishing recipe")
	res, err := c.pub.Publish(ctx, req, lines)

	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case err == nil:
		c.state = Succeeded
		c.result = res
		c.pending = nil
		c.lines = nil
		logging.Info().Str("path", res.FilePath).Msg("recipe published")
		return res, nil
	case errors.Is(err, ErrFileExists) && !req.Overwrite:
		c.state = Conflict
		c.err = &ConflictError{DirectoryName: req.DirectoryName, FileName: req.FileName}
		logging.Warn().Str("dir", req.DirectoryName).Str("file", req.FileName).Msg("publish target exists")
		return Result{}, c.err
	default:
		c.state = Failed
		c.err = &TransientError{Err: err}
		logging.Error().Err(err).Msg("publish failed")
		return Result{}, c.err
	}
}
