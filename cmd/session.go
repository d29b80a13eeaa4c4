package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/VoxDroid/recipr/internal/command"
	"github.com/VoxDroid/recipr/internal/db"
	"github.com/VoxDroid/recipr/internal/logging"
	"github.com/VoxDroid/recipr/internal/recipe"
	"github.com/VoxDroid/recipr/internal/registry"
)

// session is the library and recipe loaded from the database for one CLI
// invocation.
type session struct {
	repo  *registry.Repository
	store *recipe.Store
}

func openSession() (*session, error) {
	dbConn, err := db.InitDB()
	if err != nil {
		return nil, err
	}
	repo := registry.NewRepository(dbConn)
	snap, err := repo.Load()
	if err != nil {
		_ = repo.Close()
		return nil, err
	}
	store := recipe.NewStore()
	store.Restore(snap)
	logging.Debug().Int("templates", len(snap.Library)).Int("recipe", len(snap.Recipe)).Msg("session loaded")
	return &session{repo: repo, store: store}, nil
}

// withSession runs fn on a loaded session. When persist is set the session is
// written back after fn succeeds.
func withSession(persist bool, fn func(s *session) error) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.repo.Close() }()
	if err := fn(s); err != nil {
		return err
	}
	if !persist {
		return nil
	}
	if err := s.repo.Save(s.store.Snapshot()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// resolveInstance finds a recipe instance by 1-based position or by id.
func resolveInstance(s *recipe.Store, ref string) (command.Command, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		return s.InstanceAt(n - 1)
	}
	for _, c := range s.Recipe() {
		if c.ID == ref {
			return c, nil
		}
	}
	return command.Command{}, fmt.Errorf("recipe item %q: %w", ref, recipe.ErrNotFound)
}

// findTemplate resolves ref like Store.FindTemplate and, when nothing
// matches, suggests the closest template name.
func findTemplate(s *recipe.Store, ref string) (command.Command, error) {
	c, err := s.FindTemplate(ref)
	if err == nil {
		return c, nil
	}
	best, bestDist := "", -1
	for _, t := range s.Library() {
		d := levenshtein.ComputeDistance(strings.ToLower(ref), strings.ToLower(t.Name))
		if bestDist < 0 || d < bestDist {
			best, bestDist = t.Name, d
		}
	}
	if bestDist >= 0 && bestDist <= 3 {
		return c, fmt.Errorf("%w; did you mean '%s'?", err, best)
	}
	return c, err
}

// parseAssignments splits name=value pairs.
func parseAssignments(pairs []string) ([][2]string, error) {
	out := make([][2]string, 0, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid assignment %q: expected name=value", p)
		}
		out = append(out, [2]string{strings.TrimSpace(name), value})
	}
	return out, nil
}
