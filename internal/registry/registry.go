// Package registry persists the template library and the recipe session.
package registry

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/VoxDroid/recipr/internal/command"
	"github.com/VoxDroid/recipr/internal/recipe"
)

// Repository provides storage for command templates and recipe items.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository using db.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListTemplates returns every stored template in library order.
func (r *Repository) ListTemplates() ([]command.Command, error) {
	return r.queryCommands("SELECT data FROM templates ORDER BY position ASC, rowid ASC")
}

// LoadRecipe returns the stored recipe items in order.
func (r *Repository) LoadRecipe() ([]command.Command, error) {
	return r.queryCommands("SELECT data FROM recipe_items ORDER BY position ASC")
}

// Load reads the library and the recipe into a snapshot.
func (r *Repository) Load() (recipe.Snapshot, error) {
	lib, err := r.ListTemplates()
	if err != nil {
		return recipe.Snapshot{}, err
	}
	items, err := r.LoadRecipe()
	if err != nil {
		return recipe.Snapshot{}, err
	}
	return recipe.Snapshot{Library: lib, Recipe: items}, nil
}

// Save writes the whole snapshot atomically: the stored library is rewritten
// in snapshot order and the recipe is replaced.
func (r *Repository) Save(snap recipe.Snapshot) error {
	trx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = trx.Rollback() }()

	if _, err := trx.Exec("DELETE FROM templates"); err != nil {
		return err
	}
	for i, c := range snap.Library {
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshal template: %w", err)
		}
		if _, err := trx.Exec("INSERT INTO templates (id, position, name, type, data) VALUES (?, ?, ?, ?, ?)",
			c.ID, i+1, c.Name, string(c.Type), string(data)); err != nil {
			return fmt.Errorf("insert template %q: %w", c.Name, err)
		}
	}
	if err := r.replaceRecipeTx(trx, snap.Recipe); err != nil {
		return err
	}
	return trx.Commit()
}

func (r *Repository) replaceRecipeTx(trx *sql.Tx, cmds []command.Command) error {
	if _, err := trx.Exec("DELETE FROM recipe_items"); err != nil {
		return err
	}
	for i, c := range cmds {
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshal recipe item: %w", err)
		}
		if _, err := trx.Exec("INSERT INTO recipe_items (id, position, data) VALUES (?, ?, ?)", c.ID, i+1, string(data)); err != nil {
			return fmt.Errorf("insert recipe item: %w", err)
		}
	}
	return nil
}

func (r *Repository) queryCommands(query string) ([]command.Command, error) {
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []command.Command
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		c, err := decode(data)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func decode(data string) (command.Command, error) {
	var c command.Command
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return command.Command{}, fmt.Errorf("unmarshal command: %w", err)
	}
	return c, nil
}
