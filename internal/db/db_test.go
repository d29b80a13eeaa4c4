package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/VoxDroid/recipr/internal/config"
)

func TestInitDBCreatesFileAndSchema(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(config.EnvHome, tmp)
	t.Setenv(config.EnvDB, "")

	dbPath, err := config.DBPath()
	if err != nil {
		t.Fatalf("DBPath(): %v", err)
	}

	db, err := InitDB()
	if err != nil {
		t.Fatalf("InitDB() error: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("db file not created: %v", err)
	}

	for _, table := range []string{"templates", "recipe_items"} {
		var count int
		r := db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name=?", table)
		if err := r.Scan(&count); err != nil {
			t.Fatalf("query schema: %v", err)
		}
		if count != 1 {
			t.Fatalf("expected table %q to exist", table)
		}
	}
}

func TestApplyMigrationsIsRepeatable(t *testing.T) {
	db, err := Open(t.TempDir() + "/again.db")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = db.Close() }()
	if err := ApplyMigrations(db); err != nil {
		t.Fatalf("second ApplyMigrations: %v", err)
	}
}

func TestInitDBCreatesDataDirWithExternalDB(t *testing.T) {
	home := filepath.Join(t.TempDir(), "home")
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvDB, filepath.Join(t.TempDir(), "elsewhere.db"))

	db, err := InitDB()
	if err != nil {
		t.Fatalf("InitDB() error: %v", err)
	}
	defer func() { _ = db.Close() }()
	if fi, err := os.Stat(home); err != nil || !fi.IsDir() {
		t.Fatalf("expected data dir %s to exist: %v", home, err)
	}
}
