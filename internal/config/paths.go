// Package config resolves where recipr keeps its data and how it reaches
// its publish target.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variables understood by recipr.
const (
	EnvHome        = "RECIPR_HOME"
	EnvDB          = "RECIPR_DB"
	EnvPublishRoot = "RECIPR_PUBLISH_ROOT"
	EnvRemote      = "RECIPR_REMOTE"
	EnvLogLevel    = "RECIPR_LOG_LEVEL"
)

// LoadEnv reads KEY=value pairs from the given files (default ".env") into
// the process environment. Variables that are already set win. Missing files
// are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// DataDir returns the directory used to store recipr data.
func DataDir() (string, error) {
	if d := os.Getenv(EnvHome); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".recipr"), nil
}

// EnsureDataDir returns DataDir after creating it when missing.
func EnsureDataDir() (string, error) {
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(d, 0o755); err != nil {
		return "", err
	}
	return d, nil
}

// DBPath returns the full path to the SQLite database file.
func DBPath() (string, error) {
	if p := os.Getenv(EnvDB); p != "" {
		return p, nil
	}
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "recipr.db"), nil
}

// PublishRoot returns the directory local publishes are written under.
func PublishRoot() (string, error) {
	if p := os.Getenv(EnvPublishRoot); p != "" {
		return p, nil
	}
	d, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "published"), nil
}

// RemoteURL returns the base URL of a remote publish server, or "" for
// local publishing.
func RemoteURL() string {
	return os.Getenv(EnvRemote)
}

// LogLevel returns the configured log level name, or "" when unset.
func LogLevel() string {
	return os.Getenv(EnvLogLevel)
}
