package utils

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// OpenEditor opens the given file in the user's preferred editor.
// It respects the $EDITOR environment variable. On Windows if $EDITOR is not set,
// it falls back to notepad; on Unix it falls back to vi.
func OpenEditor(path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		if runtime.GOOS == "windows" {
			editor = "notepad"
		} else {
			editor = "vi"
		}
	}
	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("open editor: %w", err)
	}
	return nil
}

// EditText lets the user edit initial in their editor and returns the result
// with trailing newlines removed.
func EditText(initial string) (string, error) {
	f, err := os.CreateTemp("", "recipr-payload-*.txt")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	defer func() { _ = os.Remove(path) }()
	if _, err := f.WriteString(initial); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	if err := OpenEditor(path); err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(strings.ReplaceAll(string(b), "\r\n", "\n"), "\n"), nil
}
