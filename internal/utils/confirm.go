// Package utils provides small interactive helpers for the CLI.
package utils

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm writes msg to w and reads a y/n answer from r. Returns true for yes.
// An empty answer or a closed reader counts as no.
func Confirm(r io.Reader, w io.Writer, msg string) bool {
	resp := strings.ToLower(Prompt(r, w, msg+" [y/N]"))
	return resp == "y" || resp == "yes"
}

// Prompt writes msg to w and reads a single trimmed line from r.
func Prompt(r io.Reader, w io.Writer, msg string) string {
	_, _ = fmt.Fprintf(w, "%s: ", msg)
	line, _ := bufio.NewReader(r).ReadString('\n')
	return strings.TrimSpace(line)
}
