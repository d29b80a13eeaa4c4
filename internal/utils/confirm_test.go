package utils

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfirm(t *testing.T) {
	cases := map[string]bool{"y\n": true, "YES\n": true, "n\n": false, "\n": false, "": false}
	for in, want := range cases {
		var out bytes.Buffer
		if got := Confirm(strings.NewReader(in), &out, "Overwrite?"); got != want {
			t.Fatalf("Confirm(%q) = %v, want %v", in, got, want)
		}
		if out.String() != "Overwrite? [y/N]: " {
			t.Fatalf("unexpected prompt %q", out.String())
		}
	}
}

func TestPromptTrims(t *testing.T) {
	var out bytes.Buffer
	if got := Prompt(strings.NewReader("  tools \r\n"), &out, "Directory"); got != "tools" {
		t.Fatalf("unexpected answer %q", got)
	}
}
