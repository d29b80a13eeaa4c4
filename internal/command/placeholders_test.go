package command

import (
	"reflect"
	"testing"
)

func TestExtractPlaceholders(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"ping [Host]", []string{"Host"}},
		{"copy [Src] [Dst]\necho [Src]", []string{"Src", "Dst"}},
		{"echo [] [ ] done", []string{}},
		{"echo [[inner]] tail", []string{"inner"}},
		{"echo [unterminated\nnext] line", []string{}},
		{"no placeholders here", []string{}},
		{"[B] then [A] then [B]", []string{"B", "A"}},
	}
	for _, c := range cases {
		got := ExtractPlaceholders(c.in)
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("ExtractPlaceholders(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestExtractPlaceholdersIdempotent(t *testing.T) {
	s := "net use [Drive] \\\\[Server]\\[Share]\nrem [Drive]"
	a := ExtractPlaceholders(s)
	b := ExtractPlaceholders(s)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical results, got %v and %v", a, b)
	}
	seen := map[string]bool{}
	for _, n := range a {
		if seen[n] {
			t.Fatalf("duplicate name %q in %v", n, a)
		}
		seen[n] = true
	}
}

func TestSetPayloadReconcilesParameters(t *testing.T) {
	c := New(Advanced)
	c.SetPayload("ping [A]")
	if len(c.Parameters) != 1 || c.Parameters[0].Name != "A" {
		t.Fatalf("expected parameter A, got %+v", c.Parameters)
	}
	if c.Parameters[0].Payload != "[A]" {
		t.Fatalf("expected default payload, got %q", c.Parameters[0].Payload)
	}
	c.Parameters[0].Payload = "10.0.0.1"
	aID := c.Parameters[0].ID

	c.SetPayload("ping [A] -n [B]")
	if len(c.Parameters) != 2 {
		t.Fatalf("expected 2 parameters, got %+v", c.Parameters)
	}
	if c.Parameters[0].ID != aID || c.Parameters[0].Payload != "10.0.0.1" {
		t.Fatalf("expected A to keep id and value, got %+v", c.Parameters[0])
	}
	if c.Parameters[1].Name != "B" || c.Parameters[1].Payload != "[B]" {
		t.Fatalf("expected fresh B, got %+v", c.Parameters[1])
	}

	c.SetPayload("ping localhost -n [B]")
	if len(c.Parameters) != 1 || c.Parameters[0].Name != "B" {
		t.Fatalf("expected only B to remain, got %+v", c.Parameters)
	}
}

func TestSetPayloadBasicHasNoParameters(t *testing.T) {
	c := New(Basic)
	c.SetPayload("echo [not a param]")
	if len(c.Parameters) != 0 {
		t.Fatalf("basic command should not track parameters, got %+v", c.Parameters)
	}
}

func TestReplacePlaceholdersLeavesUnbound(t *testing.T) {
	out := ReplacePlaceholders("ssh [User]@[Host]", func(name string) (string, bool) {
		if name == "Host" {
			return "server1", true
		}
		return "", false
	})
	if out != "ssh [User]@server1" {
		t.Fatalf("unexpected result: %s", out)
	}
}
