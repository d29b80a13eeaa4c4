package importer

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/VoxDroid/recipr/internal/command"
	"github.com/VoxDroid/recipr/internal/exporter"
	"github.com/VoxDroid/recipr/internal/recipe"
)

func template(name, payload string) command.Command {
	c := command.New(command.Advanced)
	c.Name = name
	c.SetPayload(payload)
	return c
}

func roundTrip(t *testing.T, cmds ...command.Command) exporter.Document {
	t.Helper()
	var buf bytes.Buffer
	if err := exporter.Export(&buf, cmds); err != nil {
		t.Fatalf("Export: %v", err)
	}
	doc, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return doc
}

func TestMergePolicies(t *testing.T) {
	s := recipe.NewStore()
	orig := template("ping", "ping [Host]")
	if err := s.AddTemplate(orig); err != nil {
		t.Fatalf("AddTemplate: %v", err)
	}
	incoming := template("ping", "ping -n 4 [Host]")

	sum, err := Merge(s, roundTrip(t, incoming, template("dir", "dir [Path]")), Skip)
	if err != nil {
		t.Fatalf("Merge skip: %v", err)
	}
	if len(sum.Skipped) != 1 || len(sum.Added) != 1 {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	sum, err = Merge(s, roundTrip(t, incoming), Overwrite)
	if err != nil {
		t.Fatalf("Merge overwrite: %v", err)
	}
	got, _ := s.Template(orig.ID)
	if got.Payload != "ping -n 4 [Host]" || len(sum.Overwritten) != 1 {
		t.Fatalf("expected overwrite to keep id and take payload: %+v", got)
	}

	sum, err = Merge(s, roundTrip(t, incoming), Rename)
	if err != nil {
		t.Fatalf("Merge rename: %v", err)
	}
	if len(sum.Added) != 1 || sum.Added[0] != "ping-import-1" {
		t.Fatalf("unexpected rename summary: %+v", sum)
	}
	if len(s.Library()) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(s.Library()))
	}
}

func TestMergeSanitizesNames(t *testing.T) {
	s := recipe.NewStore()
	if err := s.AddTemplate(template("ping", "ping [Host]")); err != nil {
		t.Fatalf("AddTemplate: %v", err)
	}
	sum, err := Merge(s, roundTrip(t, template("pi\u200Bng", "ping -n 1 [Host]")), Skip)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if len(sum.Skipped) != 1 || sum.Skipped[0] != "ping" {
		t.Fatalf("expected cleaned name to collide with ping: %+v", sum)
	}
}

func TestMergeRejectsInvalid(t *testing.T) {
	s := recipe.NewStore()
	ok := template("ok", "echo [x]")
	bad := command.New(command.Basic)
	doc := exporter.Document{Version: 1, Commands: []command.Command{ok, bad}}
	if _, err := Merge(s, doc, Skip); err == nil {
		t.Fatalf("expected validation error")
	}
	if len(s.Library()) != 0 {
		t.Fatalf("nothing should be added when any command is invalid")
	}
}

func TestMergeResyncsParameters(t *testing.T) {
	s := recipe.NewStore()
	c := template("copy", "copy [Src] [Dst]")
	c.Parameters = c.Parameters[:1]
	if _, err := Merge(s, exporter.Document{Version: 1, Commands: []command.Command{c}}, Skip); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	got, _ := s.FindTemplate("copy")
	if len(got.Parameters) != 2 {
		t.Fatalf("expected parameters re-synced, got %+v", got.Parameters)
	}
}

func TestReadRejectsNewerVersion(t *testing.T) {
	if _, err := Read(strings.NewReader("version: 99\ncommands: []\n")); err == nil {
		t.Fatalf("expected version error")
	}
	doc, err := Read(strings.NewReader(""))
	if err != nil || len(doc.Commands) != 0 {
		t.Fatalf("empty input should decode to an empty document: %v", err)
	}
}

func TestReadFileAndPolicy(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "lib.yaml")
	if err := exporter.ExportFile(dst, []command.Command{template("a", "echo [x]")}); err != nil {
		t.Fatalf("ExportFile: %v", err)
	}
	doc, err := ReadFile(dst)
	if err != nil || len(doc.Commands) != 1 {
		t.Fatalf("ReadFile: %v %+v", err, doc)
	}
	if _, err := ParsePolicy("merge"); err == nil {
		t.Fatalf("expected invalid policy error")
	}
	if p, err := ParsePolicy("rename"); err != nil || p != Rename {
		t.Fatalf("ParsePolicy(rename) = %v, %v", p, err)
	}
}
