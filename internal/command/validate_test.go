package command

import "testing"

func TestAllRequiredParametersFilled(t *testing.T) {
	c := New(Advanced)
	c.SetPayload("ping [Target]")
	if AllRequiredParametersFilled(c) {
		t.Fatalf("expected unfilled while payload is [Target]")
	}
	c.Parameter("Target").Payload = "server1"
	if !AllRequiredParametersFilled(c) {
		t.Fatalf("expected filled after setting server1")
	}

	empty := New(Basic)
	if !AllRequiredParametersFilled(empty) {
		t.Fatalf("command without parameters must be filled")
	}
}

func TestAllEnabledOptionParametersFilled(t *testing.T) {
	c := New(Advanced)
	c.Options = []Option{
		{Name: "verbose", Enabled: true, Payload: "-v"},
		{Name: "user", Enabled: false, ParameterRequired: true, Parameters: []Parameter{NewParameter("name")}},
	}
	if !AllEnabledOptionParametersFilled(c) {
		t.Fatalf("disabled option must not block readiness")
	}
	c.Options[1].Enabled = true
	if AllEnabledOptionParametersFilled(c) {
		t.Fatalf("enabled option with unfilled parameter must fail")
	}
	c.Options[1].Parameters[0].Payload = "admin"
	if !AllEnabledOptionParametersFilled(c) {
		t.Fatalf("expected satisfied after filling")
	}
}

func TestOptionSatisfied(t *testing.T) {
	o := Option{Name: "flag", Parameters: []Parameter{NewParameter("x")}}
	if !OptionSatisfied(o) {
		t.Fatalf("option without required parameters is satisfied")
	}
	o.ParameterRequired = true
	if OptionSatisfied(o) {
		t.Fatalf("expected unsatisfied")
	}
}

func TestFormatOptionParameters(t *testing.T) {
	got := FormatOptionParameters([]Parameter{
		{Name: "user", Payload: "admin"},
		{Name: "port", Payload: "22"},
	})
	if got != "user: admin, port: 22" {
		t.Fatalf("unexpected format: %q", got)
	}
	if FormatOptionParameters(nil) != "" {
		t.Fatalf("expected empty string for no parameters")
	}
}

func TestWarnings(t *testing.T) {
	ready := New(Basic)
	ready.Name = "hi"
	ready.Payload = "echo hi"
	pending := New(Advanced)
	pending.Name = "ping"
	pending.SetPayload("ping [Host]")

	ws := Warnings([]Command{ready, pending})
	if len(ws) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(ws))
	}
	if ws[0].Position != 1 || ws[0].Unfilled[0] != "Host" {
		t.Fatalf("unexpected warning: %+v", ws[0])
	}
}

func TestCloneIsDeep(t *testing.T) {
	c := New(Advanced)
	c.Name = "ssh"
	c.SetPayload("ssh [Host]")
	c.Options = []Option{{Name: "port", ParameterRequired: true, Parameters: []Parameter{NewParameter("p")}, Payload: "-p"}}

	cp := c.Clone()
	cp.Parameters[0].Payload = "box"
	cp.Options[0].Parameters[0].Payload = "2222"
	if c.Parameters[0].Payload != "[Host]" {
		t.Fatalf("clone aliased parameters")
	}
	if c.Options[0].Parameters[0].Payload != "[p]" {
		t.Fatalf("clone aliased option parameters")
	}
}

func TestInstantiateAssignsFreshID(t *testing.T) {
	tpl := New(Basic)
	inst := Instantiate(tpl)
	if inst.ID == tpl.ID || inst.ID == "" {
		t.Fatalf("expected fresh id, got %q (template %q)", inst.ID, tpl.ID)
	}
}

func TestValidate(t *testing.T) {
	c := New(Basic)
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for empty name and payload")
	}
	c.Name = "hello"
	c.Payload = "echo hello"
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	c.Type = "weird"
	if err := c.Validate(); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestValidateRejectsUnprintableNames(t *testing.T) {
	for _, name := range []string{"ping\x07", "pi\u200Bng", "\x07"} {
		c := New(Basic)
		c.Name = name
		c.Payload = "ping localhost"
		if err := c.Validate(); err == nil {
			t.Fatalf("expected error for name %q", name)
		}
	}
}
