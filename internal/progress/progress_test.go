package progress

import (
	"strings"
	"testing"

	"github.com/deixis/verdict/internal/report"
)

func TestConsole_CountsFinishedHooks(t *testing.T) {
	var b strings.Builder
	c := NewConsole(&b, 3)

	c.HookStarted("cargo check")
	c.HookFinished("cargo check", report.Succeeded)
	c.HookFinished("cargo fmt", report.Failed)
	c.HookFinished("npm audit", report.Errored)

	out := b.String()
	for _, want := range []string{"[1/3]", "[2/3]", "[3/3]", "cargo check", "cargo fmt", "npm audit"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestConsole_PlainModeForNonTerminal(t *testing.T) {
	var b strings.Builder
	c := NewConsole(&b, 1)
	c.HookFinished("cargo fmt", report.Failed)

	out := b.String()
	if !strings.Contains(out, "FAIL") {
		t.Errorf("output %q missing plain FAIL marker", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("output %q contains ANSI escapes for a non-terminal writer", out)
	}
}

func TestNop(t *testing.T) {
	var r Reporter = Nop{}
	r.HookStarted("x")
	r.HookFinished("x", report.Succeeded)
}
