package report

import (
	"strings"
	"testing"
	"time"

	"github.com/deixis/verdict/internal/ecosystem"
	"github.com/deixis/verdict/internal/hook"
)

func outcome(name string, status Status) HookOutcome {
	return HookOutcome{
		Hook: hook.Definition{
			Name:      name,
			Ecosystem: ecosystem.Rust,
			Argv:      []string{"true"},
			Category:  hook.Test,
			LogFile:   "test.log",
			Failure:   "it failed",
		},
		Status: status,
	}
}

func TestSuccess_AllSucceeded(t *testing.T) {
	r := New("r1", "/p", []HookOutcome{
		outcome("a", Succeeded),
		outcome("b", Succeeded),
	}, time.Second)
	if !r.Success() {
		t.Error("Success = false, want true")
	}
	if r.ExitCode() != 0 {
		t.Errorf("ExitCode = %d, want 0", r.ExitCode())
	}
}

func TestSuccess_EmptyRunIsTrivialSuccess(t *testing.T) {
	r := New("r1", "/p", nil, 0)
	if !r.Success() {
		t.Error("Success = false, want true for empty run")
	}
	if r.ExitCode() != 0 {
		t.Errorf("ExitCode = %d, want 0", r.ExitCode())
	}
	if !strings.Contains(r.Summary(), "nothing to run") {
		t.Errorf("Summary = %q, want 'nothing to run'", r.Summary())
	}
}

func TestSuccess_OneFailureFlips(t *testing.T) {
	for _, bad := range []Status{Failed, Errored} {
		r := New("r1", "/p", []HookOutcome{
			outcome("a", Succeeded),
			outcome("b", bad),
			outcome("c", Succeeded),
		}, time.Second)
		if r.Success() {
			t.Errorf("%s: Success = true, want false", bad)
		}
		if r.ExitCode() != 1 {
			t.Errorf("%s: ExitCode = %d, want 1", bad, r.ExitCode())
		}
	}
}

func TestCountByStatus(t *testing.T) {
	r := New("r1", "/p", []HookOutcome{
		outcome("a", Succeeded),
		outcome("b", Failed),
		outcome("c", Succeeded),
		outcome("d", Errored),
	}, time.Second)
	counts := r.CountByStatus()
	if counts[Succeeded] != 2 || counts[Failed] != 1 || counts[Errored] != 1 {
		t.Errorf("CountByStatus = %v", counts)
	}
}

func TestSummary_NamesFailedHooks(t *testing.T) {
	fail := outcome("cargo fmt", Failed)
	fail.ExitCode = 1
	r := New("r1", "/p", []HookOutcome{
		outcome("cargo check", Succeeded),
		fail,
	}, time.Second)

	s := r.Summary()
	if !strings.Contains(s, "FAIL") {
		t.Errorf("Summary = %q, want FAIL header", s)
	}
	if !strings.Contains(s, "rust/cargo fmt") {
		t.Errorf("Summary = %q, want failed hook named", s)
	}
	if strings.Contains(s, "rust/cargo check") {
		t.Errorf("Summary = %q, must not list succeeded hooks", s)
	}
	if strings.Count(s, "exit") != 1 {
		t.Errorf("Summary = %q, want exactly one failure line", s)
	}
}

func TestSummary_Deterministic(t *testing.T) {
	r := New("r1", "/p", []HookOutcome{
		outcome("a", Failed),
		outcome("b", Errored),
	}, time.Second)
	if r.Summary() != r.Summary() {
		t.Error("Summary is not deterministic")
	}
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range []Status{Succeeded, Failed, Errored} {
		if !s.Terminal() {
			t.Errorf("%s.Terminal() = false", s)
		}
	}
	for _, s := range []Status{Pending, Running} {
		if s.Terminal() {
			t.Errorf("%s.Terminal() = true", s)
		}
	}
}
