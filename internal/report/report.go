// Package report defines hook outcomes and the run report that aggregates
// them, plus persistence of reports for later drill-down.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/deixis/verdict/internal/hook"
)

// Status is the lifecycle state of one hook execution. Outcomes held by a
// RunReport always carry a terminal status.
type Status string

const (
	Pending   Status = "pending"
	Running   Status = "running"
	Succeeded Status = "succeeded"
	Failed    Status = "failed"  // ran and exited non-zero
	Errored   Status = "errored" // could not be spawned
)

// Terminal reports whether s is a final state.
func (s Status) Terminal() bool {
	return s == Succeeded || s == Failed || s == Errored
}

// HookOutcome is the result of executing one resolved hook definition.
// Exactly one outcome exists per resolved hook, spawn failures included.
type HookOutcome struct {
	Hook     hook.Definition `json:"hook"`
	Status   Status          `json:"status"`
	ExitCode int             `json:"exit_code"`
	Duration time.Duration   `json:"duration"`
	Stdout   []byte          `json:"stdout,omitempty"`
	Stderr   []byte          `json:"stderr,omitempty"`
	Error    string          `json:"error,omitempty"` // spawn error message when errored
}

// RunReport owns the ordered outcomes of one invocation. The order is the
// hook resolution order, not the completion order, so reports are stable
// across runs regardless of scheduling.
type RunReport struct {
	ID       string        `json:"id"`
	Root     string        `json:"root"`
	Outcomes []HookOutcome `json:"outcomes"`
	Elapsed  time.Duration `json:"elapsed"`
}

// New builds a report over the given outcomes. Aggregation is a pure
// function of its inputs.
func New(id, root string, outcomes []HookOutcome, elapsed time.Duration) *RunReport {
	return &RunReport{ID: id, Root: root, Outcomes: outcomes, Elapsed: elapsed}
}

// Success is true iff every outcome succeeded. An empty run is a success.
func (r *RunReport) Success() bool {
	for _, o := range r.Outcomes {
		if o.Status != Succeeded {
			return false
		}
	}
	return true
}

// ExitCode derives the process exit status: 0 when all hooks succeeded,
// 1 when any failed or errored.
func (r *RunReport) ExitCode() int {
	if r.Success() {
		return 0
	}
	return 1
}

// CountByStatus tallies outcomes per terminal status.
func (r *RunReport) CountByStatus() map[Status]int {
	counts := make(map[Status]int)
	for _, o := range r.Outcomes {
		counts[o.Status]++
	}
	return counts
}

// Problems returns the outcomes that failed or errored, in report order.
func (r *RunReport) Problems() []HookOutcome {
	var out []HookOutcome
	for _, o := range r.Outcomes {
		if o.Status == Failed || o.Status == Errored {
			out = append(out, o)
		}
	}
	return out
}

// Summary renders a deterministic human-readable digest grouped by status.
func (r *RunReport) Summary() string {
	var b strings.Builder

	if len(r.Outcomes) == 0 {
		fmt.Fprintf(&b, "ok (nothing to run, %s)\n", r.Elapsed.Round(time.Millisecond))
		return b.String()
	}

	counts := r.CountByStatus()
	if r.Success() {
		fmt.Fprintf(&b, "ok (%d hooks, %s)\n", len(r.Outcomes), r.Elapsed.Round(time.Millisecond))
		return b.String()
	}

	fmt.Fprintf(&b, "FAIL (%d hooks: %d succeeded, %d failed, %d errored, %s)\n",
		len(r.Outcomes), counts[Succeeded], counts[Failed], counts[Errored],
		r.Elapsed.Round(time.Millisecond))
	fmt.Fprintln(&b)

	for _, o := range r.Problems() {
		label := fmt.Sprintf("%s/%s", o.Hook.Ecosystem, o.Hook.Name)
		switch o.Status {
		case Failed:
			fmt.Fprintf(&b, "  %-32s exit %-4d %s\n", label, o.ExitCode, o.Hook.Failure)
		case Errored:
			fmt.Fprintf(&b, "  %-32s spawn     %s\n", label, o.Error)
		}
	}

	return b.String()
}
