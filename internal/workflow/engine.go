// Package workflow provides the core execution engine: it resolves the
// hooks for the detected ecosystems and runs them on a bounded worker
// pool, producing one RunReport per invocation. It is consumed by both
// the MCP server and the CLI commands.
package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/deixis/verdict/internal/config"
	"github.com/deixis/verdict/internal/ecosystem"
	"github.com/deixis/verdict/internal/hook"
	"github.com/deixis/verdict/internal/progress"
	"github.com/deixis/verdict/internal/report"
	"github.com/deixis/verdict/internal/runner"
)

// CommandRunner executes commands within a workspace.
// Implemented by runner.Runner.
type CommandRunner interface {
	Run(ctx context.Context, argv []string, cwd string) (*runner.Result, error)
}

// Engine holds shared dependencies for one orchestrator instance.
type Engine struct {
	Config    *config.Config
	Runner    CommandRunner
	Workspace string            // project root — hooks run from here
	Reporter  progress.Reporter // nil means no progress output

	// Concurrency overrides the configured pool size when > 0.
	Concurrency int
}

// Verify runs the full pipeline for the workspace: detect ecosystems,
// resolve their hooks, execute everything on the pool, and aggregate the
// outcomes. A workspace with no recognised markers yields an empty,
// trivially successful report. The only error case is the workspace
// directory being unreadable.
func (e *Engine) Verify(ctx context.Context) (*report.RunReport, error) {
	return e.VerifyOnly(ctx, nil)
}

// VerifyOnly is Verify restricted to the named ecosystems. An empty list
// means everything detected. The configured only/skip lists apply first.
func (e *Engine) VerifyOnly(ctx context.Context, only []string) (*report.RunReport, error) {
	start := time.Now()

	defs, err := e.Plan(only)
	if err != nil {
		return nil, err
	}
	outcomes := e.RunHooks(ctx, defs)

	return report.New(uuid.New().String(), e.Workspace, outcomes, time.Since(start)), nil
}

// Plan returns the hook definitions a run would execute, in execution
// order: detection, the configured only/skip filters, then the only
// restriction. Callers use it to size progress output before running.
func (e *Engine) Plan(only []string) ([]hook.Definition, error) {
	detected, err := ecosystem.Detect(e.Workspace)
	if err != nil {
		return nil, err
	}
	detected = e.Config.FilterEcosystems(detected)
	if len(only) > 0 {
		keep := make(map[string]bool, len(only))
		for _, name := range only {
			keep[name] = true
		}
		var filtered []ecosystem.Ecosystem
		for _, eco := range detected {
			if keep[string(eco)] {
				filtered = append(filtered, eco)
			}
		}
		detected = filtered
	}
	return hook.Resolve(detected), nil
}

// RunHooks executes every definition on a worker pool bounded by the
// configured concurrency and blocks until each one has a terminal
// outcome. Outcomes are returned in resolution order regardless of
// completion order. Hooks never cancel each other: a spawn failure or a
// non-zero exit is recorded and the rest of the pool keeps running.
func (e *Engine) RunHooks(ctx context.Context, defs []hook.Definition) []report.HookOutcome {
	outcomes := make([]report.HookOutcome, len(defs))
	if len(defs) == 0 {
		return outcomes
	}

	// Lifecycle events flow through a buffered channel drained by a single
	// consumer, so a slow or panicking reporter can neither interleave
	// output nor block a worker. The buffer holds every possible event.
	events := make(chan event, 2*len(defs))
	drained := make(chan struct{})
	go e.consumeEvents(events, drained)

	sem := semaphore.NewWeighted(int64(e.poolSize()))
	var wg sync.WaitGroup
	for i, def := range defs {
		wg.Add(1)
		go func(i int, def hook.Definition) {
			defer wg.Done()

			if err := sem.Acquire(ctx, 1); err != nil {
				// Run aborted before this hook was launched.
				outcomes[i] = report.HookOutcome{
					Hook:   def,
					Status: report.Errored,
					Error:  "not started: " + err.Error(),
				}
				return
			}
			defer sem.Release(1)

			events <- event{name: def.Name, status: report.Running}
			outcomes[i] = e.runOne(ctx, def)
			events <- event{name: def.Name, status: outcomes[i].Status}
		}(i, def)
	}
	wg.Wait()

	close(events)
	<-drained
	return outcomes
}

// runOne executes a single hook and classifies the result. A spawn
// failure becomes an errored outcome; a non-zero exit a failed one.
func (e *Engine) runOne(ctx context.Context, def hook.Definition) report.HookOutcome {
	start := time.Now()
	res, err := e.Runner.Run(ctx, def.Argv, "")
	if err != nil {
		return report.HookOutcome{
			Hook:     def,
			Status:   report.Errored,
			Duration: time.Since(start),
			Error:    err.Error(),
		}
	}

	status := report.Succeeded
	if res.ExitCode != 0 {
		status = report.Failed
	}
	return report.HookOutcome{
		Hook:     def,
		Status:   status,
		ExitCode: res.ExitCode,
		Duration: res.Duration,
		Stdout:   res.Stdout,
		Stderr:   res.Stderr,
	}
}

// event is one reporter notification.
type event struct {
	name   string
	status report.Status
}

// consumeEvents forwards events to the reporter one at a time, recovering
// from reporter panics so they never reach the pool.
func (e *Engine) consumeEvents(events <-chan event, drained chan<- struct{}) {
	defer close(drained)

	rep := e.Reporter
	if rep == nil {
		rep = progress.Nop{}
	}

	for ev := range events {
		func() {
			defer func() {
				// A reporter failure must never alter the run.
				_ = recover()
			}()
			if ev.status == report.Running {
				rep.HookStarted(ev.name)
			} else {
				rep.HookFinished(ev.name, ev.status)
			}
		}()
	}
}

// poolSize returns the effective worker limit, always >= 1.
func (e *Engine) poolSize() int {
	n := e.Concurrency
	if n <= 0 {
		n = e.Config.Concurrency()
	}
	if n < 1 {
		n = 1
	}
	return n
}
