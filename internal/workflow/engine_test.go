package workflow

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/deixis/verdict/internal/config"
	"github.com/deixis/verdict/internal/ecosystem"
	"github.com/deixis/verdict/internal/hook"
	"github.com/deixis/verdict/internal/report"
	"github.com/deixis/verdict/internal/runner"
)

// fakeRunner is a test double for CommandRunner. It returns predetermined
// results keyed by the joined argv, tracks how many commands run at once,
// and can delay individual commands to control completion order.
type fakeRunner struct {
	results map[string]*runner.Result
	errs    map[string]error
	delays  map[string]time.Duration

	mu        sync.Mutex
	active    int
	maxActive int
}

func (f *fakeRunner) Run(_ context.Context, argv []string, _ string) (*runner.Result, error) {
	f.mu.Lock()
	f.active++
	if f.active > f.maxActive {
		f.maxActive = f.active
	}
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.active--
		f.mu.Unlock()
	}()

	key := strings.Join(argv, " ")
	if d := f.delays[key]; d > 0 {
		time.Sleep(d)
	}
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	if r, ok := f.results[key]; ok {
		return r, nil
	}
	// Default: success with no output.
	return &runner.Result{ExitCode: 0, Duration: time.Millisecond}, nil
}

func (f *fakeRunner) peak() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxActive
}

func def(name string, argv ...string) hook.Definition {
	return hook.Definition{
		Name:      name,
		Ecosystem: ecosystem.Rust,
		Argv:      argv,
		Category:  hook.Test,
		LogFile:   "test.log",
		Failure:   name + " failed",
	}
}

func newEngine(fr *fakeRunner, n int) *Engine {
	return &Engine{
		Config:      &config.Config{},
		Runner:      fr,
		Workspace:   "/project",
		Concurrency: n,
	}
}

func TestRunHooks_OneOutcomePerHook(t *testing.T) {
	defs := []hook.Definition{
		def("a", "cmd-a"),
		def("b", "cmd-b"),
		def("c", "cmd-c"),
		def("d", "cmd-d"),
	}

	for n := 1; n <= len(defs); n++ {
		outcomes := newEngine(&fakeRunner{}, n).RunHooks(context.Background(), defs)
		if len(outcomes) != len(defs) {
			t.Fatalf("n=%d: %d outcomes, want %d", n, len(outcomes), len(defs))
		}
		for i, o := range outcomes {
			if !o.Status.Terminal() {
				t.Errorf("n=%d: outcome %d has non-terminal status %s", n, i, o.Status)
			}
		}
	}
}

func TestRunHooks_ConcurrencyBound(t *testing.T) {
	fr := &fakeRunner{delays: map[string]time.Duration{
		"cmd-a": 50 * time.Millisecond,
		"cmd-b": 50 * time.Millisecond,
		"cmd-c": 50 * time.Millisecond,
		"cmd-d": 50 * time.Millisecond,
	}}
	defs := []hook.Definition{
		def("a", "cmd-a"),
		def("b", "cmd-b"),
		def("c", "cmd-c"),
		def("d", "cmd-d"),
	}

	newEngine(fr, 2).RunHooks(context.Background(), defs)
	if got := fr.peak(); got > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", got)
	}
}

func TestRunHooks_ResolutionOrderPreserved(t *testing.T) {
	// The first hook finishes last; the report must still list it first.
	fr := &fakeRunner{
		delays:  map[string]time.Duration{"slow": 80 * time.Millisecond},
		results: map[string]*runner.Result{"slow": {ExitCode: 1}},
	}
	defs := []hook.Definition{
		def("slow one", "slow"),
		def("quick one", "quick"),
	}

	outcomes := newEngine(fr, 2).RunHooks(context.Background(), defs)
	if outcomes[0].Hook.Name != "slow one" {
		t.Errorf("outcomes[0] = %q, want the first-resolved hook", outcomes[0].Hook.Name)
	}
	if outcomes[0].Status != report.Failed {
		t.Errorf("outcomes[0].Status = %s, want failed", outcomes[0].Status)
	}
	if outcomes[1].Status != report.Succeeded {
		t.Errorf("outcomes[1].Status = %s, want succeeded", outcomes[1].Status)
	}
}

func TestRunHooks_SpawnFailureDoesNotAbortPool(t *testing.T) {
	fr := &fakeRunner{errs: map[string]error{
		"missing": &runner.SpawnError{Program: "missing", Err: os.ErrNotExist},
	}}
	defs := []hook.Definition{
		def("broken", "missing"),
		def("fine", "ok"),
	}

	outcomes := newEngine(fr, 1).RunHooks(context.Background(), defs)
	if outcomes[0].Status != report.Errored {
		t.Errorf("outcomes[0].Status = %s, want errored", outcomes[0].Status)
	}
	if outcomes[0].Error == "" {
		t.Error("errored outcome is missing its spawn error message")
	}
	if outcomes[1].Status != report.Succeeded {
		t.Errorf("outcomes[1].Status = %s, want succeeded (pool must keep going)", outcomes[1].Status)
	}
}

func TestRunHooks_ExitCodeClassification(t *testing.T) {
	fr := &fakeRunner{results: map[string]*runner.Result{
		"bad": {ExitCode: 2, Stderr: []byte("boom\n")},
	}}
	outcomes := newEngine(fr, 1).RunHooks(context.Background(), []hook.Definition{def("bad hook", "bad")})

	o := outcomes[0]
	if o.Status != report.Failed {
		t.Errorf("Status = %s, want failed", o.Status)
	}
	if o.ExitCode != 2 {
		t.Errorf("ExitCode = %d, want 2", o.ExitCode)
	}
	if string(o.Stderr) != "boom\n" {
		t.Errorf("Stderr = %q", o.Stderr)
	}
}

// recordingReporter captures the event stream.
type recordingReporter struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingReporter) HookStarted(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "start "+name)
}

func (r *recordingReporter) HookFinished(name string, status report.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "finish "+name+" "+string(status))
}

func TestRunHooks_ReporterSeesEveryHook(t *testing.T) {
	rec := &recordingReporter{}
	e := newEngine(&fakeRunner{}, 2)
	e.Reporter = rec

	defs := []hook.Definition{def("a", "cmd-a"), def("b", "cmd-b")}
	e.RunHooks(context.Background(), defs)

	starts, finishes := 0, 0
	for _, ev := range rec.events {
		if strings.HasPrefix(ev, "start ") {
			starts++
		}
		if strings.HasPrefix(ev, "finish ") {
			finishes++
		}
	}
	if starts != 2 || finishes != 2 {
		t.Errorf("events = %v, want 2 starts and 2 finishes", rec.events)
	}
}

// panickingReporter fails on every event.
type panickingReporter struct{}

func (panickingReporter) HookStarted(string)                 { panic("reporter is broken") }
func (panickingReporter) HookFinished(string, report.Status) { panic("reporter is broken") }

func TestRunHooks_PanickingReporterDoesNotChangeOutcomes(t *testing.T) {
	defs := []hook.Definition{
		def("a", "cmd-a"),
		def("b", "cmd-b"),
		def("c", "cmd-c"),
	}
	fr := &fakeRunner{results: map[string]*runner.Result{"cmd-b": {ExitCode: 1}}}

	quiet := newEngine(fr, 2)
	quiet.Reporter = nil
	want := quiet.RunHooks(context.Background(), defs)

	noisy := newEngine(fr, 2)
	noisy.Reporter = panickingReporter{}
	got := noisy.RunHooks(context.Background(), defs)

	if len(got) != len(want) {
		t.Fatalf("%d outcomes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Status != want[i].Status || got[i].ExitCode != want[i].ExitCode {
			t.Errorf("outcome %d: got %s/%d, want %s/%d",
				i, got[i].Status, got[i].ExitCode, want[i].Status, want[i].ExitCode)
		}
	}
}

func TestRunHooks_Empty(t *testing.T) {
	outcomes := newEngine(&fakeRunner{}, 4).RunHooks(context.Background(), nil)
	if len(outcomes) != 0 {
		t.Errorf("%d outcomes, want 0", len(outcomes))
	}
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestVerify_NoMarkersIsTrivialSuccess(t *testing.T) {
	e := newEngine(&fakeRunner{}, 2)
	e.Workspace = t.TempDir()

	rep, err := e.Verify(context.Background())
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !rep.Success() || rep.ExitCode() != 0 {
		t.Errorf("empty workspace: Success = %v, ExitCode = %d", rep.Success(), rep.ExitCode())
	}
	if len(rep.Outcomes) != 0 {
		t.Errorf("%d outcomes, want 0", len(rep.Outcomes))
	}
}

func TestVerify_UnreadableWorkspace(t *testing.T) {
	e := newEngine(&fakeRunner{}, 2)
	e.Workspace = filepath.Join(t.TempDir(), "missing")

	if _, err := e.Verify(context.Background()); err == nil {
		t.Fatal("expected error for unreadable workspace")
	}
}

func TestVerify_RustProjectWithOneFailure(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Cargo.toml")

	fr := &fakeRunner{results: map[string]*runner.Result{
		"cargo fmt --check": {ExitCode: 1, Stderr: []byte("Diff in src/main.rs\n")},
	}}
	e := newEngine(fr, 2)
	e.Workspace = dir

	rep, err := e.Verify(context.Background())
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	rust := hook.For(ecosystem.Rust)
	if len(rep.Outcomes) != len(rust) {
		t.Fatalf("%d outcomes, want %d", len(rep.Outcomes), len(rust))
	}
	for i, o := range rep.Outcomes {
		if o.Hook.Name != rust[i].Name {
			t.Errorf("outcome %d = %q, want %q", i, o.Hook.Name, rust[i].Name)
		}
	}

	if rep.ExitCode() != 1 {
		t.Errorf("ExitCode = %d, want 1", rep.ExitCode())
	}
	if got := len(rep.Problems()); got != 1 {
		t.Fatalf("%d problems, want exactly 1", got)
	}
	if rep.Problems()[0].Hook.Name != "cargo fmt" {
		t.Errorf("failed hook = %q, want cargo fmt", rep.Problems()[0].Hook.Name)
	}
	if !strings.Contains(rep.Summary(), "rust/cargo fmt") {
		t.Errorf("Summary = %q, want the failed hook named", rep.Summary())
	}
}

func TestVerify_TwoEcosystemsConcatenated(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Cargo.toml")
	touch(t, dir, "package.json")

	e := newEngine(&fakeRunner{}, 3)
	e.Workspace = dir

	rep, err := e.Verify(context.Background())
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	rust := hook.For(ecosystem.Rust)
	node := hook.For(ecosystem.Node)
	if len(rep.Outcomes) != len(rust)+len(node) {
		t.Fatalf("%d outcomes, want %d", len(rep.Outcomes), len(rust)+len(node))
	}
	for i, o := range rep.Outcomes {
		want := ecosystem.Rust
		if i >= len(rust) {
			want = ecosystem.Node
		}
		if o.Hook.Ecosystem != want {
			t.Errorf("outcome %d belongs to %s, want %s", i, o.Hook.Ecosystem, want)
		}
	}
	if !rep.Success() {
		t.Errorf("Success = false, want true")
	}
}

func TestVerify_ConfigFilterApplies(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Cargo.toml")
	touch(t, dir, "package.json")

	e := newEngine(&fakeRunner{}, 2)
	e.Workspace = dir
	e.Config = &config.Config{Only: []string{"node"}}

	rep, err := e.Verify(context.Background())
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	for _, o := range rep.Outcomes {
		if o.Hook.Ecosystem != ecosystem.Node {
			t.Errorf("outcome for %s, want only node hooks", o.Hook.Ecosystem)
		}
	}
	if len(rep.Outcomes) != len(hook.For(ecosystem.Node)) {
		t.Errorf("%d outcomes, want %d", len(rep.Outcomes), len(hook.For(ecosystem.Node)))
	}
}

func TestVerifyOnly_RestrictsEcosystems(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Cargo.toml")
	touch(t, dir, "package.json")

	e := newEngine(&fakeRunner{}, 2)
	e.Workspace = dir

	rep, err := e.VerifyOnly(context.Background(), []string{"rust"})
	if err != nil {
		t.Fatalf("VerifyOnly: %v", err)
	}
	for _, o := range rep.Outcomes {
		if o.Hook.Ecosystem != ecosystem.Rust {
			t.Errorf("outcome for %s, want only rust hooks", o.Hook.Ecosystem)
		}
	}
	if len(rep.Outcomes) != len(hook.For(ecosystem.Rust)) {
		t.Errorf("%d outcomes, want %d", len(rep.Outcomes), len(hook.For(ecosystem.Rust)))
	}
}

func TestPlan_MatchesVerifyOutcomes(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "Cargo.toml")
	touch(t, dir, "go.mod")

	e := newEngine(&fakeRunner{}, 2)
	e.Workspace = dir

	defs, err := e.Plan(nil)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	rep, err := e.Verify(context.Background())
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if len(defs) != len(rep.Outcomes) {
		t.Fatalf("Plan returned %d hooks, Verify produced %d outcomes", len(defs), len(rep.Outcomes))
	}
	for i, d := range defs {
		if rep.Outcomes[i].Hook.Name != d.Name {
			t.Errorf("outcome %d is %q, plan says %q", i, rep.Outcomes[i].Hook.Name, d.Name)
		}
	}
}
