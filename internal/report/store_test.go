package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func sampleReport(id string) *RunReport {
	return New(id, "/p", []HookOutcome{outcome("a", Succeeded)}, time.Second)
}

func TestDiskStore_RoundTrip(t *testing.T) {
	s := NewDiskStore()
	want := sampleReport("run-1")
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load("run-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ID != want.ID || len(got.Outcomes) != 1 {
		t.Errorf("Load = %+v", got)
	}
	if got.Outcomes[0].Hook.Name != "a" {
		t.Errorf("Outcomes[0].Hook.Name = %q, want a", got.Outcomes[0].Hook.Name)
	}
}

func TestDiskStore_LoadMissing(t *testing.T) {
	s := NewDiskStore()
	if _, err := s.Load("nope"); err == nil {
		t.Fatal("expected error for unknown run ID")
	}
}

// countingStore records backing-store loads to observe cache behaviour.
type countingStore struct {
	back  Store
	loads int
}

func (c *countingStore) Save(r *RunReport) error { return c.back.Save(r) }
func (c *countingStore) Load(id string) (*RunReport, error) {
	c.loads++
	return c.back.Load(id)
}

func TestLRUStore_CacheHit(t *testing.T) {
	cs := &countingStore{back: NewDiskStore()}
	s := NewLRUStore(2, cs)

	if err := s.Save(sampleReport("run-1")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := s.Load("run-1"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cs.loads != 0 {
		t.Errorf("backing loads = %d, want 0 (cache hit)", cs.loads)
	}
}

func TestLRUStore_EvictionFallsBackToDisk(t *testing.T) {
	cs := &countingStore{back: NewDiskStore()}
	s := NewLRUStore(1, cs)

	if err := s.Save(sampleReport("run-1")); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(sampleReport("run-2")); err != nil {
		t.Fatal(err)
	}

	// run-1 was evicted; loading it must hit the backing store.
	if _, err := s.Load("run-1"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cs.loads != 1 {
		t.Errorf("backing loads = %d, want 1", cs.loads)
	}
}

// failStore always errors, to confirm LRU misses propagate.
type failStore struct{}

func (failStore) Save(*RunReport) error { return nil }
func (failStore) Load(string) (*RunReport, error) {
	return nil, errors.New("boom")
}

func TestLRUStore_MissPropagatesError(t *testing.T) {
	s := NewLRUStore(1, failStore{})
	if _, err := s.Load("nope"); err == nil {
		t.Fatal("expected backing store error")
	}
}

func TestWriteLogs(t *testing.T) {
	dir := t.TempDir()
	ok := outcome("cargo test", Succeeded)
	ok.Stdout = []byte("out\n")
	ok.Stderr = []byte("err\n")
	bad := outcome("cargo fmt", Errored)

	r := New("run-1", "/p", []HookOutcome{ok, bad}, time.Second)
	if err := WriteLogs(dir, r); err != nil {
		t.Fatalf("WriteLogs: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "rust", "stdout", "test.log"))
	if err != nil {
		t.Fatalf("reading stdout log: %v", err)
	}
	if string(data) != "out\n" {
		t.Errorf("stdout log = %q", data)
	}
	if _, err := os.ReadFile(filepath.Join(dir, "rust", "stderr", "test.log")); err != nil {
		t.Errorf("stderr log missing: %v", err)
	}

	// Errored outcomes produce no logs. Both outcomes share LogFile names
	// here, so check by listing the stderr dir for exactly one file.
	entries, err := os.ReadDir(filepath.Join(dir, "rust", "stderr"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("stderr dir has %d files, want 1: %v", len(entries), entries)
	}
}
