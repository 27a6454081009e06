package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteLogs persists each outcome's captured stdout and stderr under dir,
// one tree per ecosystem:
//
//	<dir>/<ecosystem>/stdout/<logfile>
//	<dir>/<ecosystem>/stderr/<logfile>
//
// Errored outcomes produced no output and are skipped.
func WriteLogs(dir string, r *RunReport) error {
	for _, o := range r.Outcomes {
		if o.Status == Errored {
			continue
		}
		base := filepath.Join(dir, string(o.Hook.Ecosystem))
		for sub, data := range map[string][]byte{
			"stdout": o.Stdout,
			"stderr": o.Stderr,
		} {
			d := filepath.Join(base, sub)
			if err := os.MkdirAll(d, 0o755); err != nil {
				return fmt.Errorf("creating log directory %s: %w", d, err)
			}
			path := filepath.Join(d, o.Hook.LogFile)
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("writing log %s: %w", path, err)
			}
		}
	}
	return nil
}
