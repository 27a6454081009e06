package runner

import "time"

// Result holds the output of a command execution.
type Result struct {
	ExitCode  int           // process exit code
	Stdout    []byte        // captured stdout (may be truncated)
	Stderr    []byte        // captured stderr (may be truncated)
	Truncated bool          // true if output exceeded the size cap
	Duration  time.Duration // wall-clock time from spawn to exit
}
