package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/deixis/verdict/internal/report"
)

type reportParams struct {
	RunID string `json:"run_id,omitempty" jsonschema:"the run ID from a verdict_run result"`
	Hook  string `json:"hook,omitempty" jsonschema:"restrict to one hook, named as ecosystem/hook (e.g. rust/cargo test)"`
}

func (h *handler) reportHandler(ctx context.Context, req *mcp.CallToolRequest, params reportParams) (*mcp.CallToolResult, any, error) {
	if params.RunID == "" {
		return errorResult("run_id is required")
	}

	run, err := h.store.Load(params.RunID)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to load run %s: %v", params.RunID, err))
	}

	outcomes := run.Outcomes
	if params.Hook != "" {
		var kept []report.HookOutcome
		for _, o := range outcomes {
			if fmt.Sprintf("%s/%s", o.Hook.Ecosystem, o.Hook.Name) == params.Hook {
				kept = append(kept, o)
			}
		}
		if len(kept) == 0 {
			return errorResult(fmt.Sprintf("No hook %q in run %s.", params.Hook, params.RunID))
		}
		outcomes = kept
	}

	return textResult(formatRunOutput(run, outcomes))
}

func formatRunOutput(run *report.RunReport, outcomes []report.HookOutcome) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run: %s\n", run.ID)
	fmt.Fprintf(&b, "Root: %s\n", run.Root)
	fmt.Fprintln(&b, run.Summary())

	for _, o := range outcomes {
		fmt.Fprintf(&b, "%s/%s — %s (%s)\n",
			o.Hook.Ecosystem, o.Hook.Name, o.Status, o.Duration.Round(time.Millisecond))

		switch o.Status {
		case report.Succeeded:
			// Quiet on success; output is preserved in the stored report.
		case report.Errored:
			fmt.Fprintf(&b, "  %s\n", o.Error)
		case report.Failed:
			fmt.Fprintf(&b, "  exit %d\n", o.ExitCode)
			writeOutputTail(&b, "stdout", o.Stdout)
			writeOutputTail(&b, "stderr", o.Stderr)
		}
		fmt.Fprintln(&b)
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// writeOutputTail renders the last lines of a captured stream, indented.
// Failures usually put the actionable part at the end of the output.
func writeOutputTail(b *strings.Builder, name string, data []byte) {
	const maxLines = 40

	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return
	}

	lines := strings.Split(text, "\n")
	if len(lines) > maxLines {
		fmt.Fprintf(b, "  %s (last %d of %d lines):\n", name, maxLines, len(lines))
		lines = lines[len(lines)-maxLines:]
	} else {
		fmt.Fprintf(b, "  %s:\n", name)
	}
	for _, line := range lines {
		fmt.Fprintf(b, "    %s\n", line)
	}
}
