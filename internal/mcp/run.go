package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/deixis/verdict/internal/ecosystem"
)

type runParams struct {
	Ecosystems  []string `json:"ecosystems,omitempty" jsonschema:"restrict the run to these ecosystems (e.g. [\"rust\", \"node\"]); empty means everything detected"`
	Concurrency int      `json:"concurrency,omitempty" jsonschema:"override the worker pool size for this run; 0 uses the configured value"`
}

func (h *handler) runHandler(ctx context.Context, req *mcp.CallToolRequest, params runParams) (*mcp.CallToolResult, any, error) {
	for _, name := range params.Ecosystems {
		if !ecosystem.Known(name) {
			return errorResult(fmt.Sprintf("unknown ecosystem %q", name))
		}
	}

	// Copy the engine so per-call overrides never leak into the shared one.
	engine := *h.engine
	if params.Concurrency > 0 {
		engine.Concurrency = params.Concurrency
	}

	run, err := engine.VerifyOnly(ctx, params.Ecosystems)
	if err != nil {
		return errorResult(fmt.Sprintf("Run failed to start: %v", err))
	}

	if err := h.store.Save(run); err != nil {
		return errorResult(fmt.Sprintf("Run completed but could not be stored: %v\n\n%s", err, run.Summary()))
	}

	out := fmt.Sprintf("Run: %s\n\n%s", run.ID, run.Summary())
	if !run.Success() {
		out += fmt.Sprintf("\nUse verdict_report with run_id %s for per-hook output.\n", run.ID)
	}
	return textResult(out)
}
