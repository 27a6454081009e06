// Package mcp provides the verdict MCP server, registering all tools
// and publishing model instructions.
package mcp

import (
	"context"
	_ "embed"
	"net/url"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/deixis/verdict"
	"github.com/deixis/verdict/internal/config"
	"github.com/deixis/verdict/internal/report"
	"github.com/deixis/verdict/internal/runner"
	"github.com/deixis/verdict/internal/workflow"
)

//go:embed instructions.md
var Instructions string

// handler holds shared dependencies for all tool handlers.
type handler struct {
	engine *workflow.Engine
	store  report.Store
}

// NewServer creates an MCP server with all verdict tools registered.
func NewServer(cfg *config.Config, r workflow.CommandRunner, store report.Store, workspace string) *mcp.Server {
	h := &handler{
		engine: &workflow.Engine{
			Config:    cfg,
			Runner:    r,
			Workspace: workspace,
		},
		store: store,
	}

	opts := &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
		InitializedHandler: func(ctx context.Context, req *mcp.InitializedRequest) {
			h.updateWorkspaceFromRoots(ctx, req.Session)
		},
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "verdict", Version: verdict.Version}, opts)

	mcp.AddTool(s, &mcp.Tool{
		Name: "verdict_detect",
		Description: `List the language ecosystems detected in the workspace and the hooks each would run.

Use this to preview a run. Detection is a single non-recursive scan of the
workspace root for manifest files (Cargo.toml, package.json, go.mod, ...).`,
	}, h.detectHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "verdict_run",
		Description: `Run every verification hook for the detected ecosystems and report one verdict.

Hooks (builds, linters, tests, security audits) run concurrently on a bounded
pool; no hook's failure stops the others. Results are stored for drill-down
via verdict_report.`,
	}, h.runHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "verdict_report",
		Description: `Drill into a stored run. Use the run_id from verdict_run output.

Returns per-hook status, exit code, duration, and captured output for hooks
that failed or could not start.`,
	}, h.reportHandler)

	return s
}

// updateWorkspaceFromRoots queries the client for MCP roots and updates
// the handler's engine and config if a valid root is returned. This is
// called during session initialization, before any tool calls.
func (h *handler) updateWorkspaceFromRoots(ctx context.Context, session *mcp.ServerSession) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	roots, err := session.ListRoots(ctx, &mcp.ListRootsParams{})
	if err != nil {
		return
	}
	if len(roots.Roots) == 0 {
		return
	}

	u, err := url.Parse(roots.Roots[0].URI)
	if err != nil || u.Scheme != "file" {
		return
	}
	workspace := u.Path

	cfg, err := config.Load(workspace)
	if err != nil {
		return
	}

	h.engine.Config = cfg
	h.engine.Workspace = workspace

	if r, ok := h.engine.Runner.(*runner.Runner); ok {
		r.Workspace = workspace
		r.Timeout = cfg.Timeout()
		r.MaxOutput = cfg.MaxOutputBytes()
	}
}

// textResult is a helper to build a text-only tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
