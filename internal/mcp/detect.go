package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/deixis/verdict/internal/ecosystem"
	"github.com/deixis/verdict/internal/hook"
)

type detectParams struct{}

func (h *handler) detectHandler(ctx context.Context, req *mcp.CallToolRequest, _ detectParams) (*mcp.CallToolResult, any, error) {
	detected, err := ecosystem.Detect(h.engine.Workspace)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to scan workspace: %v", err))
	}
	detected = h.engine.Config.FilterEcosystems(detected)

	if len(detected) == 0 {
		return textResult(fmt.Sprintf("No known ecosystems in %s. Nothing would run.", h.engine.Workspace))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Workspace: %s\n", h.engine.Workspace)
	fmt.Fprintf(&b, "Ecosystems (%d):\n", len(detected))
	fmt.Fprintln(&b)

	for _, eco := range detected {
		defs := hook.For(eco)
		fmt.Fprintf(&b, "%s (%d hooks):\n", eco, len(defs))
		for _, d := range defs {
			fmt.Fprintf(&b, "  %-24s %s\n", d.Name, d.Command())
		}
		fmt.Fprintln(&b)
	}

	return textResult(strings.TrimRight(b.String(), "\n") + "\n")
}
