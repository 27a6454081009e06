// Package verdict holds module-level metadata shared by the CLI and the
// MCP server.
package verdict

// Version is the current verdict release.
const Version = "0.3.0"
