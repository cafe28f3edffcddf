package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

const instructions = "guardlens reads cfn-guard results. Pass the raw output of " +
	"`cfn-guard validate --output-format json` (or yaml) to guardlens_validate together with " +
	"the rule file path to get violations grouped by rule and fix. guardlens_normalize shows " +
	"the canonical check layout and guardlens_parse_message explains how a rule's " +
	"custom_message splits into fix and description."

// NewGuardlensMCPServer builds the MCP server for the project at projectPath.
// Every tool call reloads .guardlens.yaml from there, so config edits apply
// without a restart.
func NewGuardlensMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"guardlens",
		"0.1.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions(instructions),
		server.WithRecovery(),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
