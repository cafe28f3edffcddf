package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/guardlens/guardlens/internal/adapters/outbound/config"
	"github.com/guardlens/guardlens/internal/adapters/outbound/gitinfo"
	"github.com/guardlens/guardlens/internal/adapters/outbound/reader"
	"github.com/guardlens/guardlens/internal/application"
	"github.com/guardlens/guardlens/internal/domain"
	"github.com/guardlens/guardlens/internal/domain/message"
	"github.com/guardlens/guardlens/internal/domain/normalize"
	"github.com/guardlens/guardlens/internal/domain/value"
)

// registerTools registers all guardlens MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. guardlens_validate
	s.AddTool(
		mcplib.NewTool("guardlens_validate",
			mcplib.WithDescription("Build a violation report from the text of a cfn-guard result. Returns the report as JSON."),
			mcplib.WithString("result",
				mcplib.Required(),
				mcplib.Description("Raw cfn-guard output (JSON, or YAML when format is yaml)"),
			),
			mcplib.WithString("rule_path",
				mcplib.Required(),
				mcplib.Description("Path of the rule file the result was produced with"),
			),
			mcplib.WithString("template_path", mcplib.Description("Path of the evaluated template")),
			mcplib.WithString("format", mcplib.Description("Result format: json or yaml (default: json)")),
		),
		handleValidate(projectPath),
	)

	// 2. guardlens_normalize
	s.AddTool(
		mcplib.NewTool("guardlens_normalize",
			mcplib.WithDescription("Rewrite a cfn-guard result into its canonical shape. Returns one JSON document per input document."),
			mcplib.WithString("result",
				mcplib.Required(),
				mcplib.Description("Raw cfn-guard output (JSON, or YAML when format is yaml)"),
			),
			mcplib.WithString("format", mcplib.Description("Result format: json or yaml (default: json)")),
		),
		handleNormalize(),
	)

	// 3. guardlens_parse_message
	s.AddTool(
		mcplib.NewTool("guardlens_parse_message",
			mcplib.WithDescription("Split a rule's custom message into fix and description"),
			mcplib.WithString("message",
				mcplib.Required(),
				mcplib.Description("The custom_message text"),
			),
		),
		handleParseMessage(),
	)
}

func handleValidate(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		raw, err := request.RequireString("result")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		rulePath, err := request.RequireString("rule_path")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		format, _ := request.GetArguments()["format"].(string)
		docs, err := decodeResult(raw, format)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		svc := application.NewValidateService(config.New(), reader.New(), gitinfo.New())
		templatePath, _ := request.GetArguments()["template_path"].(string)
		eval := domain.Evaluation{
			RulePath:     rulePath,
			TemplatePath: templatePath,
		}
		report, err := svc.ValidateDocuments(ctx, projectPath, eval, docs)
		if err != nil {
			return errorResult(fmt.Sprintf("validate failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleNormalize() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		raw, err := request.RequireString("result")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		format, _ := request.GetArguments()["format"].(string)
		docs, err := decodeResult(raw, format)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		parts := make([]string, 0, len(docs))
		for _, doc := range docs {
			data, err := json.MarshalIndent(normalize.Tree(doc), "", "  ")
			if err != nil {
				return nil, fmt.Errorf("marshaling result: %w", err)
			}
			parts = append(parts, string(data))
		}
		return textResult(strings.Join(parts, "\n")), nil
	}
}

func handleParseMessage() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		msg, err := request.RequireString("message")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		p := message.Parse(msg)
		out := map[string]string{}
		if p.HasFix {
			out["fix"] = p.Fix
		}
		if p.HasDescription {
			out["description"] = p.Description
		}
		return jsonResult(out)
	}
}

func decodeResult(raw, format string) ([]value.Value, error) {
	switch strings.ToLower(format) {
	case "", "json":
		return reader.Decode([]byte(raw), false)
	case "yaml", "yml":
		return reader.Decode([]byte(raw), true)
	default:
		return nil, fmt.Errorf("unknown format %q (valid: json, yaml)", format)
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
