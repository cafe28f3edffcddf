package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/guardlens/guardlens/internal/adapters/outbound/config"
	"github.com/guardlens/guardlens/internal/adapters/outbound/report"
)

const (
	configURI = "guardlens://config"
	schemaURI = "guardlens://report-schema"
)

// registerResources registers all guardlens MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// 1. guardlens://config - effective project configuration
	s.AddResource(
		mcplib.NewResource(
			configURI,
			"Configuration",
			mcplib.WithResourceDescription("Effective guardlens configuration for the project, defaults included"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(projectPath),
	)

	// 2. guardlens://report-schema - JSON Schema of reports
	s.AddResource(
		mcplib.NewResource(
			schemaURI,
			"Report Schema",
			mcplib.WithResourceDescription("JSON Schema that every guardlens report conforms to"),
			mcplib.WithMIMEType("application/schema+json"),
		),
		handleSchemaResource(),
	)
}

func handleConfigResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := config.New().Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling config: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      configURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleSchemaResource() server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      schemaURI,
				MIMEType: "application/schema+json",
				Text:     string(report.Schema()),
			},
		}, nil
	}
}
