package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/guardlens/guardlens/internal/adapters/inbound/mcp"
	"github.com/guardlens/guardlens/internal/adapters/outbound/config"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Expose guardlens to assistants over MCP",
		Long: "Run guardlens as a Model Context Protocol server so an assistant can turn raw " +
			"cfn-guard output into violations without writing result files first.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve guardlens tools on stdin/stdout",
		Long: "Serve the guardlens_validate, guardlens_normalize and guardlens_parse_message tools " +
			"and the guardlens://config and guardlens://report-schema resources over stdio.\n" +
			"The project's .guardlens.yaml is checked before the server starts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(projectPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			if _, err := config.New().Load(absPath); err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			slog.Info("serving mcp over stdio", "path", absPath)
			return server.ServeStdio(mcpadapter.NewGuardlensMCPServer(absPath))
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", ".", "Project path holding .guardlens.yaml")

	return cmd
}
