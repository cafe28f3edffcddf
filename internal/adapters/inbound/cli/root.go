package cli

import (
	"github.com/guardlens/guardlens/internal/adapters/outbound/config"
	"github.com/guardlens/guardlens/internal/logging"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "guardlens",
		Short: "Readable violations from cfn-guard results",
		Long: "guardlens reads the JSON or YAML results written by cfn-guard, normalizes their " +
			"shifting layouts and groups failed checks into one violation per rule and fix.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			jsonOutput := false
			if f := cmd.Flags().Lookup("json"); f != nil {
				jsonOutput = f.Value.String() == "true"
			}
			level := logLevel
			if !cmd.Flags().Changed("log-level") {
				if configured := configuredLogLevel(cmd); configured != "" {
					level = configured
				}
			}
			logging.Init(jsonOutput, logging.ParseLevel(level))
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newNormalizeCmd())
	cmd.AddCommand(newParseMessageCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// configuredLogLevel returns log_level from the config of the command's
// --path project, or "" when the command has no --path or the config cannot
// be read. Config errors surface later when the command loads it for real.
func configuredLogLevel(cmd *cobra.Command) string {
	f := cmd.Flags().Lookup("path")
	if f == nil {
		return ""
	}
	cfg, err := config.New().Load(f.Value.String())
	if err != nil {
		return ""
	}
	return cfg.LogLevel
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}
