package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guardlens/guardlens/internal/adapters/outbound/config"
	"github.com/guardlens/guardlens/internal/adapters/outbound/tui"
	"github.com/guardlens/guardlens/internal/domain/message"
)

// parsedMessage is the JSON form of message.Parsed. Fields the message did
// not set are omitted.
type parsedMessage struct {
	Fix         *string `json:"fix,omitempty"`
	Description *string `json:"description,omitempty"`
}

func toParsedMessage(p message.Parsed) parsedMessage {
	var out parsedMessage
	if p.HasFix {
		out.Fix = &p.Fix
	}
	if p.HasDescription {
		out.Description = &p.Description
	}
	return out
}

func newParseMessageCmd() *cobra.Command {
	var (
		projectPath string
		styled      bool
	)

	cmd := &cobra.Command{
		Use:   "parse-message <custom-message>",
		Short: "Split a rule's custom message into fix and description",
		Long: "Parse a custom_message the way violations are built from it. Segments are separated by ';' " +
			"or, failing that, by line breaks. Segments starting with \"[FIX]:\" or \"Fix:\" set the fix, " +
			"anything else sets the description.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := message.Parse(args[0])
			if styled {
				cfg, err := config.New().Load(projectPath)
				if err != nil {
					return fmt.Errorf("loading config: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderMessage(p, cfg.Fix()))
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(toParsedMessage(p))
		},
	}

	cmd.Flags().BoolVar(&styled, "tui", false, "Render for the terminal instead of JSON")
	cmd.Flags().StringVar(&projectPath, "path", ".", "Project path holding .guardlens.yaml")

	return cmd
}
