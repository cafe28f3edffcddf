package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guardlens/guardlens/internal/adapters/outbound/reader"
	"github.com/guardlens/guardlens/internal/domain/normalize"
)

func newNormalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize <result-file>",
		Short: "Print the canonical form of a cfn-guard result",
		Long: "Rewrite a cfn-guard result into the canonical shape used for aggregation and print it as JSON. " +
			"Files with several documents print one JSON document per input document.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := reader.New().Read(args[0])
			if err != nil {
				return err
			}
			for _, doc := range docs {
				data, err := json.MarshalIndent(normalize.Tree(doc), "", "  ")
				if err != nil {
					return fmt.Errorf("encoding normalized result: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			}
			return nil
		},
	}
	return cmd
}
