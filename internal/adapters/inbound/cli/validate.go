package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/guardlens/guardlens/internal/adapters/outbound/config"
	"github.com/guardlens/guardlens/internal/adapters/outbound/gitinfo"
	"github.com/guardlens/guardlens/internal/adapters/outbound/history"
	"github.com/guardlens/guardlens/internal/adapters/outbound/manifest"
	"github.com/guardlens/guardlens/internal/adapters/outbound/reader"
	"github.com/guardlens/guardlens/internal/adapters/outbound/report"
	"github.com/guardlens/guardlens/internal/adapters/outbound/tui"
	"github.com/guardlens/guardlens/internal/application"
	"github.com/guardlens/guardlens/internal/domain"
)

// ErrValidationFailed is returned when the report does not pass, so the
// process exits non-zero.
var ErrValidationFailed = errors.New("validation failed")

func newValidateCmd() *cobra.Command {
	var (
		projectPath  string
		rulePath     string
		templatePath string
		manifestPath string
		outPath      string
		baselinePath string
		jsonOutput   bool
		record       bool
	)

	cmd := &cobra.Command{
		Use:   "validate [result-file...]",
		Short: "Turn cfn-guard results into a violation report",
		Long: "Read one or more cfn-guard result files and report violations grouped by rule and fix.\n" +
			"Result files given as arguments were all produced by --rule against --template. " +
			"Use --manifest to validate many rule runs at once.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var evals []domain.Evaluation
			if manifestPath != "" {
				loaded, err := manifest.New().Load(manifestPath)
				if err != nil {
					return err
				}
				evals = append(evals, loaded...)
			}
			if len(args) > 0 && rulePath == "" {
				return fmt.Errorf("--rule is required when result files are given")
			}
			if rulePath != "" {
				// Relative to the working directory, not to --path.
				abs, err := filepath.Abs(rulePath)
				if err != nil {
					return fmt.Errorf("resolving rule path: %w", err)
				}
				rulePath = abs
			}
			for _, result := range args {
				evals = append(evals, domain.Evaluation{
					RulePath:     rulePath,
					TemplatePath: templatePath,
					ResultPath:   result,
				})
			}
			if len(evals) == 0 {
				return fmt.Errorf("nothing to validate: pass result files or --manifest")
			}

			absPath, err := filepath.Abs(projectPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			svc := application.NewValidateService(config.New(), reader.New(), gitinfo.New())
			rep, err := svc.Validate(cmd.Context(), absPath, evals)
			if err != nil {
				return fmt.Errorf("validate failed: %w", err)
			}

			store := report.New()
			if baselinePath != "" {
				baseline, err := store.Load(baselinePath)
				if err != nil {
					return fmt.Errorf("loading baseline: %w", err)
				}
				application.ApplyBaseline(rep, baseline)
			}

			if outPath != "" {
				if err := store.Save(outPath, rep); err != nil {
					return err
				}
			}

			if record {
				if err := history.New().Save(absPath, rep.Entry()); err != nil {
					return fmt.Errorf("recording run: %w", err)
				}
			}

			if jsonOutput {
				data, err := report.Encode(rep)
				if err != nil {
					return err
				}
				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(rep))
			}

			if !rep.Success {
				return fmt.Errorf("%w: %d violations, %d unreadable results",
					ErrValidationFailed, len(rep.Violations), len(rep.Failures))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", ".", "Project path holding .guardlens.yaml")
	cmd.Flags().StringVar(&rulePath, "rule", "", "Rule file the result files were produced with")
	cmd.Flags().StringVar(&templatePath, "template", "", "Template the rule was evaluated against")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "YAML manifest listing rule, template and result per evaluation")
	cmd.Flags().StringVar(&outPath, "out", "", "Also write the JSON report to this file")
	cmd.Flags().StringVar(&baselinePath, "baseline", "", "Suppress violations already present in this earlier report")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output report as JSON")
	cmd.Flags().BoolVar(&record, "record", false, "Append a summary of this run to the project history")

	return cmd
}
