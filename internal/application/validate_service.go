package application

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/guardlens/guardlens/internal/domain"
	"github.com/guardlens/guardlens/internal/domain/normalize"
	"github.com/guardlens/guardlens/internal/domain/value"
	"github.com/guardlens/guardlens/internal/domain/violation"
)

// ValidateService turns evaluator result files into a report:
// read → normalize → aggregate per rule → concatenate → fingerprint.
type ValidateService struct {
	configLoader domain.ConfigLoader
	reader       domain.ResultReader
	gitInfo      domain.GitInfo
	now          func() time.Time
}

// NewValidateService creates a ValidateService. gitInfo may be nil, in which
// case reports carry no commit hash.
func NewValidateService(
	configLoader domain.ConfigLoader,
	reader domain.ResultReader,
	gitInfo domain.GitInfo,
) *ValidateService {
	return &ValidateService{
		configLoader: configLoader,
		reader:       reader,
		gitInfo:      gitInfo,
		now:          time.Now,
	}
}

// Validate reads the result file of every evaluation and builds one report.
// An evaluation whose result cannot be read or parsed marks the report as
// failed and contributes no violations; the remaining evaluations still run.
func (s *ValidateService) Validate(ctx context.Context, projectPath string, evals []domain.Evaluation) (*domain.Report, error) {
	return s.run(ctx, projectPath, evals, func(e domain.Evaluation) ([]value.Value, error) {
		return s.reader.Read(e.ResultPath)
	})
}

// ValidateDocuments builds a report for a single evaluation whose result
// documents are already in memory.
func (s *ValidateService) ValidateDocuments(ctx context.Context, projectPath string, eval domain.Evaluation, docs []value.Value) (*domain.Report, error) {
	return s.run(ctx, projectPath, []domain.Evaluation{eval}, func(domain.Evaluation) ([]value.Value, error) {
		return docs, nil
	})
}

type loadFunc func(domain.Evaluation) ([]value.Value, error)

func (s *ValidateService) run(ctx context.Context, projectPath string, evals []domain.Evaluation, load loadFunc) (*domain.Report, error) {
	// 1. Load config
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	agg := violation.New(cfg)
	absProject, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("resolving project path: %w", err)
	}
	agg.ProjectDir = absProject

	report := &domain.Report{
		PluginName: cfg.PluginName,
		Success:    true,
		Violations: []domain.Violation{},
	}

	// 2. Evaluate sequentially, checking for cancellation in between
	for _, eval := range evals {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if cfg.IsRuleDisabled(eval.RulePath) {
			slog.Info("rule disabled, skipping", "rule", eval.RulePath, "template", eval.TemplatePath)
			continue
		}

		violations, compliant, err := s.evaluate(agg, eval, load)
		if err != nil {
			slog.Warn("evaluation failed", "result", eval.ResultPath, "rule", eval.RulePath, "error", err)
			report.Success = false
			report.Failures = append(report.Failures, domain.EvaluationFailure{
				ResultPath: eval.ResultPath,
				Error:      err.Error(),
			})
			continue
		}
		if !compliant {
			report.Success = false
		}
		report.Violations = append(report.Violations, violations...)
	}

	// 3. Fingerprint
	for i := range report.Violations {
		fp, err := violation.Fingerprint(report.Violations[i])
		if err != nil {
			return nil, fmt.Errorf("fingerprinting violation of %s: %w", report.Violations[i].RuleName, err)
		}
		report.Violations[i].Fingerprint = fp
	}

	// 4. Stamp
	report.Timestamp = s.now().UTC()
	if s.gitInfo != nil {
		if hash, err := s.gitInfo.CommitHash(projectPath); err == nil {
			report.CommitHash = hash
		} else {
			slog.Debug("no commit hash", "path", projectPath, "error", err)
		}
	}

	return report, nil
}

// evaluate processes every document of one evaluation. Nothing is returned
// unless all documents were read.
func (s *ValidateService) evaluate(agg *violation.Aggregator, eval domain.Evaluation, load loadFunc) ([]domain.Violation, bool, error) {
	docs, err := load(eval)
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", eval.ResultPath, err)
	}

	var violations []domain.Violation
	compliant := true
	for i, doc := range docs {
		result, err := normalize.Result(doc)
		if err != nil {
			return nil, false, fmt.Errorf("document %d of %s: %w", i+1, eval.ResultPath, err)
		}
		if result.IsCompliant() {
			continue
		}
		compliant = false
		for _, rule := range result.NotCompliant {
			out := agg.Aggregate(rule, eval.TemplatePath, eval.RulePath)
			if out.Skipped > 0 {
				slog.Debug("skipped checks without a location", "rule", rule.Name, "count", out.Skipped)
			}
			violations = append(violations, out.Violations...)
		}
	}
	return violations, compliant, nil
}

// ApplyBaseline removes violations already recorded in baseline and counts
// them in report.Suppressed. A report whose every violation was suppressed
// passes unless an evaluation failed.
func ApplyBaseline(report, baseline *domain.Report) {
	if baseline == nil {
		return
	}
	known := baseline.Fingerprints()
	kept := report.Violations[:0]
	for _, v := range report.Violations {
		if known[v.Fingerprint] {
			report.Suppressed++
			continue
		}
		kept = append(kept, v)
	}
	report.Violations = kept
	if report.Suppressed > 0 && len(kept) == 0 && len(report.Failures) == 0 {
		report.Success = true
	}
}
