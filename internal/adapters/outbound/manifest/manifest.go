// Package manifest reads the list of evaluations to validate from a YAML file:
//
//	evaluations:
//	  - rule: rules/s3/s3_bucket_versioning_enabled.guard
//	    template: cdk.out/Stack.template.json
//	    result: out/s3_bucket_versioning_enabled.json
//
// Relative paths are resolved against the manifest's directory.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/guardlens/guardlens/internal/domain"
	"gopkg.in/yaml.v3"
)

type file struct {
	Evaluations []domain.Evaluation `yaml:"evaluations"`
}

// YAMLLoader implements domain.ManifestLoader.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads the manifest at path.
func (l *YAMLLoader) Load(path string) ([]domain.Evaluation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m file
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", filepath.Base(path), err)
	}

	dir := filepath.Dir(path)
	evals := make([]domain.Evaluation, 0, len(m.Evaluations))
	for i, e := range m.Evaluations {
		if e.ResultPath == "" {
			return nil, fmt.Errorf("manifest evaluations[%d]: result is required", i)
		}
		if e.RulePath == "" {
			return nil, fmt.Errorf("manifest evaluations[%d]: rule is required", i)
		}
		e.ResultPath = resolve(dir, e.ResultPath)
		e.RulePath = resolve(dir, e.RulePath)
		if e.TemplatePath != "" {
			e.TemplatePath = resolve(dir, e.TemplatePath)
		}
		evals = append(evals, e)
	}
	return evals, nil
}

func resolve(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
