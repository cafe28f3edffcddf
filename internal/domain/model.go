package domain

import (
	"time"
)

// Report is the outcome of one validation run over any number of
// evaluations.
type Report struct {
	PluginName string      `json:"pluginName"`
	Success    bool        `json:"success"`
	Violations []Violation `json:"violations"`
	// Suppressed counts violations dropped because a baseline already
	// recorded them.
	Suppressed int                 `json:"suppressed"`
	Failures   []EvaluationFailure `json:"failures,omitempty"`
	CommitHash string              `json:"commitHash,omitempty"`
	Timestamp  time.Time           `json:"timestamp"`
}

// Status is PASS or FAIL.
func (r Report) Status() string { return StatusFor(r.Success) }

func StatusFor(success bool) string {
	if success {
		return "PASS"
	}
	return "FAIL"
}

// ResourceCount returns the number of resource entries across all
// violations.
func (r Report) ResourceCount() int {
	n := 0
	for _, v := range r.Violations {
		n += len(v.ViolatingResources)
	}
	return n
}

// Fingerprints returns the set of non-empty violation fingerprints.
func (r Report) Fingerprints() map[string]bool {
	set := make(map[string]bool, len(r.Violations))
	for _, v := range r.Violations {
		if v.Fingerprint != "" {
			set[v.Fingerprint] = true
		}
	}
	return set
}

// Violation groups the failed checks of one rule that share a fix.
type Violation struct {
	RuleName           string              `json:"ruleName"`
	Description        string              `json:"description"`
	Fix                string              `json:"fix"`
	RuleMetadata       RuleMetadata        `json:"ruleMetadata"`
	ViolatingResources []ViolatingResource `json:"violatingResources"`
	Fingerprint        string              `json:"fingerprint,omitempty"`
}

type RuleMetadata struct {
	DocumentationURL string `json:"documentationUrl"`
}

// ViolatingResource lists every location inside one template resource that
// failed a check. Locations keep encounter order and may repeat.
type ViolatingResource struct {
	ResourceLogicalID string   `json:"resourceLogicalId"`
	Locations         []string `json:"locations"`
	TemplatePath      string   `json:"templatePath"`
}

// Evaluation names the files involved in one rule run: the rule file, the
// template it was evaluated against and the result document the evaluator
// wrote.
type Evaluation struct {
	RulePath     string `yaml:"rule"     json:"rule"`
	TemplatePath string `yaml:"template" json:"template"`
	ResultPath   string `yaml:"result"   json:"result"`
}

// EvaluationFailure records an evaluation whose result could not be read.
type EvaluationFailure struct {
	ResultPath string `json:"result"`
	Error      string `json:"error"`
}

// RunEntry summarizes one recorded validation run.
type RunEntry struct {
	Timestamp  string `json:"timestamp"`
	CommitHash string `json:"commit_hash,omitempty"`
	Success    bool   `json:"success"`
	Violations int    `json:"violations"`
	Resources  int    `json:"resources"`
	Suppressed int    `json:"suppressed"`
	Failures   int    `json:"failures"`
}

// Entry returns the history summary of the report.
func (r Report) Entry() RunEntry {
	return RunEntry{
		Timestamp:  r.Timestamp.UTC().Format(time.RFC3339),
		CommitHash: r.CommitHash,
		Success:    r.Success,
		Violations: len(r.Violations),
		Resources:  r.ResourceCount(),
		Suppressed: r.Suppressed,
		Failures:   len(r.Failures),
	}
}
