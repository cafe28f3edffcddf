// Package guard defines the canonical shape of a cfn-guard result once the
// normalizer has rewritten it, and decodes generic values into that shape.
package guard

import (
	"github.com/guardlens/guardlens/internal/domain/value"
)

// Result statuses reported by the evaluator.
const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
	StatusSkip = "SKIP"
)

// Traversed records how far the evaluator reached into the evaluated
// document.
type Traversed struct {
	Path  string      `json:"path"`
	Value value.Value `json:"value"`
}

// Messages carries the author-written custom message and the evaluator's own
// error message for a check.
type Messages struct {
	CustomMessage string `json:"custom_message,omitempty"`
	ErrorMessage  string `json:"error_message"`
}

// TraversedPair is the canonical traversed record. To is always set. From is
// set for resolved comparisons and usually nil for unresolved ones.
type TraversedPair struct {
	To   Traversed  `json:"to"`
	From *Traversed `json:"from,omitempty"`
}

// Check is one canonical per-rule check.
type Check struct {
	Resolved  bool          `json:"resolved"`
	Traversed TraversedPair `json:"traversed"`
	Messages  *Messages     `json:"messages,omitempty"`
}

// CustomMessage returns the check's custom message, or "" if it has none.
func (c Check) CustomMessage() string {
	if c.Messages == nil {
		return ""
	}
	return c.Messages.CustomMessage
}

// ErrorMessage returns the check's error message, or "" if it has none.
func (c Check) ErrorMessage() string {
	if c.Messages == nil {
		return ""
	}
	return c.Messages.ErrorMessage
}

// NonCompliantRule is one failed rule. Checks keeps the normalized values so
// that entries in a shape nobody recognized can still be skipped one at a
// time by the aggregator.
type NonCompliantRule struct {
	Name     string        `json:"name"`
	Messages *Messages     `json:"messages,omitempty"`
	Checks   []value.Value `json:"checks"`
}

// GuardResult is the top-level result of evaluating one rule file against one
// document.
type GuardResult struct {
	Name          string             `json:"name,omitempty"`
	Status        string             `json:"status"`
	NotCompliant  []NonCompliantRule `json:"not_compliant"`
	NotApplicable []string           `json:"not_applicable,omitempty"`
	Compliant     []string           `json:"compliant,omitempty"`
}

// IsCompliant reports whether no rule failed.
func (r *GuardResult) IsCompliant() bool {
	return len(r.NotCompliant) == 0
}
