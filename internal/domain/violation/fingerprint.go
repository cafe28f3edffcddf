package violation

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
	"github.com/guardlens/guardlens/internal/domain"
)

type fingerprintInput struct {
	RuleName    string   `json:"ruleName"`
	Fix         string   `json:"fix"`
	Description string   `json:"description"`
	Resources   []string `json:"resources"`
}

// Fingerprint identifies a violation across runs. It covers the rule name,
// fix, description and resource ids but not locations or template paths, so
// moving a property inside a resource keeps the same fingerprint.
func Fingerprint(v domain.Violation) (string, error) {
	in := fingerprintInput{
		RuleName:    v.RuleName,
		Fix:         v.Fix,
		Description: v.Description,
		Resources:   make([]string, 0, len(v.ViolatingResources)),
	}
	for _, r := range v.ViolatingResources {
		in.Resources = append(in.Resources, r.ResourceLogicalID)
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("encoding fingerprint input: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("canonicalizing fingerprint input: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
