package domain

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

const (
	DefaultPluginName = "cdk-validator-cfnguard"
	DefaultDocsBase   = "https://github.com/cdklabs/cdk-validator-cfnguard/blob/main/rules/aws-guard-rules-registry"
	DefaultRulesRoot  = "rules/aws-guard-rules-registry"
	// DefaultFix is used as the fix of a violation when no check of the rule
	// carried fix text.
	DefaultFix = "N/A"
)

var validLogLevels = []string{"", "debug", "info", "warn", "warning", "error"}

// ProjectConfig holds project-level configuration loaded from .guardlens.yaml.
type ProjectConfig struct {
	PluginName           string   `yaml:"plugin_name"            json:"plugin_name,omitempty"`
	RulesRoot            string   `yaml:"rules_root"             json:"rules_root,omitempty"`
	DocumentationBaseURL string   `yaml:"documentation_base_url" json:"documentation_base_url,omitempty"`
	DefaultFix           *string  `yaml:"default_fix"            json:"default_fix,omitempty"`
	DisabledRules        []string `yaml:"disabled_rules"         json:"disabled_rules,omitempty"`
	LogLevel             string   `yaml:"log_level"              json:"log_level,omitempty"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() ProjectConfig {
	fix := DefaultFix
	return ProjectConfig{
		PluginName:           DefaultPluginName,
		RulesRoot:            DefaultRulesRoot,
		DocumentationBaseURL: DefaultDocsBase,
		DefaultFix:           &fix,
	}
}

// WithDefaults fills every unset field from DefaultConfig. Explicit values,
// including an explicitly empty default_fix, always win.
func (c ProjectConfig) WithDefaults() ProjectConfig {
	d := DefaultConfig()
	if c.PluginName == "" {
		c.PluginName = d.PluginName
	}
	if c.RulesRoot == "" {
		c.RulesRoot = d.RulesRoot
	}
	if c.DocumentationBaseURL == "" {
		c.DocumentationBaseURL = d.DocumentationBaseURL
	}
	if c.DefaultFix == nil {
		c.DefaultFix = d.DefaultFix
	}
	return c
}

// Fix returns the configured default fix text.
func (c ProjectConfig) Fix() string {
	if c.DefaultFix == nil {
		return DefaultFix
	}
	return *c.DefaultFix
}

// IsRuleDisabled reports whether the rule file at rulePath is switched off.
// Rules are matched by file name without extension.
func (c ProjectConfig) IsRuleDisabled(rulePath string) bool {
	stem := strings.TrimSuffix(filepath.Base(rulePath), filepath.Ext(rulePath))
	for _, r := range c.DisabledRules {
		if r == stem {
			return true
		}
	}
	return false
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	if c.DocumentationBaseURL != "" {
		u, err := url.Parse(c.DocumentationBaseURL)
		if err != nil {
			return fmt.Errorf("documentation_base_url: %w", err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("documentation_base_url %q must be an absolute http(s) URL", c.DocumentationBaseURL)
		}
	}

	for i, r := range c.DisabledRules {
		if strings.TrimSpace(r) == "" {
			return fmt.Errorf("disabled_rules[%d] must not be empty", i)
		}
		if strings.ContainsAny(r, `/\`) {
			return fmt.Errorf("disabled_rules[%d] = %q must be a rule name, not a path", i, r)
		}
	}

	if !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

func isValidLogLevel(level string) bool {
	level = strings.ToLower(level)
	for _, l := range validLogLevels {
		if l == level {
			return true
		}
	}
	return false
}
