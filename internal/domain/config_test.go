package domain_test

import (
	"testing"

	"github.com/guardlens/guardlens/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Equal(t, "cdk-validator-cfnguard", cfg.PluginName)
	assert.Equal(t, domain.DefaultRulesRoot, cfg.RulesRoot)
	assert.Equal(t, domain.DefaultDocsBase, cfg.DocumentationBaseURL)
	assert.Equal(t, "N/A", cfg.Fix())
	assert.Empty(t, cfg.DisabledRules)
	require.NoError(t, cfg.Validate())
}

func TestWithDefaults_KeepsExplicitValues(t *testing.T) {
	empty := ""
	cfg := domain.ProjectConfig{
		PluginName: "custom",
		DefaultFix: &empty,
	}.WithDefaults()

	assert.Equal(t, "custom", cfg.PluginName)
	assert.Equal(t, "", cfg.Fix())
	assert.Equal(t, domain.DefaultDocsBase, cfg.DocumentationBaseURL)
	assert.Equal(t, domain.DefaultRulesRoot, cfg.RulesRoot)
}

func TestFix_NilFallsBack(t *testing.T) {
	assert.Equal(t, domain.DefaultFix, domain.ProjectConfig{}.Fix())
}

func TestIsRuleDisabled(t *testing.T) {
	cfg := domain.ProjectConfig{DisabledRules: []string{"s3_bucket_versioning_enabled"}}
	assert.True(t, cfg.IsRuleDisabled("rules/aws/s3/s3_bucket_versioning_enabled.guard"))
	assert.True(t, cfg.IsRuleDisabled("s3_bucket_versioning_enabled"))
	assert.False(t, cfg.IsRuleDisabled("rules/aws/s3/s3_bucket_logging_enabled.guard"))
	assert.False(t, domain.DefaultConfig().IsRuleDisabled("anything.guard"))
}

func TestValidate_DocumentationBaseURL(t *testing.T) {
	cases := []struct {
		url   string
		valid bool
	}{
		{"", true},
		{"https://example.com/rules", true},
		{"http://localhost:8080", true},
		{"example.com/rules", false},
		{"ftp://example.com", false},
		{"https://", false},
	}
	for _, tc := range cases {
		err := domain.ProjectConfig{DocumentationBaseURL: tc.url}.Validate()
		if tc.valid {
			assert.NoError(t, err, tc.url)
		} else {
			assert.Error(t, err, tc.url)
		}
	}
}

func TestValidate_DisabledRules(t *testing.T) {
	err := domain.ProjectConfig{DisabledRules: []string{"ok", " "}}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled_rules[1]")

	err = domain.ProjectConfig{DisabledRules: []string{"rules/x"}}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a path")
}

func TestValidate_LogLevel(t *testing.T) {
	assert.NoError(t, domain.ProjectConfig{LogLevel: "DEBUG"}.Validate())
	err := domain.ProjectConfig{LogLevel: "verbose"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verbose")
}
