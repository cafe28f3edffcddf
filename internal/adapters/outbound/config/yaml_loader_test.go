package config_test

import (
	"os"
	"path/filepath"
	"testing"

	appconfig "github.com/guardlens/guardlens/internal/adapters/outbound/config"
	"github.com/guardlens/guardlens/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".guardlens.yaml"), []byte(content), 0644))
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_EmptyFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "")

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
documentation_base_url: https://rules.example.com/registry
rules_root: guard/rules
default_fix: ""
disabled_rules:
  - s3_bucket_versioning_enabled
  - iam_no_inline_policy_check
log_level: debug
`)

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://rules.example.com/registry", cfg.DocumentationBaseURL)
	assert.Equal(t, "guard/rules", cfg.RulesRoot)
	assert.Equal(t, "", cfg.Fix())
	assert.Equal(t, []string{"s3_bucket_versioning_enabled", "iam_no_inline_policy_check"}, cfg.DisabledRules)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, domain.DefaultPluginName, cfg.PluginName)
}

func TestYAMLLoader_PartialConfigKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `plugin_name: my-guard`)

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "my-guard", cfg.PluginName)
	assert.Equal(t, domain.DefaultDocsBase, cfg.DocumentationBaseURL)
	assert.Equal(t, domain.DefaultFix, cfg.Fix())
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{{{invalid yaml`)

	_, err := appconfig.New().Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .guardlens.yaml")
}

func TestYAMLLoader_UnknownFieldRejected(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `disabled_rule: [x]`)

	_, err := appconfig.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled_rule")
}

func TestYAMLLoader_ValidationError(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `documentation_base_url: not-a-url`)

	_, err := appconfig.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid .guardlens.yaml")
}
