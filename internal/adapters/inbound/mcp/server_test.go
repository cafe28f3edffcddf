package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpadapter "github.com/guardlens/guardlens/internal/adapters/inbound/mcp"
)

const fixtureDir = "../../../../testdata/guard"

func TestNewGuardlensMCPServer(t *testing.T) {
	s := mcpadapter.NewGuardlensMCPServer(".")
	require.NotNil(t, s)
}

func TestMCPServerHasTools(t *testing.T) {
	s := mcpadapter.NewGuardlensMCPServer(".")
	tools := s.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{
		"guardlens_validate",
		"guardlens_normalize",
		"guardlens_parse_message",
	}
	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}
	assert.Len(t, tools, len(expectedTools), "should have exactly %d tools", len(expectedTools))
}

func callTool(t *testing.T, projectPath, name string, args map[string]any) *mcplib.CallToolResult {
	t.Helper()
	tools := mcpadapter.NewGuardlensMCPServer(projectPath).ListTools()
	tool, ok := tools[name]
	require.True(t, ok, "tool %q not registered", name)

	res, err := tool.Handler(context.Background(), mcplib.CallToolRequest{
		Params: mcplib.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	return res
}

func resultText(t *testing.T, res *mcplib.CallToolResult) string {
	t.Helper()
	text, ok := res.Content[0].(mcplib.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(fixtureDir, name))
	require.NoError(t, err)
	return string(data)
}

func TestValidateTool_NonCompliant(t *testing.T) {
	res := callTool(t, t.TempDir(), "guardlens_validate", map[string]any{
		"result":        readFixture(t, "resolved-clause-check.json"),
		"rule_path":     "rules/aws-guard-rules-registry/amazon_s3/s3_bucket_level_public_access_prohibited.guard",
		"template_path": "cdk.out/Stack.template.json",
	})
	require.False(t, res.IsError, resultText(t, res))

	var report struct {
		PluginName string `json:"pluginName"`
		Success    bool   `json:"success"`
		Violations []struct {
			RuleName           string `json:"ruleName"`
			Fingerprint        string `json:"fingerprint"`
			ViolatingResources []struct {
				ResourceLogicalID string `json:"resourceLogicalId"`
				TemplatePath      string `json:"templatePath"`
			} `json:"violatingResources"`
		} `json:"violations"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &report))

	assert.Equal(t, "cdk-validator-cfnguard", report.PluginName)
	assert.False(t, report.Success)
	require.NotEmpty(t, report.Violations)
	v := report.Violations[0]
	assert.Equal(t, "S3_BUCKET_LEVEL_PUBLIC_ACCESS_PROHIBITED", v.RuleName)
	assert.Len(t, v.Fingerprint, 64)
	require.NotEmpty(t, v.ViolatingResources)
	assert.Equal(t, "MyCustomL3ConstructBucket8C61BCA7", v.ViolatingResources[0].ResourceLogicalID)
	assert.Equal(t, "cdk.out/Stack.template.json", v.ViolatingResources[0].TemplatePath)
}

func TestValidateTool_Compliant(t *testing.T) {
	res := callTool(t, t.TempDir(), "guardlens_validate", map[string]any{
		"result":    readFixture(t, "compliant.json"),
		"rule_path": "s3.guard",
	})
	require.False(t, res.IsError, resultText(t, res))
	assert.Contains(t, resultText(t, res), `"success": true`)
}

func TestValidateTool_YAMLFormat(t *testing.T) {
	res := callTool(t, t.TempDir(), "guardlens_validate", map[string]any{
		"result":    readFixture(t, "resolved-clause-check.yaml"),
		"rule_path": "s3.guard",
		"format":    "yaml",
	})
	require.False(t, res.IsError, resultText(t, res))
	assert.Contains(t, resultText(t, res), `"success": false`)
}

func TestValidateTool_MissingRulePath(t *testing.T) {
	res := callTool(t, t.TempDir(), "guardlens_validate", map[string]any{
		"result": "{}",
	})
	assert.True(t, res.IsError)
}

func TestValidateTool_MalformedResult(t *testing.T) {
	res := callTool(t, t.TempDir(), "guardlens_validate", map[string]any{
		"result":    "{not json",
		"rule_path": "s3.guard",
	})
	assert.True(t, res.IsError)
}

func TestValidateTool_UnknownFormat(t *testing.T) {
	res := callTool(t, t.TempDir(), "guardlens_validate", map[string]any{
		"result":    "{}",
		"rule_path": "s3.guard",
		"format":    "toml",
	})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "unknown format")
}

func TestNormalizeTool(t *testing.T) {
	res := callTool(t, ".", "guardlens_normalize", map[string]any{
		"result": readFixture(t, "resolved-clause-check.json"),
	})
	require.False(t, res.IsError, resultText(t, res))

	var tree map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &tree))
	assert.Contains(t, tree, "not_compliant")
}

func TestNormalizeTool_MissingResult(t *testing.T) {
	res := callTool(t, ".", "guardlens_normalize", map[string]any{})
	assert.True(t, res.IsError)
}

func TestParseMessageTool(t *testing.T) {
	res := callTool(t, ".", "guardlens_parse_message", map[string]any{
		"message": "[FIX]: do X;[CT.S.1]: require Y",
	})
	require.False(t, res.IsError)

	var parsed map[string]string
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &parsed))
	assert.Equal(t, map[string]string{"fix": "do X", "description": "[CT.S.1]: require Y"}, parsed)
}

func TestParseMessageTool_DescriptionOnly(t *testing.T) {
	res := callTool(t, ".", "guardlens_parse_message", map[string]any{
		"message": "Buckets should not be public",
	})
	var parsed map[string]string
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &parsed))
	assert.NotContains(t, parsed, "fix")
	assert.Equal(t, "Buckets should not be public", parsed["description"])
}
