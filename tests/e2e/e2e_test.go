package e2e_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/guardlens/guardlens/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary before running tests
	dir, err := os.MkdirTemp("", "guardlens-e2e")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	binaryPath = filepath.Join(dir, "guardlens")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/guardlens")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("build failed: " + string(out))
	}

	os.Exit(m.Run())
}

func fixturePath(name string) string {
	abs, _ := filepath.Abs(filepath.Join("../../testdata/guard", name))
	return abs
}

func run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}
	return stdout.String(), stderr.String(), exitCode
}

// --- Validate Tests ---

func TestE2E_ValidatePass(t *testing.T) {
	out, _, code := run(t, "validate", fixturePath("compliant.json"), "--rule", "s3.guard", "--path", t.TempDir())
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "PASS")
}

func TestE2E_ValidateFailExitCode(t *testing.T) {
	_, stderr, code := run(t, "validate", fixturePath("unresolved-clause-check.json"),
		"--rule", "s3.guard", "--path", t.TempDir())
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "validation failed")
}

func TestE2E_ValidateJSON(t *testing.T) {
	dir := t.TempDir()
	out, _, code := run(t, "validate",
		fixturePath("resolved-rule-check-multiple-resources.json"),
		fixturePath("resolved-clause-check.yaml"),
		"--rule", filepath.Join(dir, "rules/aws-guard-rules-registry/amazon_s3/s3_bucket_level_public_access_prohibited.guard"),
		"--template", "Stack.template.json",
		"--path", dir, "--json")
	assert.Equal(t, 1, code)

	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.False(t, report.Success)
	require.NotEmpty(t, report.Violations)
	for _, v := range report.Violations {
		assert.Equal(t,
			"https://github.com/cdklabs/cdk-validator-cfnguard/blob/main/rules/aws-guard-rules-registry/amazon_s3/s3_bucket_level_public_access_prohibited.guard",
			v.RuleMetadata.DocumentationURL)
		assert.Len(t, v.Fingerprint, 64)
	}
}

func TestE2E_BaselineSuppressesKnownViolations(t *testing.T) {
	dir := t.TempDir()
	baseline := filepath.Join(dir, "baseline.json")
	args := []string{"validate", fixturePath("resolved-clause-check.json"), "--rule", "s3.guard", "--path", dir}

	_, _, code := run(t, append(args, "--out", baseline)...)
	require.Equal(t, 1, code)

	out, _, code := run(t, append(args, "--baseline", baseline, "--json")...)
	assert.Equal(t, 0, code)

	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Success)
	assert.Empty(t, report.Violations)
	assert.Positive(t, report.Suppressed)
}

func TestE2E_ValidateUnreadableResult(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")
	out, _, code := run(t, "validate", missing, "--rule", "s3.guard", "--path", t.TempDir(), "--json")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, `"failures"`)
}

// --- Other Commands ---

func TestE2E_Normalize(t *testing.T) {
	out, _, code := run(t, "normalize", fixturePath("unresolved-rule-check.json"))
	assert.Equal(t, 0, code)
	assert.True(t, json.Valid([]byte(out)), out)
}

func TestE2E_ParseMessage(t *testing.T) {
	out, _, code := run(t, "parse-message", "[FIX]: do X;[CT.S.1]: require Y")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, `"fix": "do X"`)
}

func TestE2E_Version(t *testing.T) {
	out, _, code := run(t, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "guardlens")
}
