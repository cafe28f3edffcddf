package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessageCommand_JSON(t *testing.T) {
	out, err := runCmd(t, "parse-message", "[FIX]: do X;[CT.S.1]: require Y")
	require.NoError(t, err)
	assert.JSONEq(t, `{"fix":"do X","description":"[CT.S.1]: require Y"}`, out)
}

func TestParseMessageCommand_OmitsUnsetFields(t *testing.T) {
	out, err := runCmd(t, "parse-message", "Buckets should not be public")
	require.NoError(t, err)
	assert.JSONEq(t, `{"description":"Buckets should not be public"}`, out)
}

func TestParseMessageCommand_TUI(t *testing.T) {
	out, err := runCmd(t, "parse-message", "Buckets should not be public", "--tui", "--path", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "Buckets should not be public")
	assert.Contains(t, out, "N/A")
}
