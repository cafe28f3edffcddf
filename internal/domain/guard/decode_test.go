package guard_test

import (
	"testing"

	"github.com/guardlens/guardlens/internal/domain/guard"
	"github.com/guardlens/guardlens/internal/domain/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) value.Value {
	t.Helper()
	v, err := value.ParseJSON([]byte(src))
	require.NoError(t, err)
	return v
}

func TestDecodeResult_Compliant(t *testing.T) {
	r, err := guard.DecodeResult(parse(t, `{
		"name": "",
		"status": "PASS",
		"not_compliant": {},
		"not_applicable": ["A"],
		"compliant": ["B", 3]
	}`))
	require.NoError(t, err)
	assert.Equal(t, guard.StatusPass, r.Status)
	assert.True(t, r.IsCompliant())
	assert.NotNil(t, r.NotCompliant)
	assert.Equal(t, []string{"A"}, r.NotApplicable)
	assert.Equal(t, []string{"B"}, r.Compliant)
}

func TestDecodeResult_MissingNotCompliant(t *testing.T) {
	r, err := guard.DecodeResult(parse(t, `{"status": "SKIP"}`))
	require.NoError(t, err)
	assert.True(t, r.IsCompliant())
}

func TestDecodeResult_Rules(t *testing.T) {
	r, err := guard.DecodeResult(parse(t, `{
		"status": "FAIL",
		"not_compliant": [
			{"name": "R1", "messages": {"custom_message": "c"}, "checks": [{"a": 1}, {"b": 2}]},
			"not a rule",
			{"name": "R2", "checks": {"x": {"c": 3}}}
		]
	}`))
	require.NoError(t, err)
	assert.False(t, r.IsCompliant())
	require.Len(t, r.NotCompliant, 2)

	assert.Equal(t, "R1", r.NotCompliant[0].Name)
	require.NotNil(t, r.NotCompliant[0].Messages)
	assert.Equal(t, "c", r.NotCompliant[0].Messages.CustomMessage)
	assert.Len(t, r.NotCompliant[0].Checks, 2)

	assert.Equal(t, "R2", r.NotCompliant[1].Name)
	assert.Nil(t, r.NotCompliant[1].Messages)
	assert.Len(t, r.NotCompliant[1].Checks, 1)
}

func TestDecodeResult_Malformed(t *testing.T) {
	_, err := guard.DecodeResult(parse(t, `[1, 2]`))
	assert.ErrorIs(t, err, guard.ErrMalformedResult)

	_, err = guard.DecodeResult(parse(t, `{"not_compliant": "oops"}`))
	assert.ErrorIs(t, err, guard.ErrMalformedResult)
}

func TestDecodeCheck(t *testing.T) {
	c, ok := guard.DecodeCheck(parse(t, `{
		"resolved": true,
		"traversed": {
			"to": {"path": "", "value": true},
			"from": {"path": "/Resources/B/Properties/X", "value": false}
		},
		"messages": {"custom_message": "Fix: f", "error_message": "e"}
	}`))
	require.True(t, ok)
	assert.True(t, c.Resolved)
	assert.Equal(t, "", c.Traversed.To.Path)
	require.NotNil(t, c.Traversed.From)
	assert.Equal(t, "/Resources/B/Properties/X", c.Traversed.From.Path)
	assert.Equal(t, "Fix: f", c.CustomMessage())
	assert.Equal(t, "e", c.ErrorMessage())
}

func TestDecodeCheck_Unresolved(t *testing.T) {
	c, ok := guard.DecodeCheck(parse(t, `{
		"resolved": false,
		"traversed": {"to": {"path": "/Resources/B/Properties", "value": null}}
	}`))
	require.True(t, ok)
	assert.False(t, c.Resolved)
	assert.Nil(t, c.Traversed.From)
	assert.Empty(t, c.CustomMessage())
	assert.Empty(t, c.ErrorMessage())
}

func TestDecodeCheck_Rejects(t *testing.T) {
	for name, src := range map[string]string{
		"not object":      `"x"`,
		"no traversed":    `{"resolved": true}`,
		"traversed array": `{"traversed": []}`,
		"no to":           `{"traversed": {"from": {"path": "/a"}}}`,
		"numeric path":    `{"traversed": {"to": {"path": 3}}}`,
		"null path":       `{"traversed": {"to": {"path": null}}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, ok := guard.DecodeCheck(parse(t, src))
			assert.False(t, ok)
		})
	}
}

func TestDecodeMessages(t *testing.T) {
	assert.Nil(t, guard.DecodeMessages(parse(t, `{"custom_message": null, "error_message": ""}`)))
	assert.Nil(t, guard.DecodeMessages(parse(t, `"text"`)))

	m := guard.DecodeMessages(parse(t, `{"error_message": "e"}`))
	require.NotNil(t, m)
	assert.Equal(t, "e", m.ErrorMessage)
}
