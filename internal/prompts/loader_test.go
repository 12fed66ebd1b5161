package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	prompt, err := Get("extraction.json", "extract-profile")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.SourceText}}")
	assert.Contains(t, prompt, "fullName")
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("extraction.json", "no-such-prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-prompt")
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("missing.json", "whatever")
	require.Error(t, err)
}

func TestMustGet_AllPipelinePromptsExist(t *testing.T) {
	keys := map[string][]string{
		"extraction.json": {"extract-profile", "extract-topics"},
		"tailoring.json":  {"tailor-application"},
	}
	for filename, names := range keys {
		for _, name := range names {
			assert.NotPanics(t, func() { MustGet(filename, name) }, "%s/%s", filename, name)
		}
	}
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, today is {{.Date}}. Again: {{.Name}}"
	result := Format(template, map[string]string{
		"Name": "Amel",
		"Date": "2026-09-01",
	})
	assert.Equal(t, "Hello Amel, today is 2026-09-01. Again: Amel", result)
	assert.False(t, strings.Contains(result, "{{"))
}

func TestFormat_UnknownPlaceholderLeftIntact(t *testing.T) {
	result := Format("Value: {{.Missing}}", map[string]string{"Other": "x"})
	assert.Equal(t, "Value: {{.Missing}}", result)
}
