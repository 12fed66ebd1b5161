package parsing

import (
	"testing"

	"github.com/jonathan/internship-apply/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRequest_Profile(t *testing.T) {
	req, err := BuildRequest(KindProfile, "the cv text", nil)
	require.NoError(t, err)

	assert.Equal(t, KindProfile, req.Kind)
	assert.Equal(t, llm.TierStandard, req.Tier)
	assert.Contains(t, req.Prompt, "the cv text")
	assert.Contains(t, req.Prompt, "Never omit a key")
}

func TestBuildRequest_Topics(t *testing.T) {
	req, err := BuildRequest(KindTopics, "offer book text", nil)
	require.NoError(t, err)

	assert.Equal(t, llm.TierLite, req.Tier)
	assert.Contains(t, req.Prompt, "offer book text")
	assert.Contains(t, req.Prompt, "Do not deduplicate")
}

func TestBuildRequest_Tailor(t *testing.T) {
	extra := map[string]string{
		"Profile":         `{"fullName":"Jane"}`,
		"Title":           "Backend Intern",
		"CompanyName":     "Acme",
		"Description":     "Build APIs",
		"TechStack":       "Go, Kafka",
		"ReferenceNumber": "REF-1",
		"CurrentDate":     "September 1, 2026",
	}
	req, err := BuildRequest(KindTailor, "", extra)
	require.NoError(t, err)

	assert.Equal(t, llm.TierAdvanced, req.Tier)
	assert.Contains(t, req.Prompt, `{"fullName":"Jane"}`)
	assert.Contains(t, req.Prompt, "September 1, 2026")
	assert.Contains(t, req.Prompt, "Backend Intern")
	assert.NotContains(t, req.Prompt, "{{.")
}

func TestBuildRequest_TailorMissingFields(t *testing.T) {
	_, err := BuildRequest(KindTailor, "", map[string]string{"Profile": "{}"})
	require.Error(t, err)
}

func TestBuildRequest_UnknownKind(t *testing.T) {
	_, err := BuildRequest(Kind("bogus"), "text", nil)
	require.Error(t, err)
}

func TestBuildRequest_Deterministic(t *testing.T) {
	a, err := BuildRequest(KindProfile, "same text", nil)
	require.NoError(t, err)
	b, err := BuildRequest(KindProfile, "same text", nil)
	require.NoError(t, err)
	assert.Equal(t, a.Prompt, b.Prompt)
}
