package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullProfile() *CandidateProfile {
	return &CandidateProfile{
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		Phone:       "+1 555 0100",
		LinkedinURL: "https://linkedin.com/in/janedoe",
		Summary:     "Backend-leaning CS student.",
		Experience: []Experience{
			{Title: "SWE Intern", Company: "Acme", StartDate: "06/2025", EndDate: "09/2025", Description: "Built Go services."},
		},
		Education: []Education{
			{Degree: "BSc Computer Science", School: "State University", StartDate: "2023"},
		},
		Skills: []string{"Go", "PostgreSQL"},
		Projects: []Project{
			{Name: "ChatBot", Description: "A toy bot.", TechStack: []string{"Go", "Redis"}},
		},
	}
}

func TestProfileEncodeDecodeRoundTrip(t *testing.T) {
	original := fullProfile()

	data, err := EncodeProfile(original)
	require.NoError(t, err)

	decoded, err := DecodeProfile(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestProfileWireFormatUsesCamelCase(t *testing.T) {
	data, err := EncodeProfile(fullProfile())
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"fullName"`)
	assert.Contains(t, s, `"linkedinUrl"`)
	assert.Contains(t, s, `"techStack"`)
	assert.NotContains(t, s, `"full_name"`)
}

func TestDecodeProfileInvalid(t *testing.T) {
	_, err := DecodeProfile([]byte("{not json"))
	assert.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	original := fullProfile()
	clone := original.Clone()
	require.Equal(t, original, clone)

	clone.FullName = "Someone Else"
	clone.Skills[0] = "Rust"
	clone.Experience[0].Company = "Other Corp"
	clone.Projects[0].TechStack[0] = "Python"

	assert.Equal(t, "Jane Doe", original.FullName)
	assert.Equal(t, "Go", original.Skills[0])
	assert.Equal(t, "Acme", original.Experience[0].Company)
	assert.Equal(t, "Go", original.Projects[0].TechStack[0])
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, (&CandidateProfile{}).IsEmpty())
	assert.True(t, (&CandidateProfile{Phone: "+1", Summary: "text"}).IsEmpty())
	assert.False(t, (&CandidateProfile{FullName: "Jane"}).IsEmpty())
	assert.False(t, (&CandidateProfile{Skills: []string{"Go"}}).IsEmpty())
}
