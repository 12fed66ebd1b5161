package tailoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonathan/internship-apply/internal/llm"
	"github.com/jonathan/internship-apply/internal/parsing"
	"github.com/jonathan/internship-apply/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

func sourceProfile() *types.CandidateProfile {
	return &types.CandidateProfile{
		FullName: "Walid Haddad",
		Email:    "walid@example.test",
		Experience: []types.Experience{
			{Title: "Software Engineer", Company: "Acme", StartDate: "2023", Description: "Backend work"},
		},
		Education: []types.Education{
			{Degree: "BSc Computer Science", School: "ENIT", StartDate: "2019", EndDate: "2022"},
		},
		Skills:   []string{"Go", "SQL"},
		Projects: []types.Project{},
	}
}

func backendTopic() *types.OpportunityTopic {
	return &types.OpportunityTopic{
		Title:        "Backend Intern",
		Description:  "Build APIs for the platform team",
		TechStack:    []string{"Go", "Postgres"},
		CompanyName:  "Acme",
		ContactEmail: "hr@acme.test",
	}
}

func engineWith(client llm.Client) *Engine {
	return NewEngine(parsing.NewExtractor(client))
}

func TestTailor_IdentityPreserved(t *testing.T) {
	client := &fakeClient{response: `{
		"tailoredResume": {
			"fullName": "Walid Haddad",
			"email": "walid@example.test",
			"experience": [{"title": "Software Engineer", "company": "Acme", "startDate": "2023", "description": "Built Go APIs relevant to the platform team"}],
			"education": [{"degree": "BSc Computer Science", "school": "ENIT", "startDate": "2019", "endDate": "2022"}],
			"skills": ["Go", "SQL", "Postgres"]
		},
		"coverLetter": "Dear team,",
		"emailSubject": "Application: Backend Intern",
		"emailBody": "Hello,",
		"emailTo": ""
	}`}

	profile := sourceProfile()
	app, err := engineWith(client).Tailor(context.Background(), profile, backendTopic(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, profile.FullName, app.TailoredResume.FullName)
	assert.Equal(t, profile.Email, app.TailoredResume.Email)
	assert.Equal(t, types.StatusReady, app.Status)
}

func TestTailor_EmailToFromTopicWhenGeneratorEmpty(t *testing.T) {
	client := &fakeClient{response: `{
		"tailoredResume": {"fullName": "Walid Haddad", "email": "walid@example.test", "experience": [], "education": [], "skills": ["Go"]},
		"coverLetter": "Dear team,",
		"emailSubject": "Application",
		"emailBody": "Hello",
		"emailTo": ""
	}`}

	app, err := engineWith(client).Tailor(context.Background(), sourceProfile(), backendTopic(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, "hr@acme.test", app.EmailTo)
}

func TestTailor_EmailToGeneratorOverridesWhenNonEmpty(t *testing.T) {
	client := &fakeClient{response: `{
		"tailoredResume": {"fullName": "Walid Haddad", "email": "walid@example.test", "experience": [], "education": [], "skills": ["Go"]},
		"coverLetter": "",
		"emailSubject": "",
		"emailBody": "",
		"emailTo": "recruiting@acme.test"
	}`}

	app, err := engineWith(client).Tailor(context.Background(), sourceProfile(), backendTopic(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, "recruiting@acme.test", app.EmailTo)
}

func TestTailor_MissingFieldsDefaultEmpty(t *testing.T) {
	client := &fakeClient{response: `{
		"tailoredResume": {"fullName": "Walid Haddad", "email": "walid@example.test", "experience": [], "education": [], "skills": []}
	}`}

	app, err := engineWith(client).Tailor(context.Background(), sourceProfile(), backendTopic(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, "", app.CoverLetterText)
	assert.Equal(t, "", app.EmailSubject)
	assert.Equal(t, "", app.EmailBody)
	assert.Equal(t, "hr@acme.test", app.EmailTo)
}

func TestTailor_UnusableResumeFallsBackToSource(t *testing.T) {
	client := &fakeClient{response: `{
		"tailoredResume": "sorry, could not tailor",
		"coverLetter": "Dear team,"
	}`}

	profile := sourceProfile()
	app, err := engineWith(client).Tailor(context.Background(), profile, backendTopic(), time.Now())
	require.NoError(t, err)

	// Wrong-typed resume output degrades to the untouched source profile
	assert.Equal(t, profile.Skills, app.TailoredResume.Skills)
	require.Len(t, app.TailoredResume.Experience, 1)
	assert.Equal(t, "Acme", app.TailoredResume.Experience[0].Company)
}

func TestTailor_SourceProfileNotMutated(t *testing.T) {
	client := &fakeClient{response: `{
		"tailoredResume": {"fullName": "Walid Haddad", "email": "walid@example.test", "experience": [], "education": [], "skills": ["Kubernetes"]},
		"coverLetter": "x", "emailSubject": "y", "emailBody": "z", "emailTo": ""
	}`}

	profile := sourceProfile()
	_, err := engineWith(client).Tailor(context.Background(), profile, backendTopic(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, []string{"Go", "SQL"}, profile.Skills)
}

func TestTailor_ClassifiedErrorPropagates(t *testing.T) {
	client := &fakeClient{err: errors.New("rate limited")}

	_, err := engineWith(client).Tailor(context.Background(), sourceProfile(), backendTopic(), time.Now())
	var unavailable *parsing.UnavailableError
	require.ErrorAs(t, err, &unavailable)
}

func TestTailor_CurrentDateInPrompt(t *testing.T) {
	client := &fakeClient{response: `{
		"tailoredResume": {"fullName": "Walid Haddad", "email": "walid@example.test", "experience": [], "education": [], "skills": ["Go"]},
		"coverLetter": "", "emailSubject": "", "emailBody": "", "emailTo": ""
	}`}

	now := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)
	_, err := engineWith(client).Tailor(context.Background(), sourceProfile(), backendTopic(), now)
	require.NoError(t, err)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "September 1, 2026")
}
