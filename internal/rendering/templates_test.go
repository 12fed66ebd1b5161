package rendering

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/internship-apply/internal/types"
)

func sampleProfile() *types.CandidateProfile {
	return &types.CandidateProfile{
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		Phone:       "+1 555 0100",
		LinkedinURL: "https://linkedin.com/in/janedoe",
		Summary:     "CS student focused on backend systems.",
		Experience: []types.Experience{
			{Title: "SWE Intern", Company: "Acme", StartDate: "06/2025", EndDate: "09/2025", Description: "Built Go services."},
		},
		Education: []types.Education{
			{Degree: "BSc Computer Science", School: "State University", StartDate: "2023"},
		},
		Skills:   []string{"Go", "PostgreSQL"},
		Projects: []types.Project{{Name: "ChatBot", Description: "A toy bot.", TechStack: []string{"Go"}}},
	}
}

func TestRenderResumeHTML(t *testing.T) {
	html, err := RenderResumeHTML(sampleProfile())
	require.NoError(t, err)

	assert.Contains(t, html, "Jane Doe")
	assert.Contains(t, html, "jane@example.com")
	assert.Contains(t, html, "SWE Intern")
	assert.Contains(t, html, "State University")
	assert.Contains(t, html, "Go, PostgreSQL")
	assert.Contains(t, html, "ChatBot")
}

func TestRenderResumeHTMLEscapesContent(t *testing.T) {
	profile := sampleProfile()
	profile.Summary = `<script>alert("x")</script>`

	html, err := RenderResumeHTML(profile)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert")
}

func TestRenderCoverLetterHTML(t *testing.T) {
	letter := "Dear hiring team,\n\nI am excited to apply.\nThis role fits my background.\n\nSincerely,\nJane"
	date := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)

	html, err := RenderCoverLetterHTML(sampleProfile(), "Application: Backend Intern", letter, date)
	require.NoError(t, err)

	assert.Contains(t, html, "Jane Doe")
	assert.Contains(t, html, "March 5, 2026")
	assert.Contains(t, html, "Application: Backend Intern")
	assert.Contains(t, html, "I am excited to apply. This role fits my background.")
}

func TestRenderCoverLetterHTMLEmptyText(t *testing.T) {
	_, err := RenderCoverLetterHTML(sampleProfile(), "Subject", "   \n\n  ", time.Now())
	var tmplErr *TemplateError
	assert.ErrorAs(t, err, &tmplErr)
}

func TestSplitParagraphs(t *testing.T) {
	got := splitParagraphs("first line\nsame paragraph\n\n\nsecond paragraph\r\n\r\nthird")
	assert.Equal(t, []string{"first line same paragraph", "second paragraph", "third"}, got)
}

func TestAttachmentFilenames(t *testing.T) {
	assert.Equal(t, "Jane_Doe_Resume.pdf", ResumeFilename("Jane Doe"))
	assert.Equal(t, "Jane_Doe_Cover_Letter.pdf", CoverLetterFilename(" Jane  Doe "))
	assert.Equal(t, "Candidate_Resume.pdf", ResumeFilename(""))
}

type fakeRenderer struct {
	err   error
	calls atomic.Int32
}

func (f *fakeRenderer) RenderHTMLToPDF(_ context.Context, html string) ([]byte, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return []byte("pdf:" + html[:20]), nil
}

func TestRenderApplicationDocuments(t *testing.T) {
	app := &types.TailoredApplication{
		CoverLetterText: "Dear team,\n\nPlease consider me.",
		EmailSubject:    "Application",
	}
	renderer := &fakeRenderer{}

	docs, err := RenderApplicationDocuments(context.Background(), renderer, sampleProfile(), app, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, docs.ResumePDF)
	assert.NotEmpty(t, docs.CoverLetterPDF)
	assert.EqualValues(t, 2, renderer.calls.Load())
}

func TestRenderApplicationDocumentsRendererFailure(t *testing.T) {
	app := &types.TailoredApplication{
		CoverLetterText: "Dear team,\n\nPlease consider me.",
	}
	rendererErr := errors.New("chrome exploded")
	renderer := &fakeRenderer{err: rendererErr}

	_, err := RenderApplicationDocuments(context.Background(), renderer, sampleProfile(), app, time.Now())
	assert.ErrorIs(t, err, rendererErr)
}
