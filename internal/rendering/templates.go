package rendering

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/jonathan/internship-apply/internal/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var docTemplates = template.Must(
	template.New("documents").
		Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/*.tmpl"),
)

// coverLetterData is the view model for the cover letter template.
type coverLetterData struct {
	FullName   string
	Email      string
	Phone      string
	Date       string
	Subject    string
	Paragraphs []string
}

// RenderResumeHTML renders the resume document for a profile. HTML escaping
// comes from html/template, so profile text cannot break the markup.
func RenderResumeHTML(profile *types.CandidateProfile) (string, error) {
	var sb strings.Builder
	if err := docTemplates.ExecuteTemplate(&sb, "resume.html.tmpl", profile); err != nil {
		return "", &TemplateError{Message: "executing resume template", Cause: err}
	}
	return sb.String(), nil
}

// RenderCoverLetterHTML renders the cover letter document. The letter text is
// split into paragraphs on blank lines.
func RenderCoverLetterHTML(profile *types.CandidateProfile, subject, letterText string, date time.Time) (string, error) {
	if strings.TrimSpace(letterText) == "" {
		return "", &TemplateError{Message: "cover letter text is empty"}
	}

	data := coverLetterData{
		FullName:   profile.FullName,
		Email:      profile.Email,
		Phone:      profile.Phone,
		Date:       date.Format("January 2, 2006"),
		Subject:    subject,
		Paragraphs: splitParagraphs(letterText),
	}

	var sb strings.Builder
	if err := docTemplates.ExecuteTemplate(&sb, "cover_letter.html.tmpl", data); err != nil {
		return "", &TemplateError{Message: "executing cover letter template", Cause: err}
	}
	return sb.String(), nil
}

func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	blocks := strings.Split(text, "\n\n")
	paragraphs := make([]string, 0, len(blocks))
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		// Single newlines inside a paragraph become spaces.
		paragraphs = append(paragraphs, strings.Join(strings.Fields(block), " "))
	}
	if len(paragraphs) == 0 {
		return nil
	}
	return paragraphs
}

// ResumeFilename builds the attachment filename for a candidate's resume.
func ResumeFilename(fullName string) string {
	return fmt.Sprintf("%s_Resume.pdf", filenameToken(fullName))
}

// CoverLetterFilename builds the attachment filename for a cover letter.
func CoverLetterFilename(fullName string) string {
	return fmt.Sprintf("%s_Cover_Letter.pdf", filenameToken(fullName))
}

func filenameToken(fullName string) string {
	token := strings.Join(strings.Fields(strings.TrimSpace(fullName)), "_")
	if token == "" {
		return "Candidate"
	}
	return token
}
