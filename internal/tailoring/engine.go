// Package tailoring derives a topic-specific application from a stored
// candidate profile: a tailored resume variant, a cover letter, and an email
// draft. The source profile is never mutated.
package tailoring

import (
	"context"
	"strings"
	"time"

	"github.com/jonathan/internship-apply/internal/parsing"
	"github.com/jonathan/internship-apply/internal/types"
)

// Engine runs tailoring requests through the extraction client.
type Engine struct {
	extractor *parsing.Extractor
}

// NewEngine creates a tailoring engine over an extractor.
func NewEngine(extractor *parsing.Extractor) *Engine {
	return &Engine{extractor: extractor}
}

// Tailor produces a TailoredApplication for one profile/topic pair. now is
// the current-date string rendered verbatim into the cover letter. Output is
// non-deterministic across calls, but always either a structurally valid
// application or a classified extraction error, never a partial record.
func (e *Engine) Tailor(ctx context.Context, profile *types.CandidateProfile, topic *types.OpportunityTopic, now time.Time) (*types.TailoredApplication, error) {
	encoded, err := types.EncodeProfile(profile)
	if err != nil {
		return nil, err
	}

	req, err := parsing.BuildRequest(parsing.KindTailor, "", map[string]string{
		"Profile":         string(encoded),
		"Title":           topic.Title,
		"CompanyName":     topic.CompanyName,
		"Description":     topic.Description,
		"ReferenceNumber": topic.ReferenceNumber,
		"TechStack":       strings.Join(topic.TechStack, ", "),
		"CurrentDate":     now.Format("January 2, 2006"),
	})
	if err != nil {
		return nil, err
	}

	raw, err := e.extractor.ExtractTailored(ctx, req)
	if err != nil {
		return nil, err
	}

	app := &types.TailoredApplication{Status: types.StatusReady}

	// Each output field is normalized independently. Identity fields fall
	// back to the source profile so generator drift cannot lose them.
	resumeRaw, _ := raw["tailoredResume"].(map[string]any)
	tailored, _ := parsing.NormalizeProfile(resumeRaw, parsing.ProfileDefaults{
		FullName: profile.FullName,
		Email:    profile.Email,
	})
	if resumeRaw == nil || tailored.IsEmpty() {
		// Unusable resume output: fall back to the untouched source record.
		tailored = profile.Clone()
	}
	app.TailoredResume = tailored

	app.CoverLetterText = stringOrEmpty(raw["coverLetter"])
	app.EmailSubject = stringOrEmpty(raw["emailSubject"])
	app.EmailBody = stringOrEmpty(raw["emailBody"])

	// Opportunity-sourced contact data is the trust anchor: generator output
	// only overrides it when non-empty.
	app.EmailTo = topic.ContactEmail
	if generated := stringOrEmpty(raw["emailTo"]); generated != "" {
		app.EmailTo = generated
	}

	return app, nil
}

func stringOrEmpty(value any) string {
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
