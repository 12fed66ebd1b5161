package tailoring

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/internship-apply/internal/types"
)

// LintFinding flags a suspect passage in generated application text. Findings
// are advisory: the application stays editable and sendable, the user decides.
type LintFinding struct {
	Field  string `json:"field"`
	Detail string `json:"detail"`
}

// Unresolved template slots the generator sometimes leaves behind, e.g.
// "[Your Name]" or "{{company}}".
var placeholderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\[[A-Za-z][A-Za-z .'/-]{1,40}\]`),
	regexp.MustCompile(`\{\{[^{}]*\}\}`),
}

// Phrases that must never reach a recruiter inbox.
var tabooPhrases = []string{
	"as an ai",
	"language model",
	"lorem ipsum",
	"insert company",
	"insert name",
	"dear hiring manager at [",
}

// LintApplication scans the generated cover letter and email draft for
// placeholder artifacts and taboo phrases. An empty result means clean.
func LintApplication(app *types.TailoredApplication) []LintFinding {
	findings := []LintFinding{}

	findings = append(findings, lintField("coverLetter", app.CoverLetterText)...)
	findings = append(findings, lintField("emailSubject", app.EmailSubject)...)
	findings = append(findings, lintField("emailBody", app.EmailBody)...)

	if strings.TrimSpace(app.CoverLetterText) == "" {
		findings = append(findings, LintFinding{
			Field:  "coverLetter",
			Detail: "cover letter is empty",
		})
	}
	if strings.TrimSpace(app.EmailSubject) == "" {
		findings = append(findings, LintFinding{
			Field:  "emailSubject",
			Detail: "email subject is empty",
		})
	}

	return findings
}

func lintField(field, text string) []LintFinding {
	var findings []LintFinding

	for lineNum, line := range strings.Split(text, "\n") {
		for _, pattern := range placeholderPatterns {
			if match := pattern.FindString(line); match != "" {
				findings = append(findings, LintFinding{
					Field:  field,
					Detail: fmt.Sprintf("line %d contains unresolved placeholder: %s", lineNum+1, match),
				})
				break
			}
		}

		lower := strings.ToLower(line)
		for _, phrase := range tabooPhrases {
			if strings.Contains(lower, phrase) {
				findings = append(findings, LintFinding{
					Field:  field,
					Detail: fmt.Sprintf("line %d contains forbidden phrase: %q", lineNum+1, phrase),
				})
				break
			}
		}
	}

	return findings
}
