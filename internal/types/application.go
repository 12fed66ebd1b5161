package types

import "fmt"

// ApplicationStatus tracks a tailored application through the review lifecycle.
type ApplicationStatus string

// Lifecycle states. Failed and SendFailed are transient; user correction
// returns the application to Ready.
const (
	StatusNoDraft    ApplicationStatus = "NO_DRAFT"
	StatusGenerating ApplicationStatus = "GENERATING"
	StatusReady      ApplicationStatus = "READY"
	StatusSending    ApplicationStatus = "SENDING"
	StatusSent       ApplicationStatus = "SENT"
	StatusFailed     ApplicationStatus = "FAILED"
	StatusSendFailed ApplicationStatus = "SEND_FAILED"
)

// validTransitions enumerates the allowed lifecycle edges.
var validTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusNoDraft:    {StatusGenerating},
	StatusGenerating: {StatusReady, StatusFailed},
	StatusFailed:     {StatusGenerating, StatusReady},
	StatusReady:      {StatusSending, StatusReady, StatusGenerating},
	StatusSending:    {StatusSent, StatusSendFailed},
	StatusSendFailed: {StatusReady, StatusSending},
	StatusSent:       {},
}

// CanTransition reports whether moving from the current status to next is a
// valid lifecycle edge.
func (s ApplicationStatus) CanTransition(next ApplicationStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition returns the next status, or an error for an invalid edge.
func (s ApplicationStatus) Transition(next ApplicationStatus) (ApplicationStatus, error) {
	if !s.CanTransition(next) {
		return s, fmt.Errorf("invalid application transition: %s -> %s", s, next)
	}
	return next, nil
}

// TailoredApplication holds the generated materials for one profile/topic
// pair. It exists for the duration of a review-and-send interaction and is
// re-derivable at any time.
type TailoredApplication struct {
	TailoredResume  *CandidateProfile `json:"tailoredResume"`
	CoverLetterText string            `json:"coverLetter"`
	EmailSubject    string            `json:"emailSubject"`
	EmailBody       string            `json:"emailBody"`
	EmailTo         string            `json:"emailTo"`
	Status          ApplicationStatus `json:"status"`
}

// MarkEdited records a manual edit, returning the application to Ready.
// Sent applications are immutable except through explicit regeneration.
func (a *TailoredApplication) MarkEdited() error {
	if a.Status == StatusSent {
		return fmt.Errorf("sent application cannot be edited")
	}
	a.Status = StatusReady
	return nil
}
