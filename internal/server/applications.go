package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/internship-apply/internal/mail"
	"github.com/jonathan/internship-apply/internal/rendering"
	"github.com/jonathan/internship-apply/internal/server/middleware"
	"github.com/jonathan/internship-apply/internal/tailoring"
	"github.com/jonathan/internship-apply/internal/types"
)

// GenerateApplicationRequest is the payload for POST /applications/generate.
type GenerateApplicationRequest struct {
	ProfileID uuid.UUID `json:"profile_id" validate:"required"`
	TopicID   uuid.UUID `json:"topic_id" validate:"required"`
}

// handleGenerateApplication tailors the chosen profile to the chosen topic
// and stores the draft for review.
func (s *Server) handleGenerateApplication(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	var req GenerateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, extractValidationErrors(err))
		return
	}

	profile, err := s.db.GetProfile(r.Context(), userID, req.ProfileID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	topic, err := s.db.GetTopic(r.Context(), userID, req.TopicID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	// The draft exists in Generating state while tailoring runs, so a
	// failure leaves an inspectable Failed record rather than nothing.
	placeholder := &types.TailoredApplication{
		TailoredResume: profile.Profile,
		Status:         types.StatusGenerating,
	}
	appID, err := s.db.SaveApplication(r.Context(), userID, req.ProfileID, req.TopicID, placeholder)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	app, err := s.tailor.Tailor(r.Context(), profile.Profile, topic.Topic, time.Now())
	if err != nil {
		_ = s.db.SetApplicationStatus(r.Context(), userID, appID, types.StatusFailed)
		s.errorResponse(w, err)
		return
	}
	app.Status = types.StatusReady

	if err := s.db.UpdateApplicationContent(r.Context(), userID, appID, app); err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"id":          appID,
		"application": app,
		"warnings":    tailoring.LintApplication(app),
	})
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	records, err := s.db.ListApplications(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"applications": records})
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	appID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	record, err := s.db.GetApplication(r.Context(), userID, appID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, record)
}

// UpdateApplicationRequest carries the user-editable application fields.
type UpdateApplicationRequest struct {
	TailoredResume  *types.CandidateProfile `json:"tailoredResume"`
	CoverLetterText string                  `json:"coverLetter"`
	EmailSubject    string                  `json:"emailSubject"`
	EmailBody       string                  `json:"emailBody"`
	EmailTo         string                  `json:"emailTo" validate:"omitempty,email"`
}

// handleUpdateApplication applies manual edits and returns the draft to
// Ready. Sent applications are immutable.
func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	appID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	var req UpdateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, extractValidationErrors(err))
		return
	}

	record, err := s.db.GetApplication(r.Context(), userID, appID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	app := record.Application
	if err := app.MarkEdited(); err != nil {
		s.errorResponse(w, &ErrInvalidTransition{Message: err.Error()})
		return
	}

	if req.TailoredResume != nil {
		app.TailoredResume = req.TailoredResume
	}
	if req.CoverLetterText != "" {
		app.CoverLetterText = req.CoverLetterText
	}
	if req.EmailSubject != "" {
		app.EmailSubject = req.EmailSubject
	}
	if req.EmailBody != "" {
		app.EmailBody = req.EmailBody
	}
	if req.EmailTo != "" {
		app.EmailTo = req.EmailTo
	}

	if err := s.db.UpdateApplicationContent(r.Context(), userID, appID, app); err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"id":          appID,
		"application": app,
	})
}

// handleSendApplication renders the documents, assembles the email, and
// dispatches it under the user's linked account. One attempt, no retry.
func (s *Server) handleSendApplication(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	appID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	record, err := s.db.GetApplication(r.Context(), userID, appID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	app := record.Application
	if !app.Status.CanTransition(types.StatusSending) {
		s.errorResponse(w, &ErrInvalidTransition{
			Message: "application cannot be sent from status " + string(app.Status),
		})
		return
	}
	if app.EmailTo == "" {
		s.errorResponse(w, &ErrValidation{Field: "emailTo", Message: "recipient is required before sending"})
		return
	}

	if err := s.db.SetApplicationStatus(r.Context(), userID, appID, types.StatusSending); err != nil {
		s.errorResponse(w, err)
		return
	}

	docs, err := rendering.RenderApplicationDocuments(r.Context(), s.renderer, app.TailoredResume, app, time.Now())
	if err != nil {
		_ = s.db.SetApplicationStatus(r.Context(), userID, appID, types.StatusSendFailed)
		s.errorResponse(w, err)
		return
	}

	fullName := app.TailoredResume.FullName
	msg := &mail.OutboundMessage{
		To:       app.EmailTo,
		Subject:  app.EmailSubject,
		BodyText: app.EmailBody,
		Attachments: []mail.Attachment{
			{Filename: rendering.ResumeFilename(fullName), Content: docs.ResumePDF, ContentType: "application/pdf"},
			{Filename: rendering.CoverLetterFilename(fullName), Content: docs.CoverLetterPDF, ContentType: "application/pdf"},
		},
	}

	messageID, err := s.dispatcher.Dispatch(r.Context(), userID.String(), msg)
	if err != nil {
		_ = s.db.SetApplicationStatus(r.Context(), userID, appID, types.StatusSendFailed)
		s.errorResponse(w, err)
		return
	}

	if err := s.db.MarkApplicationSent(r.Context(), userID, appID, messageID); err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"id":                  appID,
		"status":              types.StatusSent,
		"provider_message_id": messageID,
	})
}
