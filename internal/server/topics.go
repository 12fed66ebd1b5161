package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/internship-apply/internal/db"
	"github.com/jonathan/internship-apply/internal/ingestion"
	"github.com/jonathan/internship-apply/internal/server/middleware"
	"github.com/jonathan/internship-apply/internal/types"
)

// handleImportBook accepts an offer book PDF as multipart field "book",
// extracts every posting in it as a topic, and stores the batch. The form
// field "company_name" backfills postings that don't name their company.
func (s *Server) handleImportBook(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	data, err := readUploadedFile(r, "book")
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	companyName := r.FormValue("company_name")

	text, err := ingestion.ExtractPDFText(data)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	topics, err := s.extractor.ExtractTopics(r.Context(), text, companyName)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	refs := make([]*types.OpportunityTopic, len(topics))
	for i := range topics {
		refs[i] = &topics[i]
	}

	ids, err := s.db.SaveTopics(r.Context(), userID, refs, db.TopicSourceBook)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"ids":    ids,
		"topics": topics,
	})
}

// ImportPostingURLRequest is the payload for POST /topics/import-url.
type ImportPostingURLRequest struct {
	URL         string `json:"url" validate:"required,url"`
	CompanyName string `json:"company_name"`
}

// handleImportPostingURL fetches a single posting page and stores it as one
// topic.
func (s *Server) handleImportPostingURL(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	var req ImportPostingURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, extractValidationErrors(err))
		return
	}

	text, err := ingestion.FetchPostingText(r.Context(), req.URL, s.cfg.UseBrowser)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	topics, err := s.extractor.ExtractTopics(r.Context(), text, req.CompanyName)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	refs := make([]*types.OpportunityTopic, len(topics))
	for i := range topics {
		refs[i] = &topics[i]
	}

	ids, err := s.db.SaveTopics(r.Context(), userID, refs, db.TopicSourceURL)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"ids":    ids,
		"topics": topics,
	})
}

func (s *Server) handleListTopics(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	records, err := s.db.ListTopics(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"topics": records})
}
