package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/internship-apply/internal/ingestion"
	"github.com/jonathan/internship-apply/internal/parsing"
	"github.com/jonathan/internship-apply/internal/server/middleware"
	"github.com/jonathan/internship-apply/internal/types"
)

// maxUploadBytes caps document uploads at 20 MB.
const maxUploadBytes = 20 << 20

// handleImportProfile accepts a CV PDF as multipart field "cv", extracts a
// structured profile from it, and stores the result.
func (s *Server) handleImportProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	data, err := readUploadedFile(r, "cv")
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	text, err := ingestion.ExtractPDFText(data)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	// Account identity backfills required fields the CV doesn't state.
	user, err := s.db.GetUser(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	profile, defaulted, err := s.extractor.ExtractProfile(r.Context(), text, parsing.ProfileDefaults{
		FullName: user.Name,
		Email:    user.Email,
	})
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	profileID, err := s.db.SaveProfile(r.Context(), userID, profile, defaulted)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"id":               profileID,
		"profile":          profile,
		"defaulted_fields": defaulted,
	})
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	records, err := s.db.ListProfiles(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"profiles": records})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	profileID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	record, err := s.db.GetProfile(r.Context(), userID, profileID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, record)
}

// handleUpdateProfile replaces the stored profile with the user's edits.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	profileID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	var profile types.CandidateProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if profile.FullName == "" || profile.Email == "" {
		s.errorResponse(w, &ErrValidation{Field: "profile", Message: "fullName and email are required"})
		return
	}

	if err := s.db.UpdateProfile(r.Context(), userID, profileID, &profile); err != nil {
		s.errorResponse(w, err)
		return
	}

	record, err := s.db.GetProfile(r.Context(), userID, profileID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, record)
}

// readUploadedFile pulls one file out of a multipart request.
func readUploadedFile(r *http.Request, field string) ([]byte, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, &ErrValidation{Field: field, Message: "expected a multipart file upload"}
	}
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, &ErrValidation{Field: field, Message: "file is missing"}
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return nil, &ErrValidation{Field: field, Message: "could not read file"}
	}
	if len(data) > maxUploadBytes {
		return nil, &ErrValidation{Field: field, Message: "file exceeds the 20 MB limit"}
	}
	return data, nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: name, Message: "must be a UUID"}
	}
	return id, nil
}
