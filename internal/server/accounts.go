package server

import (
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/jonathan/internship-apply/internal/accounts"
	"github.com/jonathan/internship-apply/internal/server/middleware"
)

// LinkGoogleRequest carries an OAuth credential obtained out-of-band.
type LinkGoogleRequest struct {
	AccessToken  string    `json:"access_token" validate:"required"`
	RefreshToken string    `json:"refresh_token"`
	Expiry       time.Time `json:"expiry"`
}

// handleLinkGoogle stores the user's Gmail credential for sending.
func (s *Server) handleLinkGoogle(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	var req LinkGoogleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, extractValidationErrors(err))
		return
	}

	token := &oauth2.Token{
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
		Expiry:       req.Expiry,
	}
	if err := s.db.UpsertLinkedCredential(r.Context(), userID, accounts.ProviderGoogle, token); err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"provider": string(accounts.ProviderGoogle), "status": "linked"})
}

// handleUnlinkGoogle removes the stored credential.
func (s *Server) handleUnlinkGoogle(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	if err := s.db.DeleteLinkedCredential(r.Context(), userID, accounts.ProviderGoogle); err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"provider": string(accounts.ProviderGoogle), "status": "unlinked"})
}
