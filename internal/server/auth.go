package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jonathan/internship-apply/internal/db"
)

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the session token and user identity.
type AuthResponse struct {
	Token string   `json:"token"`
	User  *db.User `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, extractValidationErrors(err))
		return
	}

	hash, err := s.passwords.HashPassword(req.Password)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	userID, err := s.db.CreateUser(r.Context(), req.Name, req.Email, hash)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	user, err := s.db.GetUser(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	token, err := s.jwtService.GenerateToken(userID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, AuthResponse{Token: token, User: user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, extractValidationErrors(err))
		return
	}

	user, err := s.db.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		// A missing account and a wrong password look the same to a caller.
		if errors.Is(err, db.ErrNotFound) {
			s.errorResponse(w, &ErrInvalidCredentials{})
			return
		}
		s.errorResponse(w, err)
		return
	}

	if !s.passwords.VerifyPassword(req.Password, user.PasswordHash) {
		s.errorResponse(w, &ErrInvalidCredentials{})
		return
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, AuthResponse{Token: token, User: user})
}
