package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/internship-apply/internal/db"
	"github.com/jonathan/internship-apply/internal/ingestion"
	"github.com/jonathan/internship-apply/internal/mail"
	"github.com/jonathan/internship-apply/internal/parsing"
)

// ErrInvalidCredentials indicates invalid login credentials.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrValidation indicates a request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrInvalidTransition indicates an application lifecycle violation.
type ErrInvalidTransition struct {
	Message string
}

func (e *ErrInvalidTransition) Error() string {
	return e.Message
}

// apiError is an error payload with a user-facing, actionable message. Each
// failure class tells the user what to do next, not just what broke.
type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

// classifyError maps pipeline and storage errors to API error payloads.
func classifyError(err error) apiError {
	var (
		invalidCreds *ErrInvalidCredentials
		validation   *ErrValidation
		transition   *ErrInvalidTransition
		unavailable  *parsing.UnavailableError
		empty        *parsing.EmptyResponseError
		malformed    *parsing.MalformedOutputError
		notLinked    *mail.NotLinkedError
		rejected     *mail.TransportRejectedError
	)

	switch {
	case errors.Is(err, db.ErrNotFound):
		return apiError{http.StatusNotFound, "not_found", "The requested record does not exist."}
	case errors.Is(err, db.ErrEmailTaken):
		return apiError{http.StatusConflict, "email_taken", "This email is already registered. Log in instead."}
	case errors.Is(err, ingestion.ErrUnreadableDocument):
		return apiError{http.StatusUnprocessableEntity, "unreadable_document",
			"The uploaded file has no readable text. Upload a text-based PDF, not a scan."}
	case errors.Is(err, ingestion.ErrHTTPRequestFailed):
		return apiError{http.StatusBadGateway, "posting_fetch_failed",
			"The posting page could not be fetched. Check the URL and try again."}
	case errors.Is(err, ingestion.ErrContentExtractionFailed):
		return apiError{http.StatusUnprocessableEntity, "posting_unreadable",
			"No posting text could be read from that page."}
	case errors.As(err, &invalidCreds):
		return apiError{http.StatusUnauthorized, "invalid_credentials", "Invalid email or password."}
	case errors.As(err, &validation):
		return apiError{http.StatusBadRequest, "validation_error", err.Error()}
	case errors.As(err, &transition):
		return apiError{http.StatusConflict, "invalid_state", err.Error()}
	case errors.As(err, &unavailable):
		return apiError{http.StatusServiceUnavailable, "generator_unavailable",
			"The generation service is unreachable. Try again in a moment."}
	case errors.As(err, &empty):
		return apiError{http.StatusBadGateway, "generator_empty_response",
			"The generation service returned nothing. Retry the operation."}
	case errors.As(err, &malformed):
		return apiError{http.StatusBadGateway, "generator_malformed_output",
			"The generation service returned output that could not be parsed. Retry the operation."}
	case errors.As(err, &notLinked):
		return apiError{http.StatusPreconditionFailed, "account_not_linked",
			"No linked Google account with a usable credential. Link your account before sending."}
	case errors.As(err, &rejected):
		return apiError{http.StatusBadGateway, "send_rejected",
			fmt.Sprintf("The mail provider rejected the send: %s. Review the application and try again.", rejected.Reason)}
	default:
		return apiError{http.StatusInternalServerError, "internal_error", "Something went wrong."}
	}
}
