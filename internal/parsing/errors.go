package parsing

import "fmt"

// UnavailableError indicates the generation call failed at the transport
// level. Recoverable only by a user-triggered retry.
type UnavailableError struct {
	Cause error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("generator unavailable: %v", e.Cause)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// EmptyResponseError indicates the generator returned a response with no
// content.
type EmptyResponseError struct{}

func (e *EmptyResponseError) Error() string {
	return "generator returned an empty response"
}

// MalformedOutputError indicates the generator's content could not be parsed
// as the expected structure. The raw content is preserved for diagnostics and
// is never guessed at.
type MalformedOutputError struct {
	Content string
	Cause   error
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed generator output: %v", e.Cause)
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Cause
}
