package mail

import "fmt"

// NotLinkedError indicates no usable transport credential is linked for the
// user. The user must complete account linkage out-of-band before sending.
type NotLinkedError struct {
	Provider string
}

func (e *NotLinkedError) Error() string {
	return fmt.Sprintf("no linked %s account with a usable credential", e.Provider)
}

// TransportRejectedError carries the provider's reported reason for refusing
// a send. Terminal for this attempt; the caller decides about re-sending.
type TransportRejectedError struct {
	Reason string
	Cause  error
}

func (e *TransportRejectedError) Error() string {
	return fmt.Sprintf("send rejected by transport: %s", e.Reason)
}

func (e *TransportRejectedError) Unwrap() error {
	return e.Cause
}
