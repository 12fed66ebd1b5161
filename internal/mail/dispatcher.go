package mail

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/jonathan/internship-apply/internal/accounts"
)

// SendFunc submits an already-encoded message payload on behalf of the
// credential's owner and returns the provider message id.
type SendFunc func(ctx context.Context, token *oauth2.Token, raw string) (string, error)

// Dispatcher hands assembled messages to the user's linked mail account.
// A send is a single attempt: failures are classified and reported, never
// retried here.
type Dispatcher struct {
	creds accounts.CredentialStore
	send  SendFunc
}

func NewDispatcher(creds accounts.CredentialStore) *Dispatcher {
	return &Dispatcher{creds: creds, send: sendViaGmail}
}

// NewDispatcherWithSender injects a custom transport. Used by tests and by
// callers that pre-build the Gmail service.
func NewDispatcherWithSender(creds accounts.CredentialStore, send SendFunc) *Dispatcher {
	return &Dispatcher{creds: creds, send: send}
}

// Dispatch assembles and sends msg for the given user. It returns the
// provider's message id on success. Missing or unusable credentials yield
// *NotLinkedError; a provider refusal yields *TransportRejectedError.
func (d *Dispatcher) Dispatch(ctx context.Context, userID string, msg *OutboundMessage) (string, error) {
	token, err := d.creds.GetLinkedCredential(ctx, userID, accounts.ProviderGoogle)
	if err != nil {
		return "", fmt.Errorf("looking up linked credential: %w", err)
	}
	if !accounts.Usable(token) {
		return "", &NotLinkedError{Provider: string(accounts.ProviderGoogle)}
	}

	raw, err := Assemble(msg)
	if err != nil {
		return "", fmt.Errorf("assembling message: %w", err)
	}

	id, err := d.send(ctx, token, raw)
	if err != nil {
		return "", classifySendError(err)
	}
	return id, nil
}

func classifySendError(err error) error {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		if gErr.Code == 401 || gErr.Code == 403 {
			return &NotLinkedError{Provider: string(accounts.ProviderGoogle)}
		}
		reason := gErr.Message
		if reason == "" {
			reason = fmt.Sprintf("status %d", gErr.Code)
		}
		return &TransportRejectedError{Reason: reason, Cause: err}
	}
	return &TransportRejectedError{Reason: err.Error(), Cause: err}
}

func sendViaGmail(ctx context.Context, token *oauth2.Token, raw string) (string, error) {
	svc, err := gmail.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(token)))
	if err != nil {
		return "", fmt.Errorf("building gmail service: %w", err)
	}
	sent, err := svc.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		return "", err
	}
	return sent.Id, nil
}
