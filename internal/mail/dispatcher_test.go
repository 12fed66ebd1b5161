package mail

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/jonathan/internship-apply/internal/accounts"
)

type fakeCredentialStore struct {
	token *oauth2.Token
	err   error
}

func (s *fakeCredentialStore) GetLinkedCredential(_ context.Context, _ string, _ accounts.Provider) (*oauth2.Token, error) {
	return s.token, s.err
}

func validToken() *oauth2.Token {
	return &oauth2.Token{
		AccessToken: "token-123",
		Expiry:      time.Now().Add(time.Hour),
	}
}

func testMessage() *OutboundMessage {
	return &OutboundMessage{
		To:       "hr@acme.test",
		Subject:  "Application",
		BodyText: "Hello",
	}
}

func TestDispatchSendsAssembledPayload(t *testing.T) {
	var gotRaw string
	d := NewDispatcherWithSender(
		&fakeCredentialStore{token: validToken()},
		func(_ context.Context, token *oauth2.Token, raw string) (string, error) {
			assert.Equal(t, "token-123", token.AccessToken)
			gotRaw = raw
			return "msg-42", nil
		},
	)

	id, err := d.Dispatch(context.Background(), "user-1", testMessage())
	require.NoError(t, err)
	assert.Equal(t, "msg-42", id)

	want, err := Assemble(testMessage())
	require.NoError(t, err)
	assert.Equal(t, want, gotRaw)
}

func TestDispatchNoCredentialIsNotLinked(t *testing.T) {
	d := NewDispatcherWithSender(
		&fakeCredentialStore{token: nil},
		func(context.Context, *oauth2.Token, string) (string, error) {
			t.Fatal("send should not be reached without a credential")
			return "", nil
		},
	)

	_, err := d.Dispatch(context.Background(), "user-1", testMessage())
	var notLinked *NotLinkedError
	require.ErrorAs(t, err, &notLinked)
	assert.Equal(t, "google", notLinked.Provider)
}

func TestDispatchExpiredCredentialIsNotLinked(t *testing.T) {
	expired := &oauth2.Token{
		AccessToken: "stale",
		Expiry:      time.Now().Add(-time.Hour),
	}
	d := NewDispatcherWithSender(
		&fakeCredentialStore{token: expired},
		func(context.Context, *oauth2.Token, string) (string, error) {
			t.Fatal("send should not be reached with an expired credential")
			return "", nil
		},
	)

	_, err := d.Dispatch(context.Background(), "user-1", testMessage())
	var notLinked *NotLinkedError
	assert.ErrorAs(t, err, &notLinked)
}

func TestDispatchProviderRefusalIsTransportRejected(t *testing.T) {
	calls := 0
	d := NewDispatcherWithSender(
		&fakeCredentialStore{token: validToken()},
		func(context.Context, *oauth2.Token, string) (string, error) {
			calls++
			return "", &googleapi.Error{Code: 400, Message: "Invalid To header"}
		},
	)

	_, err := d.Dispatch(context.Background(), "user-1", testMessage())
	var rejected *TransportRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "Invalid To header", rejected.Reason)
	assert.Equal(t, 1, calls, "a refused send must not be retried")
}

func TestDispatchAuthRefusalIsNotLinked(t *testing.T) {
	d := NewDispatcherWithSender(
		&fakeCredentialStore{token: validToken()},
		func(context.Context, *oauth2.Token, string) (string, error) {
			return "", &googleapi.Error{Code: 401, Message: "Invalid Credentials"}
		},
	)

	_, err := d.Dispatch(context.Background(), "user-1", testMessage())
	var notLinked *NotLinkedError
	assert.ErrorAs(t, err, &notLinked)
}

func TestDispatchStoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("db unreachable")
	d := NewDispatcherWithSender(
		&fakeCredentialStore{err: storeErr},
		func(context.Context, *oauth2.Token, string) (string, error) {
			return "", nil
		},
	)

	_, err := d.Dispatch(context.Background(), "user-1", testMessage())
	assert.ErrorIs(t, err, storeErr)
}
