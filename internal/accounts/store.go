// Package accounts exposes the account-linkage boundary: looking up the OAuth
// credential a user linked for an external provider. Linking and refreshing
// credentials happens out-of-band; the pipeline only reads.
package accounts

import (
	"context"
	"time"

	"golang.org/x/oauth2"
)

// Provider identifies an external account provider.
type Provider string

// ProviderGoogle is the Gmail transport provider.
const ProviderGoogle Provider = "google"

// CredentialStore looks up linked provider credentials for a user. A nil
// token with a nil error means the account is not linked.
type CredentialStore interface {
	GetLinkedCredential(ctx context.Context, userID string, provider Provider) (*oauth2.Token, error)
}

// Usable reports whether a looked-up token can authenticate a call right now.
// An expired token without a refresh token counts as not linked, since
// renewal is out-of-band.
func Usable(token *oauth2.Token) bool {
	if token == nil || token.AccessToken == "" {
		return false
	}
	if !token.Expiry.IsZero() && token.Expiry.Before(time.Now()) && token.RefreshToken == "" {
		return false
	}
	return true
}
