package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/oauth2"

	"github.com/jonathan/internship-apply/internal/accounts"
)

// UpsertLinkedCredential stores or refreshes an OAuth credential for a user.
func (db *DB) UpsertLinkedCredential(ctx context.Context, userID uuid.UUID, provider accounts.Provider, token *oauth2.Token) error {
	var expiry *time.Time
	if !token.Expiry.IsZero() {
		expiry = &token.Expiry
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO linked_credentials (user_id, provider, access_token, refresh_token, expiry)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, provider)
		 DO UPDATE SET access_token = $3, refresh_token = $4, expiry = $5, updated_at = NOW()`,
		userID, string(provider), token.AccessToken, token.RefreshToken, expiry,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert linked credential: %w", err)
	}
	return nil
}

// DeleteLinkedCredential removes a linked credential, unlinking the account.
func (db *DB) DeleteLinkedCredential(ctx context.Context, userID uuid.UUID, provider accounts.Provider) error {
	_, err := db.pool.Exec(ctx,
		`DELETE FROM linked_credentials WHERE user_id = $1 AND provider = $2`,
		userID, string(provider),
	)
	if err != nil {
		return fmt.Errorf("failed to delete linked credential: %w", err)
	}
	return nil
}

// CredentialStore adapts the database to the accounts.CredentialStore
// interface used by mail dispatch.
type CredentialStore struct {
	db *DB
}

func NewCredentialStore(db *DB) *CredentialStore {
	return &CredentialStore{db: db}
}

// GetLinkedCredential returns the stored token for a user and provider, or
// nil when no account is linked.
func (s *CredentialStore) GetLinkedCredential(ctx context.Context, userID string, provider accounts.Provider) (*oauth2.Token, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	var token oauth2.Token
	var expiry *time.Time
	err = s.db.pool.QueryRow(ctx,
		`SELECT access_token, refresh_token, expiry
		 FROM linked_credentials WHERE user_id = $1 AND provider = $2`,
		uid, string(provider),
	).Scan(&token.AccessToken, &token.RefreshToken, &expiry)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get linked credential: %w", err)
	}
	if expiry != nil {
		token.Expiry = *expiry
	}
	return &token, nil
}
