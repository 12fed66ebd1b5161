package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/internship-apply/internal/types"
)

// ProfileRecord is a stored candidate profile with its import diagnostics.
type ProfileRecord struct {
	ID              uuid.UUID               `json:"id"`
	UserID          uuid.UUID               `json:"user_id"`
	Profile         *types.CandidateProfile `json:"profile"`
	DefaultedFields []string                `json:"defaulted_fields"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// SaveProfile inserts a profile for a user and returns its ID.
func (db *DB) SaveProfile(ctx context.Context, userID uuid.UUID, profile *types.CandidateProfile, defaultedFields []string) (uuid.UUID, error) {
	data, err := types.EncodeProfile(profile)
	if err != nil {
		return uuid.Nil, err
	}
	if defaultedFields == nil {
		defaultedFields = []string{}
	}
	defaulted, err := json.Marshal(defaultedFields)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal defaulted fields: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO profiles (user_id, data, defaulted_fields)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		userID, data, defaulted,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return id, nil
}

// GetProfile retrieves a profile owned by the given user.
func (db *DB) GetProfile(ctx context.Context, userID, profileID uuid.UUID) (*ProfileRecord, error) {
	rec := ProfileRecord{ID: profileID, UserID: userID}
	var data, defaulted []byte
	err := db.pool.QueryRow(ctx,
		`SELECT data, defaulted_fields, created_at, updated_at
		 FROM profiles WHERE id = $1 AND user_id = $2`,
		profileID, userID,
	).Scan(&data, &defaulted, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	rec.Profile, err = types.DecodeProfile(data)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(defaulted, &rec.DefaultedFields); err != nil {
		return nil, fmt.Errorf("failed to decode defaulted fields: %w", err)
	}
	return &rec, nil
}

// UpdateProfile replaces the stored profile data. Manual edits clear the
// defaulted-field diagnostics, since the user has now confirmed the values.
func (db *DB) UpdateProfile(ctx context.Context, userID, profileID uuid.UUID, profile *types.CandidateProfile) error {
	data, err := types.EncodeProfile(profile)
	if err != nil {
		return err
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE profiles
		 SET data = $1, defaulted_fields = '[]', updated_at = NOW()
		 WHERE id = $2 AND user_id = $3`,
		data, profileID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListProfiles returns the user's profiles, newest first.
func (db *DB) ListProfiles(ctx context.Context, userID uuid.UUID) ([]*ProfileRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, data, defaulted_fields, created_at, updated_at
		 FROM profiles WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var records []*ProfileRecord
	for rows.Next() {
		rec := ProfileRecord{UserID: userID}
		var data, defaulted []byte
		if err := rows.Scan(&rec.ID, &data, &defaulted, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		rec.Profile, err = types.DecodeProfile(data)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(defaulted, &rec.DefaultedFields); err != nil {
			return nil, fmt.Errorf("failed to decode defaulted fields: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
