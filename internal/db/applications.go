package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/internship-apply/internal/types"
)

// ApplicationRecord is a stored tailored application.
type ApplicationRecord struct {
	ID                uuid.UUID                  `json:"id"`
	UserID            uuid.UUID                  `json:"user_id"`
	ProfileID         uuid.UUID                  `json:"profile_id"`
	TopicID           uuid.UUID                  `json:"topic_id"`
	Application       *types.TailoredApplication `json:"application"`
	ProviderMessageID string                     `json:"provider_message_id,omitempty"`
	SentAt            *time.Time                 `json:"sent_at,omitempty"`
	CreatedAt         time.Time                  `json:"created_at"`
	UpdatedAt         time.Time                  `json:"updated_at"`
}

// SaveApplication inserts a tailored application and returns its ID.
func (db *DB) SaveApplication(ctx context.Context, userID, profileID, topicID uuid.UUID, app *types.TailoredApplication) (uuid.UUID, error) {
	resume, err := types.EncodeProfile(app.TailoredResume)
	if err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO applications (user_id, profile_id, topic_id, tailored_resume, cover_letter_text, email_subject, email_body, email_to, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		userID, profileID, topicID, resume,
		app.CoverLetterText, app.EmailSubject, app.EmailBody, app.EmailTo, string(app.Status),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save application: %w", err)
	}
	return id, nil
}

// GetApplication retrieves an application owned by the given user.
func (db *DB) GetApplication(ctx context.Context, userID, appID uuid.UUID) (*ApplicationRecord, error) {
	rec := ApplicationRecord{ID: appID, UserID: userID, Application: &types.TailoredApplication{}}
	var resume []byte
	var status string
	err := db.pool.QueryRow(ctx,
		`SELECT profile_id, topic_id, tailored_resume, cover_letter_text, email_subject, email_body, email_to, status, provider_message_id, sent_at, created_at, updated_at
		 FROM applications WHERE id = $1 AND user_id = $2`,
		appID, userID,
	).Scan(&rec.ProfileID, &rec.TopicID, &resume,
		&rec.Application.CoverLetterText, &rec.Application.EmailSubject,
		&rec.Application.EmailBody, &rec.Application.EmailTo, &status,
		&rec.ProviderMessageID, &rec.SentAt, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	rec.Application.Status = types.ApplicationStatus(status)
	rec.Application.TailoredResume, err = types.DecodeProfile(resume)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpdateApplicationContent replaces the editable fields of an application.
func (db *DB) UpdateApplicationContent(ctx context.Context, userID, appID uuid.UUID, app *types.TailoredApplication) error {
	resume, err := types.EncodeProfile(app.TailoredResume)
	if err != nil {
		return err
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE applications
		 SET tailored_resume = $1, cover_letter_text = $2, email_subject = $3, email_body = $4, email_to = $5, status = $6, updated_at = NOW()
		 WHERE id = $7 AND user_id = $8`,
		resume, app.CoverLetterText, app.EmailSubject, app.EmailBody, app.EmailTo,
		string(app.Status), appID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetApplicationStatus updates the lifecycle status only.
func (db *DB) SetApplicationStatus(ctx context.Context, userID, appID uuid.UUID, status types.ApplicationStatus) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE applications SET status = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3`,
		string(status), appID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkApplicationSent records a successful delivery.
func (db *DB) MarkApplicationSent(ctx context.Context, userID, appID uuid.UUID, providerMessageID string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE applications
		 SET status = $1, provider_message_id = $2, sent_at = NOW(), updated_at = NOW()
		 WHERE id = $3 AND user_id = $4`,
		string(types.StatusSent), providerMessageID, appID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark application sent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListApplications returns the user's applications, newest first.
func (db *DB) ListApplications(ctx context.Context, userID uuid.UUID) ([]*ApplicationRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, profile_id, topic_id, tailored_resume, cover_letter_text, email_subject, email_body, email_to, status, provider_message_id, sent_at, created_at, updated_at
		 FROM applications WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var records []*ApplicationRecord
	for rows.Next() {
		rec := ApplicationRecord{UserID: userID, Application: &types.TailoredApplication{}}
		var resume []byte
		var status string
		if err := rows.Scan(&rec.ID, &rec.ProfileID, &rec.TopicID, &resume,
			&rec.Application.CoverLetterText, &rec.Application.EmailSubject,
			&rec.Application.EmailBody, &rec.Application.EmailTo, &status,
			&rec.ProviderMessageID, &rec.SentAt, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		rec.Application.Status = types.ApplicationStatus(status)
		rec.Application.TailoredResume, err = types.DecodeProfile(resume)
		if err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
