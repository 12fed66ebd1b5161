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

// Topic sources.
const (
	TopicSourceBook = "book"
	TopicSourceURL  = "url"
)

// TopicRecord is a stored opportunity topic.
type TopicRecord struct {
	ID        uuid.UUID               `json:"id"`
	UserID    uuid.UUID               `json:"user_id"`
	Topic     *types.OpportunityTopic `json:"topic"`
	Source    string                  `json:"source"`
	CreatedAt time.Time               `json:"created_at"`
}

// SaveTopics inserts a batch of topics in one transaction and returns their
// IDs in input order. Offer books regularly contain dozens of postings, so
// partial imports are avoided.
func (db *DB) SaveTopics(ctx context.Context, userID uuid.UUID, topics []*types.OpportunityTopic, source string) ([]uuid.UUID, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ids := make([]uuid.UUID, 0, len(topics))
	for _, topic := range topics {
		techStack, err := json.Marshal(nonNil(topic.TechStack))
		if err != nil {
			return nil, fmt.Errorf("failed to marshal tech stack: %w", err)
		}

		var id uuid.UUID
		err = tx.QueryRow(ctx,
			`INSERT INTO topics (user_id, title, description, reference_number, tech_stack, company_name, contact_email, source)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 RETURNING id`,
			userID, topic.Title, topic.Description, topic.ReferenceNumber,
			techStack, topic.CompanyName, topic.ContactEmail, source,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("failed to save topic %q: %w", topic.Title, err)
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit topics: %w", err)
	}
	return ids, nil
}

// GetTopic retrieves a topic owned by the given user.
func (db *DB) GetTopic(ctx context.Context, userID, topicID uuid.UUID) (*TopicRecord, error) {
	rec := TopicRecord{ID: topicID, UserID: userID, Topic: &types.OpportunityTopic{}}
	var techStack []byte
	err := db.pool.QueryRow(ctx,
		`SELECT title, description, reference_number, tech_stack, company_name, contact_email, source, created_at
		 FROM topics WHERE id = $1 AND user_id = $2`,
		topicID, userID,
	).Scan(&rec.Topic.Title, &rec.Topic.Description, &rec.Topic.ReferenceNumber,
		&techStack, &rec.Topic.CompanyName, &rec.Topic.ContactEmail, &rec.Source, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get topic: %w", err)
	}
	if err := json.Unmarshal(techStack, &rec.Topic.TechStack); err != nil {
		return nil, fmt.Errorf("failed to decode tech stack: %w", err)
	}
	return &rec, nil
}

// ListTopics returns the user's topics in import order.
func (db *DB) ListTopics(ctx context.Context, userID uuid.UUID) ([]*TopicRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, description, reference_number, tech_stack, company_name, contact_email, source, created_at
		 FROM topics WHERE user_id = $1 ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	defer rows.Close()

	var records []*TopicRecord
	for rows.Next() {
		rec := TopicRecord{UserID: userID, Topic: &types.OpportunityTopic{}}
		var techStack []byte
		if err := rows.Scan(&rec.ID, &rec.Topic.Title, &rec.Topic.Description, &rec.Topic.ReferenceNumber,
			&techStack, &rec.Topic.CompanyName, &rec.Topic.ContactEmail, &rec.Source, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		if err := json.Unmarshal(techStack, &rec.Topic.TechStack); err != nil {
			return nil, fmt.Errorf("failed to decode tech stack: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
