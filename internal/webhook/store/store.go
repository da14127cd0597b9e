package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/skillforge/coursepay/internal/webhook"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectEventColumns = `id, provider, event_id, event_type, payload, processed_at, processing_error, received_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (*webhook.Event, error) {
	var e webhook.Event
	err := s.Scan(
		&e.ID,
		&e.Provider,
		&e.EventID,
		&e.Type,
		&e.Payload,
		&e.ProcessedAt,
		&e.ProcessingError,
		&e.ReceivedAt,
	)
	if err != nil {
		return nil, err
	}

	return &e, nil
}

// InsertEvent records the delivery once per (provider, event id). When the
// event was already recorded the stored row is returned with created=false.
func (s *Store) InsertEvent(ctx context.Context, e *webhook.Event) (*webhook.Event, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO webhook_events (id, provider, event_id, event_type, payload)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (provider, event_id) DO NOTHING
		RETURNING `+selectEventColumns,
		e.ID, e.Provider, e.EventID, e.Type, e.Payload,
	)

	inserted, err := scanEvent(row)
	if err == nil {
		return inserted, true, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to insert webhook event: %w", err)
	}

	existing, err := s.getByProviderEventID(ctx, e.Provider, e.EventID)
	if err != nil {
		return nil, false, err
	}

	return existing, false, nil
}

func (s *Store) getByProviderEventID(ctx context.Context, provider, eventID string) (*webhook.Event, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+selectEventColumns+`
		FROM webhook_events
		WHERE provider = $1 AND event_id = $2`,
		provider, eventID,
	)

	e, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get webhook event: %w", err)
	}

	return e, nil
}

func (s *Store) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE webhook_events
		SET processed_at = $2, processing_error = ''
		WHERE id = $1`,
		id, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to mark webhook event processed: %w", err)
	}

	return nil
}

func (s *Store) RecordFailure(ctx context.Context, id uuid.UUID, msg string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE webhook_events
		SET processing_error = $2
		WHERE id = $1`,
		id, msg,
	)
	if err != nil {
		return fmt.Errorf("failed to record webhook event failure: %w", err)
	}

	return nil
}
