// Package postgres mirrors the file-backed audit and consent ledgers into
// PostgreSQL for querying. The file ledger remains the durability contract;
// this store is a fan-out sink wired in when a database URL is configured.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	// Registers the "postgres" database/sql driver.
	_ "github.com/lib/pq"

	"pathways/internal/audit"
)

// Store implements audit.Sink backed by two append-only tables.
type Store struct {
	db *sql.DB
}

// Open connects to the database and verifies the connection.
func Open(ctx context.Context, url string) (*Store, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{db: db}, nil
}

// New wraps an existing database handle, mainly for tests.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close releases the underlying pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordEvent inserts one audit event. Idempotent on the event hash:
// replayed mirrors are ignored.
func (s *Store) RecordEvent(ctx context.Context, event audit.Event) error {
	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return fmt.Errorf("marshal event metadata: %w", err)
	}

	query := `
		INSERT INTO audit_events (hash, timestamp, actor, action, why, consent_id, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (hash) DO NOTHING
	`
	_, err = s.db.ExecContext(ctx, query,
		event.Hash,
		event.Timestamp,
		event.Actor,
		event.Action,
		event.Why,
		nullable(event.ConsentID),
		metadata,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// RecordConsent inserts one consent record. Idempotent on the consent id.
func (s *Store) RecordConsent(ctx context.Context, record audit.ConsentRecord) error {
	scope, err := json.Marshal(record.Scope)
	if err != nil {
		return fmt.Errorf("marshal consent scope: %w", err)
	}

	query := `
		INSERT INTO consent_records (consent_id, journey_id, consent_scope, user_identifier, signature, granted_at, ttl_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (consent_id) DO NOTHING
	`
	_, err = s.db.ExecContext(ctx, query,
		record.ConsentID,
		record.JourneyID,
		scope,
		record.UserIdentifier,
		nullable(record.Signature),
		record.GrantedAt,
		record.TTLDays,
	)
	if err != nil {
		return fmt.Errorf("insert consent record: %w", err)
	}
	return nil
}

// ListByJourney returns mirrored events for one journey, newest first.
func (s *Store) ListByJourney(ctx context.Context, journeyID string) ([]audit.Event, error) {
	query := `
		SELECT hash, timestamp, actor, action, why, consent_id, metadata
		FROM audit_events
		WHERE metadata->>'journey_id' = $1
		ORDER BY timestamp DESC
	`
	rows, err := s.db.QueryContext(ctx, query, journeyID)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var (
			event     audit.Event
			consentID sql.NullString
			metadata  []byte
		)
		if err := rows.Scan(&event.Hash, &event.Timestamp, &event.Actor,
			&event.Action, &event.Why, &consentID, &metadata); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.ConsentID = consentID.String
		if err := json.Unmarshal(metadata, &event.Metadata); err != nil {
			return nil, fmt.Errorf("decode event metadata: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}

// Schema creates the mirror tables. Intended for bootstrap scripts and
// integration environments.
const Schema = `
CREATE TABLE IF NOT EXISTS audit_events (
	hash        TEXT PRIMARY KEY,
	timestamp   TIMESTAMPTZ NOT NULL,
	actor       TEXT NOT NULL,
	action      TEXT NOT NULL,
	why         TEXT NOT NULL,
	consent_id  TEXT,
	metadata    JSONB NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS audit_events_journey_idx ON audit_events ((metadata->>'journey_id'));

CREATE TABLE IF NOT EXISTS consent_records (
	consent_id      TEXT PRIMARY KEY,
	journey_id      TEXT NOT NULL,
	consent_scope   JSONB NOT NULL,
	user_identifier TEXT NOT NULL,
	signature       TEXT,
	granted_at      TIMESTAMPTZ NOT NULL,
	ttl_days        INTEGER NOT NULL
);
`

// EnsureSchema applies Schema against the connection.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure audit schema: %w", err)
	}
	return nil
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}
