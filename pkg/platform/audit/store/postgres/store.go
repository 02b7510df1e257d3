package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	audit "sotcredit/pkg/platform/audit"
	"sotcredit/pkg/platform/tx"
)

// Store implements audit.Store using the transactional outbox pattern.
// Events are written to the outbox table and relayed to Kafka by the outbox worker.
type Store struct {
	db *sql.DB
}

// New creates a new PostgreSQL audit store that writes to the outbox.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS audit_outbox (
		id           UUID PRIMARY KEY,
		aggregate_id TEXT        NOT NULL,
		event_type   TEXT        NOT NULL,
		payload      JSONB       NOT NULL,
		created_at   TIMESTAMPTZ NOT NULL,
		published_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS audit_outbox_unpublished_idx
		ON audit_outbox (created_at) WHERE published_at IS NULL`,
}

// EnsureSchema creates the outbox table when it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create audit outbox: %w", err)
		}
	}
	return nil
}

// Append writes an audit event to the outbox table for Kafka publishing.
// The insert joins a transaction carried in ctx (see tx.WithTx).
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	entryID := uuid.New()
	payload, err := audit.Marshal(entryID.String(), event)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO audit_outbox (id, aggregate_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = tx.Conn(ctx, s.db).ExecContext(ctx, query,
		entryID,
		event.Subject,
		event.Action,
		payload,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return nil
}

// Entry is an outbox row awaiting relay.
type Entry struct {
	ID          uuid.UUID
	AggregateID string
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
}

// Pending returns up to limit unpublished entries, oldest first.
func (s *Store) Pending(ctx context.Context, limit int) ([]Entry, error) {
	query := `
		SELECT id, aggregate_id, event_type, payload, created_at
		FROM audit_outbox
		WHERE published_at IS NULL
		ORDER BY created_at
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.AggregateID, &e.EventType, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox: %w", err)
	}
	return entries, nil
}

// MarkPublished stamps entries as relayed. Already-published entries keep
// their original timestamp.
func (s *Store) MarkPublished(ctx context.Context, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	now := time.Now()
	return tx.Run(ctx, s.db, func(ctx context.Context, conn tx.Execer) error {
		for _, id := range ids {
			if _, err := conn.ExecContext(ctx,
				`UPDATE audit_outbox SET published_at = $1 WHERE id = $2 AND published_at IS NULL`,
				now, id,
			); err != nil {
				return fmt.Errorf("mark outbox entry %s: %w", id, err)
			}
		}
		return nil
	})
}
