package outbox

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"doctorat/pkg/platform/events"
	txcontext "doctorat/pkg/platform/tx"
)

// PostgresStore persists outbox rows.
//
// Schema:
//
//	CREATE TABLE outbox (
//	    id           UUID PRIMARY KEY,
//	    topic        TEXT NOT NULL,
//	    msg_key      TEXT NOT NULL,
//	    payload      JSONB NOT NULL,
//	    status       TEXT NOT NULL DEFAULT 'pending',
//	    attempts     INT NOT NULL DEFAULT 0,
//	    last_error   TEXT NOT NULL DEFAULT '',
//	    created_at   TIMESTAMPTZ NOT NULL,
//	    published_at TIMESTAMPTZ
//	);
type PostgresStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// RunInTx runs fn with a transaction in context so FetchPending row locks
// are held until the batch is marked.
func (s *PostgresStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return txcontext.RunInTx(ctx, s.db, fn)
}

// Publish implements events.Sink by enqueueing the payload.
func (s *PostgresStore) Publish(ctx context.Context, topic events.Topic, key string, payload []byte) error {
	query := `
		INSERT INTO outbox (id, topic, msg_key, payload, status, attempts, created_at)
		VALUES ($1, $2, $3, $4, 'pending', 0, $5)
	`
	if _, err := s.execer(ctx).ExecContext(ctx, query, uuid.New(), string(topic), key, string(payload), s.now()); err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return nil
}

// FetchPending claims up to limit pending rows in insertion order. SKIP LOCKED lets
// several relays share the table.
func (s *PostgresStore) FetchPending(ctx context.Context, limit int) ([]Message, error) {
	query := `
		SELECT id, topic, msg_key, payload, status, attempts, last_error, created_at, published_at
		FROM outbox
		WHERE status = 'pending'
		ORDER BY seq
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`
	rows, err := s.execer(ctx).QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending outbox: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var (
			m           Message
			topic       string
			status      string
			publishedAt sql.NullTime
		)
		if err := rows.Scan(&m.ID, &topic, &m.Key, &m.Payload, &status, &m.Attempts, &m.LastError, &m.CreatedAt, &publishedAt); err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		m.Topic = events.Topic(topic)
		m.Status = Status(status)
		if publishedAt.Valid {
			t := publishedAt.Time
			m.PublishedAt = &t
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox rows: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := s.execer(ctx).ExecContext(ctx,
		`UPDATE outbox SET status = 'published', published_at = $2, attempts = attempts + 1 WHERE id = $1`,
		id, at)
	if err != nil {
		return fmt.Errorf("mark outbox published: %w", err)
	}
	return nil
}

// MarkFailed records a failed attempt and parks the row once maxAttempts is reached.
func (s *PostgresStore) MarkFailed(ctx context.Context, id uuid.UUID, cause string, maxAttempts int) (Status, error) {
	var status string
	err := s.execer(ctx).QueryRowContext(ctx, `
		UPDATE outbox
		SET attempts = attempts + 1,
		    last_error = $2,
		    status = CASE WHEN attempts + 1 >= $3 THEN 'parked' ELSE 'pending' END
		WHERE id = $1
		RETURNING status
	`, id, cause, maxAttempts).Scan(&status)
	if err != nil {
		return "", fmt.Errorf("mark outbox failed: %w", err)
	}
	return Status(status), nil
}
