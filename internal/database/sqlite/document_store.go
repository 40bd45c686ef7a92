package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/persistence"
)

type changeRow struct {
	ID        string `db:"id"`
	UpdatedAt int64  `db:"updated_at"`
	Writer    string `db:"writer"`
}

// DocumentStore keeps documents as JSON text. updated_at holds unix
// nanoseconds so that change queries compare integers.
type DocumentStore struct {
	db  *sqlx.DB
	now func() time.Time
}

var _ persistence.DocumentStore = (*DocumentStore)(nil)

// NewDocumentStore creates a store over db
func NewDocumentStore(db *sqlx.DB) *DocumentStore {
	return &DocumentStore{db: db, now: time.Now}
}

// Get implements persistence.DocumentStore
func (s *DocumentStore) Get(ctx context.Context, collection, id string) ([]byte, error) {
	var body string
	err := s.db.GetContext(ctx, &body, `SELECT body FROM documents WHERE collection = ? AND id = ?`, collection, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrDocumentNotFound, collection, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s/%s: %w", domain.ErrStorageFailure, collection, id, err)
	}
	return []byte(body), nil
}

// Put implements persistence.DocumentStore
func (s *DocumentStore) Put(ctx context.Context, collection, id string, body []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (collection, id, body, writer, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (collection, id) DO UPDATE
		SET body = excluded.body, writer = excluded.writer, updated_at = excluded.updated_at`,
		collection, id, string(body), persistence.WriterFromContext(ctx), s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("%w: put %s/%s: %w", domain.ErrStorageFailure, collection, id, err)
	}
	return nil
}

// Delete implements persistence.DocumentStore
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id)
	if err != nil {
		return fmt.Errorf("%w: delete %s/%s: %w", domain.ErrStorageFailure, collection, id, err)
	}
	return nil
}

// Changes implements persistence.DocumentStore
func (s *DocumentStore) Changes(ctx context.Context, collection string, since time.Time) ([]persistence.Change, error) {
	cutoff := int64(math.MinInt64)
	if !since.IsZero() {
		cutoff = since.UnixNano()
	}

	var rows []changeRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, updated_at, writer FROM documents
		WHERE collection = ? AND updated_at > ?
		ORDER BY updated_at`, collection, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%w: list changes: %w", domain.ErrStorageFailure, err)
	}

	changes := make([]persistence.Change, 0, len(rows))
	for _, r := range rows {
		changes = append(changes, persistence.Change{
			ID:        r.ID,
			UpdatedAt: time.Unix(0, r.UpdatedAt),
			Writer:    r.Writer,
		})
	}
	return changes, nil
}
