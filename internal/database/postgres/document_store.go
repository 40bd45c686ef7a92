package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/HabitQuest_Go/internal/domain"
	"github.com/osse101/HabitQuest_Go/internal/persistence"
)

// DB is the subset of pgxpool.Pool the store needs
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DocumentStore keeps JSONB documents in the documents table
type DocumentStore struct {
	db DB
}

var _ persistence.DocumentStore = (*DocumentStore)(nil)

// NewDocumentStore creates a store over db
func NewDocumentStore(db DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// Get implements persistence.DocumentStore
func (s *DocumentStore) Get(ctx context.Context, collection, id string) ([]byte, error) {
	var body []byte
	err := s.db.QueryRow(ctx, queryGetDocument, collection, id).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrDocumentNotFound, collection, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s/%s: %w", domain.ErrStorageFailure, ErrMsgFailedToGetDocument, collection, id, err)
	}
	return body, nil
}

// Put implements persistence.DocumentStore. The last write wins.
func (s *DocumentStore) Put(ctx context.Context, collection, id string, body []byte) error {
	writer := persistence.WriterFromContext(ctx)
	if _, err := s.db.Exec(ctx, queryPutDocument, collection, id, body, writer); err != nil {
		return fmt.Errorf("%w: %s %s/%s: %w", domain.ErrStorageFailure, ErrMsgFailedToPutDocument, collection, id, err)
	}
	return nil
}

// Delete implements persistence.DocumentStore
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.db.Exec(ctx, queryDeleteDocument, collection, id); err != nil {
		return fmt.Errorf("%w: %s %s/%s: %w", domain.ErrStorageFailure, ErrMsgFailedToDeleteDocument, collection, id, err)
	}
	return nil
}

// Changes implements persistence.DocumentStore
func (s *DocumentStore) Changes(ctx context.Context, collection string, since time.Time) ([]persistence.Change, error) {
	rows, err := s.db.Query(ctx, queryListChanges, collection, since)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStorageFailure, ErrMsgFailedToListChanges, err)
	}
	changes, err := pgx.CollectRows(rows, pgx.RowToStructByName[persistence.Change])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrStorageFailure, ErrMsgFailedToListChanges, err)
	}
	return changes, nil
}
