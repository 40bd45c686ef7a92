package persistence

import (
	"context"
	"time"
)

// Collections
const (
	CollectionUsers = "users"
	CollectionMeta  = "meta"
)

// DirectoryID is the id of the profile directory inside CollectionMeta
const DirectoryID = "profiles"

// Change describes the latest write of one document
type Change struct {
	ID        string    `db:"id"`
	UpdatedAt time.Time `db:"updated_at"`
	Writer    string    `db:"writer"`
}

// DocumentStore is a keyed JSON document store with a change feed.
// Writes are last-write-wins.
type DocumentStore interface {
	// Get returns domain.ErrDocumentNotFound when the document is absent
	Get(ctx context.Context, collection, id string) ([]byte, error)
	Put(ctx context.Context, collection, id string, body []byte) error
	Delete(ctx context.Context, collection, id string) error
	// Changes lists documents written strictly after since, oldest first
	Changes(ctx context.Context, collection string, since time.Time) ([]Change, error)
}

type writerKey struct{}

// WithWriter tags ctx with the id of the writing device. Stores record it
// next to each write so that readers can recognize their own echoes.
func WithWriter(ctx context.Context, writer string) context.Context {
	return context.WithValue(ctx, writerKey{}, writer)
}

// WriterFromContext returns the writer set by WithWriter, or ""
func WriterFromContext(ctx context.Context) string {
	w, _ := ctx.Value(writerKey{}).(string)
	return w
}
