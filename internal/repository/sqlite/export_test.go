package sqlite

import (
	"database/sql"
	"io"
	"log/slog"
)

// NewForTest wraps an existing database handle so tests can drive the
// repository with sqlmock.
func NewForTest(db *sql.DB) *Repository {
	return &Repository{
		db:  db,
		log: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
