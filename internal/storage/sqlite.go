package storage

import (
	"context"
	"database/sql"
)

// SQLiteStore implements Store on top of a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// OpenSQLiteStore opens the database at path, applies the schema and wraps
// it in a Store.
func OpenSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return NewSQLiteStore(db), nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// UpdateTaskAndUser commits both records in one transaction so a completion
// reward is never visible without its task state, and vice versa.
func (s *SQLiteStore) UpdateTaskAndUser(ctx context.Context, t *Task, u *User) error {
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := execUpdateTask(ctx, tx, t); err != nil {
			return err
		}
		return execUpdateUser(ctx, tx, u)
	})
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type scanner interface {
	Scan(dest ...any) error
}
