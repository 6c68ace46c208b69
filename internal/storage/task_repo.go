package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func (s *SQLiteStore) InsertTask(ctx context.Context, t *Task) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, owner_id, title, description, difficulty, category, completed, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.OwnerID, t.Title, t.Description, t.Difficulty, t.Category, boolToInt(t.Completed), t.CreatedAt, t.CompletedAt)
	if err != nil {
		return fmt.Errorf("task insert: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetTask(ctx context.Context, ownerID, id string) (*Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, description, difficulty, category, completed, created_at, completed_at
		FROM tasks
		WHERE id = ? AND owner_id = ?
	`, id, ownerID)

	return scanTaskRow(row)
}

func (s *SQLiteStore) ListTasks(ctx context.Context, ownerID string) ([]Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, title, description, difficulty, category, completed, created_at, completed_at
		FROM tasks
		WHERE owner_id = ?
		ORDER BY created_at DESC, id DESC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) UpdateTask(ctx context.Context, t *Task) error {
	return execUpdateTask(ctx, s.db, t)
}

func execUpdateTask(ctx context.Context, ex execer, t *Task) error {
	_, err := ex.ExecContext(ctx, `
		UPDATE tasks
		SET title = ?, description = ?, difficulty = ?, category = ?, completed = ?, completed_at = ?
		WHERE id = ? AND owner_id = ?
	`, t.Title, t.Description, t.Difficulty, t.Category, boolToInt(t.Completed), t.CompletedAt, t.ID, t.OwnerID)
	if err != nil {
		return fmt.Errorf("task update: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteTask(ctx context.Context, ownerID, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("task delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("task delete rows affected: %w", err)
	}
	return n > 0, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func scanTaskRow(row scanner) (*Task, error) {
	var (
		t           Task
		completed   int
		completedAt sql.NullTime
	)

	if err := row.Scan(
		&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Difficulty, &t.Category,
		&completed, &t.CreatedAt, &completedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("task scan: %w", err)
	}

	t.Completed = completed != 0
	if completedAt.Valid {
		v := completedAt.Time.UTC()
		t.CompletedAt = &v
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}
