package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func (s *SQLiteStore) GetAccount(ctx context.Context, id string) (*Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash, created_at
		FROM accounts
		WHERE id = ?
	`, id)
	return scanAccountRow(row)
}

func (s *SQLiteStore) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash, created_at
		FROM accounts
		WHERE email = ?
	`, email)
	return scanAccountRow(row)
}

func (s *SQLiteStore) CreateAccount(ctx context.Context, a *Account) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, email, name, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, a.ID, a.Email, a.Name, a.PasswordHash, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("account insert: %w", err)
	}
	return nil
}

func scanAccountRow(row scanner) (*Account, error) {
	var a Account
	if err := row.Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("account scan: %w", err)
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}
