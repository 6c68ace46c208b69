package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func (s *SQLiteStore) GetUser(ctx context.Context, ownerID string) (*User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT owner_id, name, level, xp, xp_to_next_level, energy, total_focus_minutes, streak
		FROM users
		WHERE owner_id = ?
	`, ownerID)

	var u User
	if err := row.Scan(&u.OwnerID, &u.Name, &u.Level, &u.XP, &u.XPToNextLevel, &u.Energy, &u.TotalFocusMinutes, &u.Streak); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user get: %w", err)
	}
	return &u, nil
}

func (s *SQLiteStore) CreateUser(ctx context.Context, u *User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (owner_id, name, level, xp, xp_to_next_level, energy, total_focus_minutes, streak)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, u.OwnerID, u.Name, u.Level, u.XP, u.XPToNextLevel, u.Energy, u.TotalFocusMinutes, u.Streak)
	if err != nil {
		return fmt.Errorf("user insert: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UpdateUser(ctx context.Context, u *User) error {
	return execUpdateUser(ctx, s.db, u)
}

func execUpdateUser(ctx context.Context, ex execer, u *User) error {
	_, err := ex.ExecContext(ctx, `
		UPDATE users
		SET name = ?, level = ?, xp = ?, xp_to_next_level = ?, energy = ?, total_focus_minutes = ?, streak = ?
		WHERE owner_id = ?
	`, u.Name, u.Level, u.XP, u.XPToNextLevel, u.Energy, u.TotalFocusMinutes, u.Streak, u.OwnerID)
	if err != nil {
		return fmt.Errorf("user update: %w", err)
	}
	return nil
}
