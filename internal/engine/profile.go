package engine

import (
	"context"
	"fmt"

	"focusquest/internal/storage"
)

// ProfilePatch lists the profile fields a caller may set directly. The
// progression fields (xp, level, xpToNextLevel, totalFocusMinutes) are only
// ever mutated by the engine itself.
type ProfilePatch struct {
	Name   *string
	Energy *int
	Streak *int
}

type FocusResult struct {
	User        *storage.User
	BonusXP     int
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
}

// Profile returns the owner's profile, seeding the default one on first
// access.
func (s *Service) Profile(ctx context.Context, owner Owner) (*storage.User, error) {
	return s.getOrCreateUser(ctx, owner)
}

func (s *Service) UpdateProfile(ctx context.Context, owner Owner, patch ProfilePatch) (*storage.User, error) {
	u, err := s.getOrCreateUser(ctx, owner)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name, err := normalizeTitle(*patch.Name)
		if err != nil {
			return nil, ValidationError{Reason: "name must not be empty"}
		}
		u.Name = name
	}
	if patch.Energy != nil {
		if *patch.Energy < 0 || *patch.Energy > 100 {
			return nil, ValidationError{Reason: fmt.Sprintf("energy %d out of range [0,100]", *patch.Energy)}
		}
		u.Energy = *patch.Energy
	}
	if patch.Streak != nil {
		if *patch.Streak < 0 {
			return nil, ValidationError{Reason: "streak must not be negative"}
		}
		u.Streak = *patch.Streak
	}

	if err := s.store.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// AddFocusMinutes records one completed focus session and applies the bonus
// XP for full 25-minute blocks. Sessions shorter than a block still count
// toward total minutes.
func (s *Service) AddFocusMinutes(ctx context.Context, owner Owner, minutes int) (*FocusResult, error) {
	if minutes <= 0 {
		return nil, ValidationError{Reason: "focus minutes must be positive"}
	}

	u, err := s.getOrCreateUser(ctx, owner)
	if err != nil {
		return nil, err
	}

	levelBefore := u.Level
	u.TotalFocusMinutes += minutes
	bonus := FocusBonusXP(minutes)
	if bonus > 0 {
		ApplyXP(u, bonus)
	}

	if err := s.store.UpdateUser(ctx, u); err != nil {
		return nil, err
	}

	return &FocusResult{
		User:        u,
		BonusXP:     bonus,
		LevelBefore: levelBefore,
		LevelAfter:  u.Level,
		LevelUp:     u.Level > levelBefore,
	}, nil
}
