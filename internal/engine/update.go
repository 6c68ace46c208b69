package engine

import (
	"context"
	"fmt"
	"time"

	"focusquest/internal/storage"
)

// TaskPatch carries the recognized update fields. Anything not listed here
// (id, owner, createdAt) cannot be changed through an update.
type TaskPatch struct {
	Title       *string
	Description *string
	Difficulty  *Difficulty
	Category    *Category
	Completed   *bool
}

type UpdateTaskResult struct {
	Task        *storage.Task
	User        *storage.User
	XPAwarded   int
	LevelBefore int
	LevelAfter  int
	LevelUp     bool
}

// UpdateTask merges the patch over the stored task. A false→true completed
// transition is the completion event: it stamps completedAt and awards XP
// computed from the difficulty the task had before the patch, so changing
// difficulty and completing in one request cannot inflate the reward. The
// task and profile are persisted as one atomic pair in that case.
//
// Re-completing an already-completed task awards nothing. Un-completing
// clears completedAt and never refunds XP.
func (s *Service) UpdateTask(ctx context.Context, owner Owner, id string, patch TaskPatch) (*UpdateTaskResult, error) {
	existing, err := s.store.GetTask(ctx, owner.ID, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, NotFoundError{Resource: "task", ID: id}
	}

	completionEvent := patch.Completed != nil && *patch.Completed && !existing.Completed
	reward := XPForDifficulty(Difficulty(existing.Difficulty))

	updated := *existing
	if patch.Title != nil {
		title, err := normalizeTitle(*patch.Title)
		if err != nil {
			return nil, ValidationError{Reason: err.Error()}
		}
		updated.Title = title
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if patch.Difficulty != nil {
		if !patch.Difficulty.IsValid() {
			return nil, ValidationError{Reason: fmt.Sprintf("invalid difficulty %q", *patch.Difficulty)}
		}
		updated.Difficulty = string(*patch.Difficulty)
	}
	if patch.Category != nil {
		if !patch.Category.IsValid() {
			return nil, ValidationError{Reason: fmt.Sprintf("invalid category %q", *patch.Category)}
		}
		updated.Category = string(*patch.Category)
	}
	if patch.Completed != nil {
		updated.Completed = *patch.Completed
		if !*patch.Completed && existing.Completed {
			// Un-completion clears the stamp; awarded XP stays.
			updated.CompletedAt = nil
		}
	}

	if !completionEvent {
		if err := s.store.UpdateTask(ctx, &updated); err != nil {
			return nil, err
		}
		return &UpdateTaskResult{Task: &updated}, nil
	}

	now := time.Now().UTC()
	updated.CompletedAt = &now

	u, err := s.getOrCreateUser(ctx, owner)
	if err != nil {
		return nil, err
	}
	levelBefore := u.Level
	ApplyXP(u, reward)

	if err := s.store.UpdateTaskAndUser(ctx, &updated, u); err != nil {
		return nil, err
	}

	return &UpdateTaskResult{
		Task:        &updated,
		User:        u,
		XPAwarded:   reward,
		LevelBefore: levelBefore,
		LevelAfter:  u.Level,
		LevelUp:     u.Level > levelBefore,
	}, nil
}
