package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"focusquest/internal/storage"
)

type CreateTaskInput struct {
	Title       string
	Description string
	Difficulty  Difficulty
	Category    Category
}

func (s *Service) CreateTask(ctx context.Context, owner Owner, in CreateTaskInput) (*storage.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || in.Difficulty == "" || in.Category == "" {
		return nil, ValidationError{Reason: "title, difficulty, and category are required"}
	}
	if !in.Difficulty.IsValid() {
		return nil, ValidationError{Reason: fmt.Sprintf("invalid difficulty %q", in.Difficulty)}
	}
	if !in.Category.IsValid() {
		return nil, ValidationError{Reason: fmt.Sprintf("invalid category %q", in.Category)}
	}

	t := &storage.Task{
		ID:          uuid.NewString(),
		OwnerID:     owner.ID,
		Title:       title,
		Description: in.Description,
		Difficulty:  string(in.Difficulty),
		Category:    string(in.Category),
		Completed:   false,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.InsertTask(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
