package engine

import (
	"context"
	"errors"
	"strings"

	"focusquest/internal/storage"
)

// Service implements the task and profile operations on top of an injected
// storage backend.
type Service struct {
	store storage.Store
}

func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

func (s *Service) Store() storage.Store { return s.store }

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", errors.New("title is required")
	}
	return t, nil
}

func (s *Service) getOrCreateUser(ctx context.Context, owner Owner) (*storage.User, error) {
	u, err := s.store.GetUser(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}

	u = DefaultUser(owner)
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
