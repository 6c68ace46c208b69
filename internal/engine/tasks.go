package engine

import (
	"context"

	"focusquest/internal/storage"
)

func (s *Service) ListTasks(ctx context.Context, owner Owner) ([]storage.Task, error) {
	return s.store.ListTasks(ctx, owner.ID)
}

func (s *Service) GetTask(ctx context.Context, owner Owner, id string) (*storage.Task, error) {
	t, err := s.store.GetTask(ctx, owner.ID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, NotFoundError{Resource: "task", ID: id}
	}
	return t, nil
}

func (s *Service) DeleteTask(ctx context.Context, owner Owner, id string) error {
	deleted, err := s.store.DeleteTask(ctx, owner.ID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return NotFoundError{Resource: "task", ID: id}
	}
	return nil
}
