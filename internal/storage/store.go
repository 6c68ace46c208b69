package storage

import "context"

// Store is the persistence contract the engine depends on. Lookups return
// (nil, nil) when the record is absent; task lookups are always scoped to
// the requesting owner, so a task owned by someone else reads as absent.
type Store interface {
	GetAccount(ctx context.Context, id string) (*Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
	CreateAccount(ctx context.Context, a *Account) error

	GetUser(ctx context.Context, ownerID string) (*User, error)
	CreateUser(ctx context.Context, u *User) error
	UpdateUser(ctx context.Context, u *User) error

	// ListTasks returns the owner's tasks newest first.
	ListTasks(ctx context.Context, ownerID string) ([]Task, error)
	GetTask(ctx context.Context, ownerID, id string) (*Task, error)
	InsertTask(ctx context.Context, t *Task) error
	UpdateTask(ctx context.Context, t *Task) error

	// UpdateTaskAndUser persists a task completion and the resulting profile
	// change as one unit: neither write is visible without the other.
	UpdateTaskAndUser(ctx context.Context, t *Task, u *User) error

	// DeleteTask reports whether a record was removed.
	DeleteTask(ctx context.Context, ownerID, id string) (bool, error)

	Close() error
}
