package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// FileStore implements Store over a single JSON document, rewritten in full
// on every mutation. It exists for small single-user installs and as the
// flat-file counterpart to the SQLite backend.
type FileStore struct {
	mu   sync.Mutex
	path string
	doc  fileDoc
}

type fileDoc struct {
	Accounts []fileAccount   `json:"accounts"`
	Users    map[string]User `json:"users"`
	Tasks    []Task          `json:"tasks"`
}

// fileAccount carries the password hash, which the API-facing Account type
// deliberately drops from JSON.
type fileAccount struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewFileStore loads the document at path, initializing default empty state
// if the file does not exist yet.
func NewFileStore(path string) (*FileStore, error) {
	fs := &FileStore{
		path: path,
		doc:  fileDoc{Users: map[string]User{}},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read store file: %w", err)
		}
		if err := fs.persist(); err != nil {
			return nil, err
		}
		return fs, nil
	}

	if err := json.Unmarshal(data, &fs.doc); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	if fs.doc.Users == nil {
		fs.doc.Users = map[string]User{}
	}
	return fs, nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	return nil
}

func (s *FileStore) GetAccount(_ context.Context, id string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.doc.Accounts {
		if a.ID == id {
			acc := accountFromFile(a)
			return &acc, nil
		}
	}
	return nil, nil
}

func (s *FileStore) GetAccountByEmail(_ context.Context, email string) (*Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.doc.Accounts {
		if a.Email == email {
			acc := accountFromFile(a)
			return &acc, nil
		}
	}
	return nil, nil
}

func (s *FileStore) CreateAccount(_ context.Context, a *Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Accounts = append(s.doc.Accounts, fileAccount{
		ID:           a.ID,
		Email:        a.Email,
		Name:         a.Name,
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt,
	})
	return s.persist()
}

func (s *FileStore) GetUser(_ context.Context, ownerID string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.doc.Users[ownerID]
	if !ok {
		return nil, nil
	}
	u.OwnerID = ownerID
	return &u, nil
}

func (s *FileStore) CreateUser(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Users[u.OwnerID] = *u
	return s.persist()
}

func (s *FileStore) UpdateUser(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Users[u.OwnerID] = *u
	return s.persist()
}

func (s *FileStore) ListTasks(_ context.Context, ownerID string) ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Task
	for _, t := range s.doc.Tasks {
		if t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *FileStore) GetTask(_ context.Context, ownerID, id string) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.taskIndex(ownerID, id); i >= 0 {
		t := s.doc.Tasks[i]
		return &t, nil
	}
	return nil, nil
}

func (s *FileStore) InsertTask(_ context.Context, t *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Tasks = append(s.doc.Tasks, *t)
	return s.persist()
}

func (s *FileStore) UpdateTask(_ context.Context, t *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceTask(t)
}

func (s *FileStore) UpdateTaskAndUser(_ context.Context, t *Task, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Single rewrite covers both records, so the pair is atomic here too.
	if err := s.replaceTaskNoPersist(t); err != nil {
		return err
	}
	s.doc.Users[u.OwnerID] = *u
	return s.persist()
}

func (s *FileStore) DeleteTask(_ context.Context, ownerID, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(ownerID, id)
	if i < 0 {
		return false, nil
	}
	s.doc.Tasks = append(s.doc.Tasks[:i], s.doc.Tasks[i+1:]...)
	if err := s.persist(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileStore) taskIndex(ownerID, id string) int {
	for i, t := range s.doc.Tasks {
		if t.ID == id && t.OwnerID == ownerID {
			return i
		}
	}
	return -1
}

func (s *FileStore) replaceTask(t *Task) error {
	if err := s.replaceTaskNoPersist(t); err != nil {
		return err
	}
	return s.persist()
}

func (s *FileStore) replaceTaskNoPersist(t *Task) error {
	i := s.taskIndex(t.OwnerID, t.ID)
	if i < 0 {
		return fmt.Errorf("task %s not in store", t.ID)
	}
	s.doc.Tasks[i] = *t
	return nil
}

func accountFromFile(a fileAccount) Account {
	return Account{
		ID:           a.ID,
		Email:        a.Email,
		Name:         a.Name,
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt,
	}
}
