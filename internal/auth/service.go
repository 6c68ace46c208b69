package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"focusquest/internal/storage"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError reports rejected registration input.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string { return e.Reason }

const minPasswordLen = 8

// Service handles account registration and login. It is the "opaque
// upstream" the task and profile operations rely on for identity.
type Service struct {
	store  storage.Store
	signer *TokenSigner
}

func NewService(store storage.Store, signer *TokenSigner) *Service {
	return &Service{store: store, signer: signer}
}

func (s *Service) Register(ctx context.Context, email, password, name string) (Identity, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return Identity{}, "", ValidationError{Reason: "a valid email is required"}
	}
	if len(password) < minPasswordLen {
		return Identity{}, "", ValidationError{Reason: "password must be at least 8 characters"}
	}

	existing, err := s.store.GetAccountByEmail(ctx, email)
	if err != nil {
		return Identity{}, "", err
	}
	if existing != nil {
		return Identity{}, "", ErrEmailTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return Identity{}, "", err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = email[:strings.Index(email, "@")]
	}

	acc := &storage.Account{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateAccount(ctx, acc); err != nil {
		return Identity{}, "", err
	}

	return s.issue(acc)
}

func (s *Service) Login(ctx context.Context, email, password string) (Identity, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	acc, err := s.store.GetAccountByEmail(ctx, email)
	if err != nil {
		return Identity{}, "", err
	}
	if acc == nil || !CheckPassword(acc.PasswordHash, password) {
		return Identity{}, "", ErrInvalidCredentials
	}
	return s.issue(acc)
}

// Resolve maps a bearer token to its identity.
func (s *Service) Resolve(tokenString string) (Identity, error) {
	return s.signer.Parse(tokenString)
}

func (s *Service) issue(acc *storage.Account) (Identity, string, error) {
	id := Identity{ID: acc.ID, Email: acc.Email, Name: acc.Name}
	token, err := s.signer.Sign(id)
	if err != nil {
		return Identity{}, "", err
	}
	return id, token, nil
}
