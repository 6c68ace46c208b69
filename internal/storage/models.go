package storage

import "time"

// Account is the credential record behind an authenticated owner.
// The password hash never leaves the storage layer in API responses.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// User is the per-owner progression profile. XP always stays strictly
// below XPToNextLevel after any mutation.
type User struct {
	OwnerID           string `json:"-"`
	Name              string `json:"name"`
	Level             int    `json:"level"`
	XP                int    `json:"xp"`
	XPToNextLevel     int    `json:"xpToNextLevel"`
	Energy            int    `json:"energy"`
	TotalFocusMinutes int    `json:"totalFocusMinutes"`
	Streak            int    `json:"streak"`
}

type Task struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Difficulty  string     `json:"difficulty"`
	Category    string     `json:"category"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
