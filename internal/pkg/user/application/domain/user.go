package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user: not found")
	ErrUserExists   = errors.New("user: already exists")
)

// User is a registered account. PasswordHash is a bcrypt hash.
type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	Avatar       string    `db:"avatar"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Profile is what other users and the browser get to see.
type Profile struct {
	ID     string `json:"id"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func (u User) Profile() Profile {
	return Profile{ID: u.ID, Email: u.Email, Name: u.Name, Avatar: u.Avatar}
}

// NewUserID issues a user id: a random UUID as 32 lowercase hex characters.
// Ids are embedded in conversation ids, so they must stay free of '_'.
func NewUserID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
