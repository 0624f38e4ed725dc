// Package users stores dashboard accounts and checks their credentials.
package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MYAIBV/my-ai-portfolio/internal/auth"
	"github.com/MYAIBV/my-ai-portfolio/internal/kv"
)

// usersKey is the hash holding every account, field = email.
const usersKey = "users"

var ErrInvalidCredentials = errors.New("invalid credentials")

type User struct {
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Store struct {
	hash kv.Hash
}

func NewStore(hash kv.Hash) *Store {
	return &Store{hash: hash}
}

func (s *Store) Get(ctx context.Context, email string) (User, bool, error) {
	raw, ok, err := s.hash.Get(ctx, usersKey, normalizeEmail(email))
	if err != nil || !ok {
		return User{}, false, err
	}
	var user User
	if err := json.Unmarshal(raw, &user); err != nil {
		return User{}, false, fmt.Errorf("decode user %s: %w", email, err)
	}
	return user, true, nil
}

func (s *Store) Put(ctx context.Context, user User) error {
	user.Email = normalizeEmail(user.Email)
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user %s: %w", user.Email, err)
	}
	return s.hash.Set(ctx, usersKey, user.Email, raw)
}

// Authenticate verifies the password against the stored bcrypt hash.
// Unknown accounts and wrong passwords are indistinguishable to the
// caller.
func (s *Store) Authenticate(ctx context.Context, email, password string) (User, error) {
	user, ok, err := s.Get(ctx, email)
	if err != nil {
		return User{}, err
	}
	if !ok {
		return User{}, ErrInvalidCredentials
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
