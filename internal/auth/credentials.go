package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pateljenish9878/Task-Management/internal/models"
	"github.com/pateljenish9878/Task-Management/internal/store"
	"github.com/pateljenish9878/Task-Management/internal/util"
)

// Credentials validates and updates account secrets against the user
// store. Plaintext passwords never travel past this boundary.
type Credentials struct {
	users store.UserStore
}

// NewCredentials builds a credential verifier on top of the user store.
func NewCredentials(users store.UserStore) *Credentials {
	return &Credentials{users: users}
}

// Register creates a standard-role account. Username and email must be
// unused; password and confirmation must match.
func (s *Credentials) Register(username, email, password, confirm string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if password != confirm {
		return nil, ErrPasswordMismatch
	}

	if _, err := s.users.FindByUsername(username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("lookup username: %w", err)
	}
	if _, err := s.users.FindByEmail(email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleStandard,
	}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// VerifyCredentials checks an email/password pair. Unknown email and
// wrong password fail identically with ErrInvalidCredentials.
func (s *Credentials) VerifyCredentials(email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	if !util.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ChangePassword re-hashes and persists a new password after checking
// the current one against the stored hash.
func (s *Credentials) ChangePassword(user *models.User, current, newPassword, confirm string) error {
	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	if !util.CheckPassword(current, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	if err := s.users.Update(user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
