// Package repository defines the persistence contracts owned by the domain.
package repository

import (
	"context"

	"shield/internal/domain/entity"
	"shield/internal/errors"
)

// ErrUserNotFound is returned when no user matches the lookup key.
var ErrUserNotFound = errors.New("user not found")

// UserRepository is the persistence contract for user accounts.
type UserRepository interface {
	// FindByEmail retrieves a user by their login email.
	// Returns ErrUserNotFound when no such user exists.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user by their numeric id.
	// Returns ErrUserNotFound when no such user exists.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// Create persists a new user and fills in the generated id and
	// timestamps. Duplicate emails surface as a domain conflict error.
	Create(ctx context.Context, user *entity.User) error

	// RegisterPushToken stores the push token for a user, creating the user
	// row when it does not exist yet. A non-empty name replaces the stored
	// name; an empty one leaves it untouched.
	RegisterPushToken(ctx context.Context, userID int64, token, name string) error

	// ListPushTokensExcept returns the non-empty push tokens of every user
	// except the given one.
	ListPushTokensExcept(ctx context.Context, userID int64) ([]string, error)
}
