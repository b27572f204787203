package domain

import (
	"context"
	"time"
)

// User represents a registered user of the service.
type User struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// List returns all users, most recently created first.
	List(ctx context.Context) ([]User, error)
	// GetByID returns the user with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*User, error)
	// Create inserts a user and returns the fully populated row, including
	// the store-assigned id and timestamps.
	Create(ctx context.Context, name, email string) (*User, error)
	// Update changes only the supplied fields; nil pointers are left
	// untouched. Returns ErrNotFound when the id does not exist.
	Update(ctx context.Context, id int64, name, email *string) (*User, error)
	// Delete removes the user. True iff exactly one row was removed.
	Delete(ctx context.Context, id int64) (bool, error)
	// EmailExists reports whether the email is already taken. When
	// excludingID is non-nil that id is ignored, so a user can keep their
	// own address during an update.
	EmailExists(ctx context.Context, email string, excludingID *int64) (bool, error)
	// Count returns the total number of users.
	Count(ctx context.Context) (int64, error)
}
