package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mjiang93/user-service/internal/domain"
)

// emailPattern is a deliberately small RFC-5322 subset: one "@", a domain
// with at least one dot, and a 2+ letter top-level segment.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Default rows inserted into an empty store so the API is demonstrable
// out of the box.
var defaultUsers = []struct {
	Name  string
	Email string
}{
	{Name: "John Doe", Email: "john@example.com"},
	{Name: "Jane Smith", Email: "jane@example.com"},
}

// UserService owns every business rule for the user resource. Handlers and
// the repository never duplicate validation.
type UserService struct {
	users domain.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

// List returns all users, most recently created first.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// Get returns the user with the given id, or domain.ErrNotFound.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// Create validates and normalizes the input, then persists a new user.
// Name is trimmed; email is trimmed and lowercased.
func (s *UserService) Create(ctx context.Context, name, email string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, domain.NewValidationError("Name is required")
	}
	if email == "" {
		return nil, domain.NewValidationError("Email is required")
	}
	if !emailPattern.MatchString(email) {
		return nil, domain.NewValidationError("Invalid email format")
	}

	exists, err := s.users.EmailExists(ctx, email, nil)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, domain.NewValidationError("Email already exists")
	}

	user, err := s.users.Create(ctx, name, email)
	if err != nil {
		// A concurrent writer can slip past the pre-check; the storage
		// unique constraint is the backstop.
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.NewValidationError("Email already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Update applies a partial update. Nil fields are left untouched. The
// existence check runs before any field validation, so an unknown id is
// reported as not found even when the supplied fields are invalid.
func (s *UserService) Update(ctx context.Context, id int64, name, email *string) (*domain.User, error) {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, domain.NewValidationError("Name cannot be empty")
		}
		name = &trimmed
	}

	if email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*email))
		if !emailPattern.MatchString(normalized) {
			return nil, domain.NewValidationError("Invalid email format")
		}
		exists, err := s.users.EmailExists(ctx, normalized, &id)
		if err != nil {
			return nil, fmt.Errorf("check email exists: %w", err)
		}
		if exists {
			return nil, domain.NewValidationError("Email already exists")
		}
		email = &normalized
	}

	user, err := s.users.Update(ctx, id, name, email)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.NewValidationError("Email already exists")
		}
		return nil, err
	}
	return user, nil
}

// Delete removes the user. True iff a row was removed.
func (s *UserService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.users.Delete(ctx, id)
}

// SeedDefaults inserts the default users when the table is empty.
// Idempotent; called once at startup.
func (s *UserService) SeedDefaults(ctx context.Context) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, u := range defaultUsers {
		if _, err := s.users.Create(ctx, u.Name, u.Email); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}
	return nil
}
