package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mjiang93/user-service/internal/domain"
)

// UserRepository implements domain.UserRepository using SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite-backed UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.SqlDB}
}

const userColumns = "id, name, email, created_at, updated_at"

// List returns all users ordered most-recently-created first. The id
// tiebreak keeps the order deterministic when created_at values collide
// (CURRENT_TIMESTAMP has one-second resolution).
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by id: %w", err)
	}
	return user, nil
}

// Create inserts a user and re-fetches the row by its assigned id, so the
// returned timestamps are the store's, not the process clock.
func (r *UserRepository) Create(ctx context.Context, name, email string) (*domain.User, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, email) VALUES (?, ?)`, name, email)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Update builds an UPDATE touching only the supplied fields plus the
// updated_at stamp. With no fields supplied the current row is returned and
// no write happens.
func (r *UserRepository) Update(ctx context.Context, id int64, name, email *string) (*domain.User, error) {
	setClauses := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if name != nil {
		setClauses = append(setClauses, "name = ?")
		args = append(args, *name)
	}
	if email != nil {
		setClauses = append(setClauses, "email = ?")
		args = append(args, *email)
	}

	if len(setClauses) == 0 {
		return r.GetByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	query := "UPDATE users SET " + strings.Join(setClauses, ", ") + " WHERE id = ?"
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, domain.ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected: %w", err)
	}
	return affected == 1, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string, excludingID *int64) (bool, error) {
	var count int64
	var err error
	if excludingID != nil {
		err = r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM users WHERE email = ? AND id != ?`,
			email, *excludingID,
		).Scan(&count)
	} else {
		err = r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM users WHERE email = ?`, email,
		).Scan(&count)
	}
	if err != nil {
		return false, fmt.Errorf("count users by email: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*domain.User, error) {
	var (
		user      domain.User
		createdAt sql.NullString
		updatedAt sql.NullString
	)
	if err := s.Scan(&user.ID, &user.Name, &user.Email, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	user.CreatedAt = parseTimestamp(createdAt.String)
	user.UpdatedAt = parseTimestamp(updatedAt.String)
	return &user, nil
}

// timestampLayouts lists the formats SQLite may hand back for DATETIME
// columns populated via CURRENT_TIMESTAMP or explicit inserts.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999-07:00",
}

// parseTimestamp converts a stored timestamp string into time.Time. A
// missing or unparseable value defaults to now rather than failing the read.
func parseTimestamp(value string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return time.Now().UTC()
}

// isUniqueConstraintError checks whether the error is a SQLite unique
// constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "unique constraint")
}
