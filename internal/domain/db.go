package domain

import "context"

// Database defines lifecycle operations for the underlying store.
// Each implementation owns its own schema files and migration strategy,
// keeping the whole backend swappable.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}
