package runlog

import "context"

// Repository persists run log entries. The battery depends on this port,
// not on SQLite; a nil Repository disables logging.
type Repository interface {
	// Save appends an entry; rows are never updated.
	Save(ctx context.Context, entry *Entry) error
}
