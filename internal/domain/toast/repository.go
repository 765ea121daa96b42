package toast

import (
	"context"
	"database/sql"
	"time"
)

// Repository defines persistence operations for Toast entities.
type Repository interface {
	// Create inserts the toast and fills ID/CreatedAt. Implementations must
	// reject an interval overlapping an existing toast of the same type for
	// the same user with a recognizable duplicate error.
	Create(ctx context.Context, t *Toast) error
	// UpdateNarration sets the terminal narration outcome for a toast.
	// Exactly one of audioURL / narrationError should be valid.
	UpdateNarration(ctx context.Context, id int64, audioURL, narrationError sql.NullString) error
	GetByID(ctx context.Context, id int64) (*Toast, error)
	// ListByUserAndTypeSince returns toasts of the given type created at or
	// after 'since', newest first. This is the Idempotency Guard's query.
	ListByUserAndTypeSince(ctx context.Context, userID int64, toastType Type, since time.Time) ([]*Toast, error)
}
